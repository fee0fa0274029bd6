package handlers

import (
	"fmt"
	"sync"
)

// ScreenMode is one of the four requisition-list screen states.
type ScreenMode string

const (
	ScreenTable ScreenMode = "table"
	ScreenForm  ScreenMode = "form"
	ScreenView  ScreenMode = "view"
	ScreenEdit  ScreenMode = "edit"
)

// ScreenAction is a discrete UI event on the requisition list.
type ScreenAction string

const (
	ActionNew  ScreenAction = "new"
	ActionView ScreenAction = "view"
	ActionEdit ScreenAction = "edit"
	ActionBack ScreenAction = "back"
)

// allowAction maps each screen state to the actions it accepts. Row-level
// actions only exist on the table; back returns from everywhere. No state
// is terminal.
var allowAction = map[ScreenMode][]ScreenAction{
	ScreenTable: {ActionNew, ActionView, ActionEdit},
	ScreenForm:  {ActionBack},
	ScreenView:  {ActionBack},
	ScreenEdit:  {ActionBack},
}

// ScreenState is the tagged screen variant: mode plus the record the
// view/edit modes point at.
type ScreenState struct {
	Mode     ScreenMode `json:"mode"`
	RecordID int64      `json:"record_id,omitempty"`
}

// CanApply reports whether the action is accepted in the current mode.
func (s ScreenState) CanApply(action ScreenAction) bool {
	for _, a := range allowAction[s.Mode] {
		if a == action {
			return true
		}
	}
	return false
}

// Apply runs one transition. View and edit require a record id.
func (s ScreenState) Apply(action ScreenAction, recordID int64) (ScreenState, error) {
	if !s.CanApply(action) {
		return s, fmt.Errorf("invalid screen transition: %s -> %s", s.Mode, action)
	}
	switch action {
	case ActionNew:
		return ScreenState{Mode: ScreenForm}, nil
	case ActionView, ActionEdit:
		if recordID == 0 {
			return s, fmt.Errorf("action %s requires a record id", action)
		}
		mode := ScreenView
		if action == ActionEdit {
			mode = ScreenEdit
		}
		return ScreenState{Mode: mode, RecordID: recordID}, nil
	case ActionBack:
		return ScreenState{Mode: ScreenTable}, nil
	}
	return s, fmt.Errorf("unknown screen action: %s", action)
}

// ScreenSession holds the single-user session state the original UI kept
// per browser session. Initial mode is the table.
type ScreenSession struct {
	mu    sync.Mutex
	state ScreenState
}

func NewScreenSession() *ScreenSession {
	return &ScreenSession{state: ScreenState{Mode: ScreenTable}}
}

func (s *ScreenSession) Current() ScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ScreenSession) Apply(action ScreenAction, recordID int64) (ScreenState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.state.Apply(action, recordID)
	if err != nil {
		return s.state, err
	}
	s.state = next
	return next, nil
}

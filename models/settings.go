package models

// Settings is the singleton JSON configuration document. The SMTP password
// is stored in clear text, as the settings screen round-trips it.
type Settings struct {
	SMTPServer   string `json:"smtp_server"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUser     string `json:"smtp_user"`
	SMTPPassword string `json:"smtp_password"`
	SMTPUseTLS   bool   `json:"smtp_use_tls"`
	LogoPath     string `json:"logo_path,omitempty"`
}

// DefaultSettings are the in-memory fallback used whenever the settings file
// is missing or unreadable.
func DefaultSettings() *Settings {
	return &Settings{
		SMTPServer: "smtp.gmail.com",
		SMTPPort:   587,
		SMTPUseTLS: true,
	}
}

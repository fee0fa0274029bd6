package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatBRL formats a value as Brazilian currency, e.g. 1234.5 -> "R$ 1.234,50".
func FormatBRL(value float64) string {
	return "R$ " + formatBRLNumber(value)
}

// FormatLiters formats a liter amount with pt-BR separators, e.g.
// 1234.5 -> "1.234,50".
func FormatLiters(value float64) string {
	return formatBRLNumber(value)
}

func formatBRLNumber(value float64) string {
	if value == 0 {
		return "0,00"
	}
	negative := value < 0
	if negative {
		value = -value
	}
	intPart := int64(value)
	decPart := int64(math.Round((value - float64(intPart)) * 100))
	if decPart == 100 {
		intPart++
		decPart = 0
	}

	intStr := fmt.Sprintf("%d", intPart)
	var parts []string
	for i := len(intStr); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{intStr[start:i]}, parts...)
	}
	result := strings.Join(parts, ".") + fmt.Sprintf(",%02d", decPart)
	if negative {
		return "-" + result
	}
	return result
}

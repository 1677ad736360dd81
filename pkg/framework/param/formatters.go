package param

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FrequencyFormatter formats frequency values with Hz/kHz
func FrequencyFormatter(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%.2f kHz", hz/1000)
	}
	return fmt.Sprintf("%.1f Hz", hz)
}

// FrequencyParser parses frequency strings
func FrequencyParser(str string) (float64, error) {
	str = strings.TrimSpace(str)

	lower := strings.ToLower(str)
	if strings.HasSuffix(lower, "khz") {
		numStr := strings.TrimSpace(str[:len(str)-3])
		val, err := strconv.ParseFloat(numStr, 64)
		if err != nil {
			return 0, err
		}
		return val * 1000, nil
	}

	if strings.HasSuffix(lower, "hz") {
		str = strings.TrimSpace(str[:len(str)-2])
	}
	return strconv.ParseFloat(str, 64)
}

// IntegerFormatter formats values that are stored as integers
func IntegerFormatter(value float64) string {
	return strconv.FormatFloat(math.Round(value), 'f', 0, 64)
}

// FormatValue picks a formatter from the unit and integer flag
func FormatValue(value float64, unit string, integer bool) string {
	switch {
	case integer:
		return IntegerFormatter(value)
	case unit == "Hz":
		return FrequencyFormatter(value)
	case unit != "":
		return fmt.Sprintf("%.2f %s", value, unit)
	default:
		return fmt.Sprintf("%.2f", value)
	}
}

// ParseValue parses a host-entered string for the descriptor's unit
func ParseValue(d Descriptor, str string) (float64, error) {
	if d.Unit == "Hz" {
		return FrequencyParser(str)
	}
	str = strings.TrimSpace(str)
	if d.Unit != "" {
		str = strings.TrimSpace(strings.TrimSuffix(str, d.Unit))
	}
	return strconv.ParseFloat(str, 64)
}

// Package duration converts elapsed-time values from time-tracking exports
// into billing-quantized decimal hours.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// hmsPattern matches elapsed time in H:MM:SS format (e.g., "1:27:33", "12:05:00")
var hmsPattern = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})$`)

// decimalPattern matches pre-computed decimal hours (e.g., "1.5", "0.25", "3")
var decimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

const (
	// Unit is the suffix appended to formatted hours
	Unit = "h"

	secondsPerQuarter = 15 * 60
	quartersPerHour   = 4
)

var quarterHour = decimal.New(25, -2)

// ParseError describes an elapsed-time value that could not be read
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid duration '%s': %s", e.Raw, e.Reason)
}

// Format converts a raw elapsed time into decimal hours rounded up to the next
// quarter hour, with the unit suffix.
// Valid inputs: "1:27:33" (returns "1.5h"), "1:15:00" (returns "1.25h"),
// "1:59:59" (returns "2h"), "1.2" (returns "1.25h")
func Format(raw string) (string, error) {
	hours, err := Hours(raw)
	if err != nil {
		return "", err
	}
	return hours.String() + Unit, nil
}

// Hours parses raw and returns its length in decimal hours, rounding any
// partial quarter hour up. Hours are unbounded.
func Hours(raw string) (decimal.Decimal, error) {
	input := strings.TrimSpace(raw)
	if input == "" {
		return decimal.Zero, &ParseError{Raw: raw, Reason: "duration cannot be empty"}
	}

	if matches := hmsPattern.FindStringSubmatch(input); matches != nil {
		hours, err := decimal.NewFromString(matches[1])
		if err != nil {
			return decimal.Zero, &ParseError{Raw: raw, Reason: err.Error()}
		}
		minutes, _ := strconv.Atoi(matches[2])
		seconds, _ := strconv.Atoi(matches[3])
		if minutes > 59 {
			return decimal.Zero, &ParseError{Raw: raw, Reason: fmt.Sprintf("minutes must be 0-59, got %d", minutes)}
		}
		if seconds > 59 {
			return decimal.Zero, &ParseError{Raw: raw, Reason: fmt.Sprintf("seconds must be 0-59, got %d", seconds)}
		}
		return hours.Add(QuantizeFraction(minutes, seconds)), nil
	}

	if decimalPattern.MatchString(input) {
		d, err := decimal.NewFromString(input)
		if err != nil {
			return decimal.Zero, &ParseError{Raw: raw, Reason: err.Error()}
		}
		return d.Mul(decimal.NewFromInt(quartersPerHour)).Ceil().Mul(quarterHour), nil
	}

	return decimal.Zero, &ParseError{Raw: raw, Reason: "expected H:MM:SS or decimal hours"}
}

// QuantizeFraction returns the fractional hour of minutes and seconds rounded
// up to the nearest quarter: one of 0, 0.25, 0.5, 0.75 or 1.
func QuantizeFraction(minutes, seconds int) decimal.Decimal {
	return decimal.NewFromInt(fractionQuarters(minutes, seconds)).Mul(quarterHour)
}

// ParseHours reads a formatted value such as "1.5h" back into decimal hours
func ParseHours(formatted string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSuffix(formatted, Unit))
}

// fractionQuarters computes ceil((minutes*60 + seconds) / 900) in integer arithmetic
func fractionQuarters(minutes, seconds int) int64 {
	total := int64(minutes*60 + seconds)
	return (total + secondsPerQuarter - 1) / secondsPerQuarter
}

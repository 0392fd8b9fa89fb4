package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Duration strings are any subset of day/hour/minute/second groups in that
// order, e.g. "1d2h3m4s", "4h 20m", "12.5s".
var durationPattern = regexp.MustCompile(
	`^(?:(\d+\.?\d*)d)?\s*(?:(\d+\.?\d*)h)?\s*(?:(\d+\.?\d*)m)?\s*(?:(\d+\.?\d*)s)?$`)

// ParseDuration converts an engine duration string to seconds. The "-"
// sentinel and the empty string (all groups absent) both yield 0. A string
// matching none of the expected tokens is a format error.
func ParseDuration(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "-" {
		return 0, nil
	}

	match := durationPattern.FindStringSubmatch(text)
	if match == nil {
		return 0, fmt.Errorf("%w: duration %q", ErrFormat, text)
	}

	multipliers := []float64{86400, 3600, 60, 1}
	var seconds float64
	for i, m := range multipliers {
		if match[i+1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(match[i+1], 64)
		if err != nil {
			return 0, fmt.Errorf("%w: duration %q", ErrFormat, text)
		}
		seconds += v * m
	}
	return seconds, nil
}

// Binary multiples relative to one megabyte.
var memoryFactors = map[string]float64{
	"KB": 1.0 / 1024,
	"MB": 1,
	"GB": 1024,
	"TB": 1024 * 1024,
}

// ParseMemory converts a "<number> <unit>" memory string to megabytes.
// Resource fields are optional in trace output, so this parser never fails:
// the "-" sentinel, the empty string and anything unparsable all yield nil.
func ParseMemory(text string) *float64 {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return nil
	}

	parts := strings.Fields(text)
	if len(parts) != 2 {
		return nil
	}

	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil
	}
	factor, ok := memoryFactors[strings.ToUpper(parts[1])]
	if !ok {
		return nil
	}

	mb := num * factor
	return &mb
}

package feed

import (
	"bytes"
	"strconv"
	"strings"
)

// The bundled EntitySport-style dataset is not consistently typed: the same
// field can arrive as a number in one file and a quoted string in the next,
// and match_dls_affected flips between bool and string. FlexInt and FlexBool
// absorb that so document structs stay declarative.

// FlexInt is an integer that decodes from a JSON number, a numeric string,
// or null. Valid reports whether a finite integer was actually present.
type FlexInt struct {
	Value int
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		f.Value = n
		f.Valid = true
		return nil
	}
	if fl, err := strconv.ParseFloat(s, 64); err == nil {
		f.Value = int(fl)
		f.Valid = true
		return nil
	}

	// Unparseable values are tolerated, not fatal; Valid stays false.
	return nil
}

// Or returns the decoded value, or fallback when none was present.
func (f FlexInt) Or(fallback int) int {
	if f.Valid {
		return f.Value
	}
	return fallback
}

// FlexBool is a boolean that decodes from a JSON bool, the string "true"
// (case-insensitive), or a nonzero number. Anything else is false.
type FlexBool struct {
	Value bool
}

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "true":
		f.Value = true
	case s == "false", s == "null", s == "":
		f.Value = false
	case len(s) >= 2 && s[0] == '"':
		inner := strings.TrimSpace(s[1 : len(s)-1])
		f.Value = strings.EqualFold(inner, "true")
	default:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			f.Value = n != 0
		}
	}
	return nil
}

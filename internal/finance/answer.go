package finance

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Answer is a tri-state yes/no question. Unknown means the user has not
// answered yet; every scoring rule treats it the same as No.
type Answer int

const (
	Unknown Answer = iota
	Yes
	No
)

// AnswerOf converts a plain bool into a definite answer.
func AnswerOf(b bool) Answer {
	if b {
		return Yes
	}
	return No
}

// IsYes reports whether the answer is an explicit yes.
func (a Answer) IsYes() bool {
	return a == Yes
}

func (a Answer) String() string {
	switch a {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

// ParseAnswer accepts yes/no/true/false/unknown (case-insensitive). An empty
// string is Unknown.
func ParseAnswer(s string) (Answer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unknown", "null":
		return Unknown, nil
	case "yes", "true", "y":
		return Yes, nil
	case "no", "false", "n":
		return No, nil
	}
	return Unknown, fmt.Errorf("invalid answer %q", s)
}

// MarshalJSON encodes Yes/No as JSON booleans and Unknown as null.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts booleans, null, or the strings understood by ParseAnswer.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var b *bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b == nil {
			*a = Unknown
		} else {
			*a = AnswerOf(*b)
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid answer: %s", string(data))
	}
	parsed, err := ParseAnswer(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// UnmarshalYAML lets CLI input files use yes/no/true/false/unknown.
func (a *Answer) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var b bool
	if err := unmarshal(&b); err == nil {
		*a = AnswerOf(b)
		return nil
	}
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseAnswer(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

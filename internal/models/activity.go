package models

import (
	"fmt"
	"strings"
)

// Activity is a beach use-case that drives which conditions matter
type Activity int

const (
	Swimming Activity = iota
	Sunbathing
	Sailing
	Sunset
	Peace
)

// AllActivities lists every activity in display order
func AllActivities() []Activity {
	return []Activity{Swimming, Sunbathing, Sailing, Sunset, Peace}
}

// Label returns the human-readable name shown in the UI
func (a Activity) Label() string {
	switch a {
	case Swimming:
		return "Swimming"
	case Sunbathing:
		return "Sunbathing"
	case Sailing:
		return "Sailing"
	case Sunset:
		return "Sunset"
	case Peace:
		return "Peace & Quiet"
	}
	return "Unknown"
}

// String returns the canonical lowercase identifier used in flags and URLs
func (a Activity) String() string {
	switch a {
	case Swimming:
		return "swimming"
	case Sunbathing:
		return "sunbathing"
	case Sailing:
		return "sailing"
	case Sunset:
		return "sunset"
	case Peace:
		return "peace"
	}
	return "unknown"
}

// ParseActivity accepts the canonical names plus a few short aliases.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseActivity(s string) (Activity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "swim", "swimming":
		return Swimming, nil
	case "sun", "sunbathing", "sunbathe":
		return Sunbathing, nil
	case "sail", "sailing":
		return Sailing, nil
	case "sunset":
		return Sunset, nil
	case "peace", "quiet":
		return Peace, nil
	}
	return 0, fmt.Errorf("unknown activity %q (valid: swim, sun, sail, sunset, peace)", s)
}

// MarshalText encodes the activity by its canonical name
func (a Activity) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText accepts anything ParseActivity does
func (a *Activity) UnmarshalText(text []byte) error {
	parsed, err := ParseActivity(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

package domain

import "strings"

// BilingualText pairs the romanized form of a name with its native-script
// alternate. Game logic always compares the Original field; the Alternate
// exists for display and for accepting whichever variant the player's UI
// shows.
type BilingualText struct {
	Original  string `json:"original"`
	Alternate string `json:"alternate"`
}

// Bilingual builds a BilingualText, falling back to the original form when
// the catalog has no alternate (common for western artists).
func Bilingual(original, alternate string) BilingualText {
	if alternate == "" {
		alternate = original
	}
	return BilingualText{Original: original, Alternate: alternate}
}

// In returns the form matching the caller's language preference.
func (t BilingualText) In(useAlternate bool) string {
	if useAlternate {
		return t.Alternate
	}
	return t.Original
}

// Matches reports whether two texts agree in either language form,
// case-insensitively.
func (t BilingualText) Matches(o BilingualText) bool {
	return strings.EqualFold(t.Original, o.Original) ||
		strings.EqualFold(t.Alternate, o.Alternate)
}

// IsEmpty reports whether the text carries no value in either form.
func (t BilingualText) IsEmpty() bool {
	return t.Original == "" && t.Alternate == ""
}

package lineitem

import "strings"

// Departments is the fixed set offered by the department selector.
var Departments = []string{
	"Bindery",
	"Cleaning Supplies",
	"Graphics",
	"Prepress",
	"Screen Printing",
	"Embroidery",
	"Heat Press",
	"Sublimation",
	"Laser Engraving",
	"Diamond Drag Engraving",
	"Sand Carving",
	"Trophies",
	"Logo Jet",
	"Promotional Items",
	"Brokered Stationery",
	"Stock",
	"DTF",
	"Sample",
	"Signs",
	"Delivery to Fancy Fox",
	"Return",
	"Extra",
	"Replacement",
	"Blank",
	"Mailing",
	"Press",
	"Brokered Trophies",
	"Brokered Embroidery",
	"Brokered Sublimation",
}

// IsDepartment reports whether name is empty or one of Departments.
func IsDepartment(name string) bool {
	if name == "" {
		return true
	}
	for _, d := range Departments {
		if d == name {
			return true
		}
	}
	return false
}

// StatusVocabulary is the ordered list of status tokens a row can carry.
type StatusVocabulary []string

// DefaultStatusVocabulary holds the tokens used when none are configured.
var DefaultStatusVocabulary = StatusVocabulary{"APPR", "B/O"}

// Contains reports whether token is part of the vocabulary.
func (sv StatusVocabulary) Contains(token string) bool {
	for _, t := range sv {
		if t == token {
			return true
		}
	}
	return false
}

// StatusTokens splits an encoded status into its tokens.
func StatusTokens(status string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(status, "\r", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Checked returns the vocabulary tokens present in status, in vocabulary
// order.
func (sv StatusVocabulary) Checked(status string) []string {
	present := make(map[string]bool)
	for _, t := range StatusTokens(status) {
		present[t] = true
	}
	out := []string{}
	for _, t := range sv {
		if present[t] {
			out = append(out, t)
		}
	}
	return out
}

// Toggle returns the checked tokens after setting token on or off.
func (sv StatusVocabulary) Toggle(status, token string, on bool) []string {
	present := make(map[string]bool)
	for _, t := range sv.Checked(status) {
		present[t] = true
	}
	present[token] = on
	out := []string{}
	for _, t := range sv {
		if present[t] {
			out = append(out, t)
		}
	}
	return out
}

// EncodeStatus joins checked tokens with newlines.
func EncodeStatus(tokens []string) string {
	return strings.Join(tokens, "\n")
}

// Package translation checks that a mutation's translation payloads cover
// the tenant's required language set. Unlike the other validators it reports
// a boolean result plus a human-readable message; callers turn a false
// result into their own failure path.
package translation

import "fmt"

// Entry is one per-language translation payload with its required fields.
type Entry struct {
	LanguageCode string
	Fields       map[string]string
}

// Helper validates completeness against a required language set.
type Helper struct {
	Languages      []string
	RequiredFields []string
}

// Validate returns (false, message) when a required language is missing or
// a required field within a supplied translation is blank.
func (h Helper) Validate(label string, entries []Entry) (bool, string) {
	byLang := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		byLang[entry.LanguageCode] = entry
	}

	for _, lang := range h.Languages {
		entry, ok := byLang[lang]
		if !ok {
			return false, fmt.Sprintf("The %s translation (%s) is required!", label, lang)
		}
		for _, field := range h.RequiredFields {
			if entry.Fields[field] == "" {
				return false, fmt.Sprintf("The %s translation (%s) %s is required!", label, lang, field)
			}
		}
	}

	return true, ""
}

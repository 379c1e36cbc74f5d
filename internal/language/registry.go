package language

import (
	"fmt"

	"pranik/internal/domain"
)

// DefaultLocale is used when a code is not registered.
const DefaultLocale = "en-US"

// Registry is an immutable, ordered set of recognition languages.
type Registry struct {
	entries []domain.Language
	index   map[string]int
}

var builtin = mustNew(
	domain.Language{Code: "en", DisplayName: "English", NativeName: "English", LocaleTag: "en-US"},
	domain.Language{Code: "te", DisplayName: "Telugu", NativeName: "తెలుగు", LocaleTag: "te-IN"},
	domain.Language{Code: "hi", DisplayName: "Hindi", NativeName: "हिन्दी", LocaleTag: "hi-IN"},
	domain.Language{Code: "kn", DisplayName: "Kannada", NativeName: "ಕನ್ನಡ", LocaleTag: "kn-IN"},
	domain.Language{Code: "ta", DisplayName: "Tamil", NativeName: "தமிழ்", LocaleTag: "ta-IN"},
)

// Default returns the built-in registry.
func Default() *Registry {
	return builtin
}

// New builds a registry. Codes must be unique and non-empty.
func New(entries ...domain.Language) (*Registry, error) {
	r := &Registry{
		entries: make([]domain.Language, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, entry := range entries {
		if entry.Code == "" {
			return nil, fmt.Errorf("language %q has no code", entry.DisplayName)
		}
		if _, exists := r.index[entry.Code]; exists {
			return nil, fmt.Errorf("duplicate language code %q", entry.Code)
		}
		r.index[entry.Code] = len(r.entries)
		r.entries = append(r.entries, entry)
	}
	return r, nil
}

func mustNew(entries ...domain.Language) *Registry {
	r, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// List returns the languages in display order.
func (r *Registry) List() []domain.Language {
	out := make([]domain.Language, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup finds a language by code.
func (r *Registry) Lookup(code string) (domain.Language, bool) {
	i, ok := r.index[code]
	if !ok {
		return domain.Language{}, false
	}
	return r.entries[i], true
}

// LocaleFor maps a language code to its speech locale, defaulting to English.
func (r *Registry) LocaleFor(code string) string {
	if lang, ok := r.Lookup(code); ok && lang.LocaleTag != "" {
		return lang.LocaleTag
	}
	return DefaultLocale
}

// Default returns the first registered language.
func (r *Registry) Default() domain.Language {
	if len(r.entries) == 0 {
		return domain.Language{Code: "en", DisplayName: "English", NativeName: "English", LocaleTag: DefaultLocale}
	}
	return r.entries[0]
}

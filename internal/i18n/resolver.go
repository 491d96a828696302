package i18n

import (
	"strings"

	"medfollow-client/internal/session"
)

// Resolver looks keys up in the current language, then the default language,
// then falls back to the symbolic key itself. It never returns an empty string.
type Resolver struct {
	catalog Catalog
}

func NewResolver(catalog Catalog) *Resolver {
	return &Resolver{catalog: catalog}
}

func (r *Resolver) Resolve(lang session.Language, key Key) string {
	if text := r.catalog[lang][key]; text != "" {
		return text
	}
	if text := r.catalog[session.DefaultLanguage][key]; text != "" {
		return text
	}
	return key.String()
}

// Format resolves key and substitutes {placeholder} variables.
func (r *Resolver) Format(lang session.Language, key Key, vars map[string]string) string {
	text := r.Resolve(lang, key)
	if len(vars) == 0 {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for name, value := range vars {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// All resolves every key for lang, keyed by symbolic name.
func (r *Resolver) All(lang session.Language) map[string]string {
	out := make(map[string]string, keyCount)
	for _, key := range AllKeys() {
		out[key.String()] = r.Resolve(lang, key)
	}
	return out
}

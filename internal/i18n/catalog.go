package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"medfollow-client/internal/session"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

type localeFile struct {
	Language string            `yaml:"language"`
	Texts    map[string]string `yaml:"texts"`
}

// Catalog maps language to key to display text. It is immutable once loaded.
type Catalog map[session.Language]map[Key]string

// LoadCatalog decodes the embedded locale files.
func LoadCatalog() (Catalog, error) {
	return LoadCatalogFS(localeFS, "locales")
}

// LoadCatalogFS decodes every *.yaml file under dir. An unknown key or an unsupported
// language is an error; missing keys are reported separately by Validate.
func LoadCatalogFS(fsys fs.FS, dir string) (Catalog, error) {
	paths, err := fs.Glob(fsys, dir+"/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files under %q", dir)
	}

	catalog := make(Catalog, len(paths))
	for _, path := range paths {
		raw, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		var file localeFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}

		lang, ok := session.ParseLanguage(file.Language)
		if !ok {
			return nil, fmt.Errorf("%s: unsupported language %q", path, file.Language)
		}
		if _, dup := catalog[lang]; dup {
			return nil, fmt.Errorf("%s: duplicate catalog for %s", path, lang)
		}

		texts := make(map[Key]string, len(file.Texts))
		for name, text := range file.Texts {
			key, ok := ParseKey(name)
			if !ok {
				return nil, fmt.Errorf("%s: unknown key %q", path, name)
			}
			texts[key] = text
		}
		catalog[lang] = texts
	}

	return catalog, nil
}

// MissingTranslationsError lists keys that do not resolve in a language's own catalog.
type MissingTranslationsError struct {
	Missing map[session.Language][]Key
}

func (e *MissingTranslationsError) Error() string {
	langs := make([]string, 0, len(e.Missing))
	for lang := range e.Missing {
		langs = append(langs, string(lang))
	}
	sort.Strings(langs)

	var b strings.Builder
	b.WriteString("missing translations:")
	for _, lang := range langs {
		keys := e.Missing[session.Language(lang)]
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		fmt.Fprintf(&b, " %s=[%s]", lang, strings.Join(names, ","))
	}
	return b.String()
}

// Validate checks that every key has a non-empty text in every supported language.
func (c Catalog) Validate() error {
	missing := make(map[session.Language][]Key)
	for _, lang := range session.SupportedLanguages {
		texts := c[lang]
		for _, key := range AllKeys() {
			if strings.TrimSpace(texts[key]) == "" {
				missing[lang] = append(missing[lang], key)
			}
		}
	}
	if len(missing) > 0 {
		return &MissingTranslationsError{Missing: missing}
	}
	return nil
}

package session

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the supported UI languages.
type Language string

const (
	English Language = "English"
	Hindi   Language = "Hindi"
	Telugu  Language = "Telugu"

	DefaultLanguage = English
)

// SupportedLanguages is ordered as it appears on the language screen.
var SupportedLanguages = []Language{English, Hindi, Telugu}

var speechTags = map[Language]language.Tag{
	English: language.MustParse("en-US"),
	Hindi:   language.MustParse("hi-IN"),
	Telugu:  language.MustParse("te-IN"),
}

// ParseLanguage accepts the display name ("Hindi") or a BCP 47 tag ("hi-IN", "te").
func ParseLanguage(s string) (Language, bool) {
	s = strings.TrimSpace(s)
	for _, l := range SupportedLanguages {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for l, t := range speechTags {
		if b, _ := t.Base(); b == base {
			return l, true
		}
	}
	return "", false
}

func (l Language) Valid() bool {
	_, ok := speechTags[l]
	return ok
}

// SpeechTag is the tag handed to recognition and synthesis. Unmapped languages use en-US.
func (l Language) SpeechTag() language.Tag {
	if t, ok := speechTags[l]; ok {
		return t
	}
	return speechTags[DefaultLanguage]
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// GeneralSurgeryLabel is sent to the chat endpoint while no surgery type is known.
const GeneralSurgeryLabel = "General Checkup"

// Session is the single mutable record of one running client. It is owned by the
// orchestrator loop and must not be shared across goroutines.
type Session struct {
	Language     Language
	PatientName  string
	PatientPhone string
	SurgeryType  string
	Theme        Theme
}

// New creates the session at startup, restoring persisted preferences.
func New(prefs Preferences) *Session {
	s := &Session{Language: DefaultLanguage, Theme: ThemeLight}
	if prefs.Language.Valid() {
		s.Language = prefs.Language
	}
	if prefs.Theme != "" {
		s.Theme = ParseTheme(string(prefs.Theme))
	}
	return s
}

func (s *Session) SetProfile(name, phone string) {
	s.PatientName = name
	s.PatientPhone = phone
}

// AdoptSurgeryType records the surgery type once. Later values are ignored.
// Reports whether the value was adopted.
func (s *Session) AdoptSurgeryType(v string) bool {
	v = strings.TrimSpace(v)
	if s.SurgeryType != "" || v == "" {
		return false
	}
	s.SurgeryType = v
	return true
}

// ChatSurgeryType is the surgery context sent with every chat request.
func (s *Session) ChatSurgeryType() string {
	if s.SurgeryType == "" {
		return GeneralSurgeryLabel
	}
	return s.SurgeryType
}

func (s *Session) Preferences() Preferences {
	return Preferences{Language: s.Language, Theme: s.Theme}
}

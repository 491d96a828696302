package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRestoresPreferences(t *testing.T) {
	s := New(Preferences{Language: Telugu, Theme: ThemeDark})
	assert.Equal(t, Telugu, s.Language)
	assert.Equal(t, ThemeDark, s.Theme)
	assert.Empty(t, s.PatientName)
	assert.Empty(t, s.PatientPhone)
	assert.Empty(t, s.SurgeryType)

	s = New(Preferences{Language: "Klingon"})
	assert.Equal(t, English, s.Language)
	assert.Equal(t, ThemeLight, s.Theme)
}

func TestAdoptSurgeryTypeIsSetOnce(t *testing.T) {
	s := New(Preferences{})
	assert.Equal(t, GeneralSurgeryLabel, s.ChatSurgeryType())

	assert.False(t, s.AdoptSurgeryType("   "))
	assert.True(t, s.AdoptSurgeryType("Knee Replacement"))
	assert.False(t, s.AdoptSurgeryType("Hip Replacement"))
	assert.Equal(t, "Knee Replacement", s.ChatSurgeryType())
}

func TestSpeechTag(t *testing.T) {
	assert.Equal(t, "en-US", English.SpeechTag().String())
	assert.Equal(t, "hi-IN", Hindi.SpeechTag().String())
	assert.Equal(t, "te-IN", Telugu.SpeechTag().String())
	assert.Equal(t, "en-US", Language("Tamil").SpeechTag().String())
}

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in   string
		want Language
		ok   bool
	}{
		{"Hindi", Hindi, true},
		{"telugu", Telugu, true},
		{"hi-IN", Hindi, true},
		{"te", Telugu, true},
		{"en-GB", English, true},
		{"fr", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLanguage(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, ThemeDark, ThemeLight.Toggle())
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
	assert.Equal(t, ThemeLight, ParseTheme("sepia"))
}

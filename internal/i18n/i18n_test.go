package i18n_test

import (
	"github.com/musoad/iron-quest-sub000/internal/i18n"
	"testing"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		lang i18n.Language
		key  string
		want string
	}{
		{name: "english", lang: i18n.English, key: "type.core", want: "Core"},
		{name: "german", lang: i18n.German, key: "title.warrior", want: "Krieger"},
		{name: "unsupported language falls back", lang: i18n.Language("fi"), key: "stat.STR", want: "Strength"},
		{name: "missing key", lang: i18n.German, key: "nope.nothing", want: "nope.nothing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := i18n.Translate(tt.lang, tt.key); got != tt.want {
				t.Errorf("Translate(%s, %s) = %q, want %q", tt.lang, tt.key, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := map[string]i18n.Language{
		"de":    i18n.German,
		"de-DE": i18n.German,
		" EN ":  i18n.English,
		"fi":    i18n.DefaultLanguage,
		"":      i18n.DefaultLanguage,
	}
	for code, want := range tests {
		if got := i18n.Parse(code); got != want {
			t.Errorf("Parse(%q) = %s, want %s", code, got, want)
		}
	}
}

func TestLabel_everyLanguageHasTheSameKeys(t *testing.T) {
	for _, id := range []string{"multi_joint", "unilateral", "core", "conditioning", "complex", "neat", "rest"} {
		en := i18n.Label(i18n.English, "type", id)
		de := i18n.Label(i18n.German, "type", id)
		if en == "type."+id || de == "type."+id {
			t.Errorf("type %s is missing a label: en %q, de %q", id, en, de)
		}
	}
}

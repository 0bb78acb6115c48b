// ABOUTME: Tests for language detection and string lookup
// ABOUTME: Uses synthetic environments instead of the process environment

package locale

import "testing"

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Lang
	}{
		{"empty falls back to korean", nil, KO},
		{"english LANG", map[string]string{"LANG": "en_US.UTF-8"}, EN},
		{"korean LANG", map[string]string{"LANG": "ko_KR.UTF-8"}, KO},
		{"LC_ALL wins", map[string]string{"LC_ALL": "en_GB", "LANG": "ko_KR"}, EN},
		{"C locale skipped", map[string]string{"LC_ALL": "C", "LANG": "en_US"}, EN},
		{"unsupported falls back", map[string]string{"LANG": "xx_YY"}, KO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(envOf(tt.env)); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if lang, err := Parse("en"); err != nil || lang != EN {
		t.Errorf("Parse(en) = %v, %v", lang, err)
	}

	if lang, err := Parse("ko-KR"); err != nil || lang != KO {
		t.Errorf("Parse(ko-KR) = %v, %v", lang, err)
	}

	if _, err := Parse(""); err == nil {
		t.Error("Parse(\"\") should fail")
	}
}

func TestToggle(t *testing.T) {
	if KO.Toggle() != EN || EN.Toggle() != KO {
		t.Error("Toggle should swap korean and english")
	}
}

func TestT(t *testing.T) {
	if got := T(EN, KeyNavAbout); got != "About" {
		t.Errorf("T(EN, nav.about) = %q", got)
	}

	if got := T(KO, KeyNavAbout); got != "소개" {
		t.Errorf("T(KO, nav.about) = %q", got)
	}

	if got := T(EN, "missing.key"); got != "missing.key" {
		t.Errorf("missing key should return itself, got %q", got)
	}
}

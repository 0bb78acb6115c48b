// ABOUTME: Tests for print mode and shared startup helpers
// ABOUTME: Verifies language resolution order and page output

package main

import (
	"bytes"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"folio/config"
	"folio/locale"
	"folio/tui"
)

func TestResolveLang(t *testing.T) {
	env := func(lang string) func(string) string {
		return func(key string) string {
			if key == "LANG" {
				return lang
			}

			return ""
		}
	}

	tests := []struct {
		name    string
		flag    string
		config  string
		envLang string
		want    locale.Lang
		wantErr bool
	}{
		{"flag wins", "en", "ko", "ko_KR.UTF-8", locale.EN, false},
		{"config before env", "", "ko", "en_US.UTF-8", locale.KO, false},
		{"env when unset", "", "", "en_US.UTF-8", locale.EN, false},
		{"fallback korean", "", "", "", locale.KO, false},
		{"bad flag", "fr", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveLang(tt.flag, tt.config, env(tt.envLang))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}

			if !tt.wantErr && got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRunPrint(t *testing.T) {
	var buf bytes.Buffer

	err := RunPrint(&buf, tui.Options{Lang: locale.EN}, config.DefaultConfig(), 80)
	if err != nil {
		t.Fatalf("RunPrint: %v", err)
	}

	if !strings.Contains(buf.String(), locale.T(locale.EN, locale.KeyNavProjects)) {
		t.Error("Expected the projects heading in the output")
	}
}

func TestRunPrintMissingContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	err := RunPrint(&bytes.Buffer{}, tui.Options{ContentPath: path}, config.DefaultConfig(), 80)
	if err == nil {
		t.Fatal("Expected error for missing content file")
	}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

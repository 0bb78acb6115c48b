// ABOUTME: Korean/English language selection and UI string table
// ABOUTME: Detects the terminal locale with golang.org/x/text/language matching

// Package locale selects the display language and holds interface strings.
package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported display language
type Lang string

// Supported languages. Korean is the default and the fallback.
const (
	KO Lang = "ko"
	EN Lang = "en"
)

var (
	supported = []Lang{KO, EN}
	matcher   = language.NewMatcher([]language.Tag{language.Korean, language.English})
)

// envKeys are checked in POSIX precedence order
var envKeys = []string{"LC_ALL", "LC_MESSAGES", "LANG"}

// Detect picks a language from the environment, falling back to Korean
func Detect(getenv func(string) string) Lang {
	for _, key := range envKeys {
		if lang, ok := match(getenv(key)); ok {
			return lang
		}
	}

	return KO
}

// Parse resolves a user-supplied language name such as "en", "en-US" or "ko_KR.UTF-8"
func Parse(s string) (Lang, error) {
	lang, ok := match(s)
	if !ok {
		return KO, fmt.Errorf("unsupported language %q", s)
	}

	return lang, nil
}

func match(value string) (Lang, bool) {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}

	if value == "" || value == "C" || value == "POSIX" {
		return "", false
	}

	tag, err := language.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return "", false
	}

	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return "", false
	}

	return supported[index], true
}

// Toggle switches between Korean and English
func (l Lang) Toggle() Lang {
	if l == EN {
		return KO
	}

	return EN
}

// String returns the language code
func (l Lang) String() string {
	return string(l)
}

// UI string keys
const (
	KeyNavHero       = "nav.hero"
	KeyNavAbout      = "nav.about"
	KeyNavProjects   = "nav.projects"
	KeyNavContact    = "nav.contact"
	KeyFab           = "fab"
	KeyContactTitle  = "contact.title"
	KeyName          = "contact.name"
	KeyEmail         = "contact.email"
	KeyMessage       = "contact.message"
	KeySend          = "contact.send"
	KeySending       = "contact.sending"
	KeySent          = "contact.sent"
	KeySendFailed    = "contact.failed"
	KeyCopied        = "contact.copied"
	KeyScrollHint    = "hero.scroll"
	KeyReloaded      = "status.reloaded"
	KeyReloadFailed  = "status.reload_failed"
	KeyTuneTitle     = "tune.title"
	KeyHelp          = "help"
	KeyContactButton = "contact.open"
)

var catalog = map[Lang]map[string]string{
	KO: {
		KeyNavHero:       "홈",
		KeyNavAbout:      "소개",
		KeyNavProjects:   "프로젝트",
		KeyNavContact:    "연락처",
		KeyFab:           "✉ 연락하기",
		KeyContactTitle:  "메시지 보내기",
		KeyName:          "이름",
		KeyEmail:         "이메일",
		KeyMessage:       "메시지",
		KeySend:          "전송",
		KeySending:       "전송 중...",
		KeySent:          "메시지가 전송되었습니다. 감사합니다!",
		KeySendFailed:    "전송에 실패했습니다. 잠시 후 다시 시도해주세요.",
		KeyCopied:        "이메일 주소를 복사했습니다",
		KeyScrollHint:    "↓ 스크롤",
		KeyReloaded:      "콘텐츠를 다시 불러왔습니다",
		KeyReloadFailed:  "콘텐츠를 불러오지 못했습니다",
		KeyTuneTitle:     "스크롤 엔진 설정",
		KeyHelp:          "↑/↓ 스크롤 | 1-4 이동 | c 연락 | y 이메일 복사 | L 언어 | t 설정 | q 종료",
		KeyContactButton: "[ 메시지 보내기 ]",
	},
	EN: {
		KeyNavHero:       "Home",
		KeyNavAbout:      "About",
		KeyNavProjects:   "Projects",
		KeyNavContact:    "Contact",
		KeyFab:           "✉ Connect",
		KeyContactTitle:  "Send a message",
		KeyName:          "Name",
		KeyEmail:         "Email",
		KeyMessage:       "Message",
		KeySend:          "Send",
		KeySending:       "Sending...",
		KeySent:          "Message sent. Thank you!",
		KeySendFailed:    "Sending failed. Please try again later.",
		KeyCopied:        "Email address copied",
		KeyScrollHint:    "↓ scroll",
		KeyReloaded:      "Content reloaded",
		KeyReloadFailed:  "Failed to reload content",
		KeyTuneTitle:     "Scroll engine settings",
		KeyHelp:          "↑/↓ scroll | 1-4 jump | c contact | y copy email | L language | t settings | q quit",
		KeyContactButton: "[ Send a message ]",
	},
}

// T returns the interface string for key, or the key itself if missing
func T(lang Lang, key string) string {
	if s, ok := catalog[lang][key]; ok {
		return s
	}

	if s, ok := catalog[KO][key]; ok {
		return s
	}

	return key
}

// Package i18n holds the display-language tables and the per-workspace
// language context.
package i18n

import (
	"strings"
	"sync"
)

type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// Primary is the language every lookup falls back to.
const Primary = English

// Languages lists the selectable languages in display order.
var Languages = []Language{English, French}

// ParseLanguage accepts "en"/"fr" (any case). The second value is false for anything else.
func ParseLanguage(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, true
	case French:
		return French, true
	}
	return Primary, false
}

// Name is the language's own name, used on the switch buttons.
func (l Language) Name() string {
	switch l {
	case French:
		return "Français"
	default:
		return "English"
	}
}

// EnglishName names the language in English, for model instructions.
func (l Language) EnglishName() string {
	switch l {
	case French:
		return "French"
	default:
		return "English"
	}
}

// T looks up key in lang, falling back to the primary table and then to the key itself.
func T(lang Language, key string) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[Primary][key]; ok {
		return s
	}
	return key
}

// Locale is the shared current-language value of one workspace. Views hold a
// pointer to it and subscribe to be re-rendered when it changes.
type Locale struct {
	mu     sync.RWMutex
	lang   Language
	subs   map[int]func(Language)
	nextID int
}

func NewLocale(lang Language) *Locale {
	return &Locale{lang: lang, subs: make(map[int]func(Language))}
}

func (l *Locale) Language() Language {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lang
}

// T translates key in the current language.
func (l *Locale) T(key string) string {
	return T(l.Language(), key)
}

// Set switches the language and notifies subscribers. Setting the current
// language again is a no-op.
func (l *Locale) Set(lang Language) {
	l.mu.Lock()
	if l.lang == lang {
		l.mu.Unlock()
		return
	}
	l.lang = lang
	subs := make([]func(Language), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	for _, fn := range subs {
		fn(lang)
	}
}

// Subscribe registers fn for language changes and returns its unsubscribe func.
func (l *Locale) Subscribe(fn func(Language)) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// Package i18n translates the labels of the interface.
// Korean is the default locale, English the fallback.
package i18n

import (
	"embed"
	"encoding/json"
	"log/slog"
	"no-regret/domain"
	"sync"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

// Translator resolves label keys for the active locale.
// Missing keys fall back to English, then to the key itself.
type Translator struct {
	mu         sync.RWMutex
	log        *slog.Logger
	locale     domain.Locale
	localizers map[domain.Locale]*goi18n.Localizer
}

func NewTranslator(log *slog.Logger, locale domain.Locale) (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, file := range []string{"locales/en.json", "locales/ko.json"} {
		if _, err := bundle.LoadMessageFileFS(locales, file); err != nil {
			return nil, err
		}
	}
	return &Translator{
		log:    log,
		locale: locale,
		localizers: map[domain.Locale]*goi18n.Localizer{
			domain.Korean:  goi18n.NewLocalizer(bundle, string(domain.Korean)),
			domain.English: goi18n.NewLocalizer(bundle, string(domain.English)),
		},
	}, nil
}

func (t *Translator) T(key string) string {
	t.mu.RLock()
	locale := t.locale
	t.mu.RUnlock()

	if s, ok := t.lookup(locale, key); ok {
		return s
	}
	if s, ok := t.lookup(domain.English, key); ok {
		return s
	}
	t.log.Debug("Missing translation", "key", key, "locale", locale)
	return key
}

func (t *Translator) Locale() domain.Locale {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

// Toggle switches to the other locale and returns it.
func (t *Translator) Toggle() domain.Locale {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.locale = t.locale.Toggle()
	return t.locale
}

func (t *Translator) lookup(locale domain.Locale, key string) (string, bool) {
	localizer, ok := t.localizers[locale]
	if !ok {
		return "", false
	}
	s, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: key})
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

package i18n

import (
	"encoding/json"
	"log/slog"
	"no-regret/domain"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestTranslator_T(t *testing.T) {
	req := require.New(t)
	translator, err := NewTranslator(logs.GetLoggerFromLevel(slog.LevelDebug), domain.Korean)
	req.NoError(err)

	tests := []struct {
		name     string
		locale   domain.Locale
		key      string
		expected string
	}{
		{name: "korean label", locale: domain.Korean, key: "chat", expected: "채팅"},
		{name: "english label", locale: domain.English, key: "chat", expected: "Chat"},
		{name: "dotted key", locale: domain.Korean, key: "header.badge", expected: "KO"},
		{name: "korean empty chat", locale: domain.Korean, key: "emptyChat", expected: "최근 10분간 메시지가 없어요"},
		{name: "korean stats", locale: domain.Korean, key: "stats", expected: "메시지"},
		{name: "unknown key", locale: domain.English, key: "nope", expected: "nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translator.locale = tt.locale
			require.Equal(t, tt.expected, translator.T(tt.key))
		})
	}
}

func TestTranslator_Toggle(t *testing.T) {
	req := require.New(t)
	translator, err := NewTranslator(logs.GetLoggerFromLevel(slog.LevelDebug), domain.Korean)
	req.NoError(err)

	req.Equal(domain.English, translator.Toggle())
	req.Equal("EN", translator.T("header.badge"))
	req.Equal(domain.Korean, translator.Toggle())
	req.Equal(domain.Korean, translator.Locale())
}

func TestLocales_Share_Keys(t *testing.T) {
	req := require.New(t)
	catalog := func(file string) map[string]string {
		raw, err := locales.ReadFile(file)
		req.NoError(err)
		var m map[string]string
		req.NoError(json.Unmarshal(raw, &m))
		return m
	}
	en, ko := catalog("locales/en.json"), catalog("locales/ko.json")

	missingInKo, missingInEn := lo.Difference(lo.Keys(en), lo.Keys(ko))
	req.Empty(missingInKo)
	req.Empty(missingInEn)
}

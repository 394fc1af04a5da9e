package domain

type Locale string

const (
	Korean  Locale = "ko"
	English Locale = "en"
)

// Toggle switches between the two supported locales.
func (l Locale) Toggle() Locale {
	if l == Korean {
		return English
	}
	return Korean
}

func ParseLocale(s string) Locale {
	if Locale(s) == English {
		return English
	}
	return Korean
}

type Tab string

const (
	ChatTab    Tab = "chat"
	TodayTab   Tab = "today"
	HistoryTab Tab = "history"
)

package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewChatMessage_Rejects_Blank_Text(t *testing.T) {
	req := require.New(t)
	profile := Profile{AuthorID: "kim@example.com", DisplayName: "kim"}

	for _, text := range []string{"", "   ", "\n\t"} {
		_, ok := NewChatMessage(profile, text, time.Now(), DefaultLimits())
		req.False(ok, "text %q", text)
	}
}

func TestNewChatMessage_Truncates_Text_And_Name(t *testing.T) {
	req := require.New(t)
	at := time.UnixMilli(1_700_000_000_000)
	profile := Profile{DisplayName: "abcdefghijklmnop"}

	// When a 250 characters text is sent
	m, ok := NewChatMessage(profile, strings.Repeat("가", 250), at, DefaultLimits())

	// Then only the first 200 characters are kept
	req.True(ok)
	req.Equal(strings.Repeat("가", 200), m.Text)
	req.Equal("abcdefghij", m.DisplayName)
	req.Equal(at.UnixMilli(), m.SentAt)
}

func TestNewChatMessage_Name_Fallbacks(t *testing.T) {
	req := require.New(t)

	m, ok := NewChatMessage(Profile{AuthorID: "kim@example.com"}, "hi", time.Now(), DefaultLimits())
	req.True(ok)
	req.Equal("kim", m.DisplayName)
	req.Equal("kim@example.com", m.AuthorID)

	m, ok = NewChatMessage(Profile{}, "hi", time.Now(), DefaultLimits())
	req.True(ok)
	req.Equal(DefaultNamePlaceholder, m.DisplayName)
	req.Empty(m.AuthorID)
}

func TestSanitize_Rejects_Text_Blank_Once_Truncated(t *testing.T) {
	req := require.New(t)

	for _, text := range []string{
		strings.Repeat(" ", 200) + "hello",
		strings.Repeat("\t", 250) + "x",
	} {
		_, ok := Sanitize(ChatMessage{DisplayName: "lee", Text: text, SentAt: 42}, DefaultLimits())
		req.False(ok, "text %q", text)
	}

	// Leading blanks followed by text within the limit are kept untouched
	m, ok := Sanitize(ChatMessage{Text: strings.Repeat(" ", 199) + "x"}, DefaultLimits())
	req.True(ok)
	req.Equal(strings.Repeat(" ", 199)+"x", m.Text)
}

func TestSanitize_Keeps_SentAt(t *testing.T) {
	req := require.New(t)
	in := ChatMessage{DisplayName: "", Text: "hello", SentAt: 42}

	out, ok := Sanitize(in, DefaultLimits())

	req.True(ok)
	req.Equal(int64(42), out.SentAt)
	req.Equal(DefaultNamePlaceholder, out.DisplayName)
}

func TestChatMessage_Expired(t *testing.T) {
	req := require.New(t)
	sent := time.UnixMilli(1_700_000_000_000)
	m := ChatMessage{Text: "hi", SentAt: sent.UnixMilli()}
	ttl := 10 * time.Minute

	req.False(m.Expired(sent.Add(ttl), ttl))
	req.True(m.Expired(sent.Add(ttl+time.Millisecond), ttl))
	req.True(m.Expired(sent.Add(11*time.Minute), ttl))
}

func TestLocale_Toggle(t *testing.T) {
	req := require.New(t)
	req.Equal(English, Korean.Toggle())
	req.Equal(Korean, English.Toggle())
	req.Equal(Korean, ParseLocale("fr"))
	req.Equal(English, ParseLocale("en"))
}

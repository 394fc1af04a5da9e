package ui

import (
	"bytes"
	"context"
	"log/slog"
	"no-regret/domain"
	"no-regret/i18n"
	"no-regret/projection"
	"no-regret/runtime/workers"
	"no-regret/services"
	"no-regret/storage"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type fakeStats struct{}

func (fakeStats) RSS() (uint64, error) { return 2048, nil }

type fixture struct {
	session *Session
	out     *bytes.Buffer
	store   *services.MessageStore
	today   *services.TodayService
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	kv := storage.NewMemoryStore()
	now := func() time.Time { return time.UnixMilli(1_700_000_000_000) }

	translator, err := i18n.NewTranslator(log, domain.English)
	require.NoError(t, err)
	fanout := workers.NewEventFanout(log)
	timeline := projection.NewTimeline("")
	profiles := services.NewProfileService(log, kv, fanout, domain.DefaultMaxNameLength)
	profiles.Load(ctx)
	store := services.NewMessageStore(log, kv, nil, services.DefaultMessageStoreConfig(),
		services.WithClock(now), services.WithEventSink(fanout))
	store.Initialize(ctx)
	today := services.NewTodayService(log, kv, fanout, now)
	today.Load(ctx)

	out := &bytes.Buffer{}
	session := NewSession(Deps{
		Log:        log,
		Out:        out,
		Translator: translator,
		Profile:    profiles,
		Messages:   store,
		Today:      today,
		History:    services.NewHistoryService(1, 12),
		Timeline:   timeline,
		Stats:      fakeStats{},
	})
	fanout.Add(timeline, session)
	return fixture{session: session, out: out, store: store, today: today}
}

func TestSession_Requires_Join(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()

	// Given nobody joined, typing shows the join card and stores nothing
	f.session.Handle(ctx, "hello")
	req.Contains(f.out.String(), "Sign in with Email")
	req.Zero(f.store.Len())

	// When joining with a bad email
	f.out.Reset()
	f.session.Handle(ctx, "/join nope")
	req.Contains(f.out.String(), "Please enter a valid email")

	// When joining properly
	f.out.Reset()
	f.session.Handle(ctx, "/join kim@example.com")
	req.Contains(f.out.String(), "Type a message")
}

func TestSession_Chat_Today_History(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	f.session.Handle(ctx, "/join kim@example.com")

	// Chat: free text is sent and rendered
	f.out.Reset()
	f.session.Handle(ctx, "hello there")
	req.Equal(1, f.store.Len())
	req.Contains(f.out.String(), "hello there")

	// Today: plans are added and toggled
	f.session.Handle(ctx, "/add stretch")
	f.session.Handle(ctx, "/add read")
	f.out.Reset()
	f.session.Handle(ctx, "/done 2")
	req.True(f.today.Data().Items[1].Done)
	req.Contains(f.out.String(), "[x]")
	req.Contains(f.out.String(), "stretch")
	req.Equal(domain.TodayTab, f.session.Tab())

	// History
	f.out.Reset()
	f.session.Handle(ctx, "/history")
	req.Contains(f.out.String(), "Activities per week")
	req.Contains(f.out.String(), "W12")
	req.Contains(f.out.String(), "Mind")
}

func TestSession_Lang_Stats_Quit(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	f.session.Handle(ctx, "/join kim@example.com")

	f.out.Reset()
	req.False(f.session.Handle(ctx, "/lang"))
	req.Contains(f.out.String(), "채팅")

	f.out.Reset()
	f.session.Handle(ctx, "/stats")
	req.Contains(f.out.String(), "RSS: 2 KiB")

	f.out.Reset()
	f.session.Handle(ctx, "/what")
	req.Contains(f.out.String(), "/what")

	req.True(f.session.Handle(ctx, "/quit"))
}

func TestSession_Renders_Remote_Messages_On_Chat_Tab(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	ctx := context.Background()
	f.session.Handle(ctx, "/join kim@example.com")

	f.out.Reset()
	f.store.ReceiveRemote(ctx, domain.ChatMessage{AuthorID: "lee@example.com", DisplayName: "lee", Text: "from another tab", SentAt: 1_700_000_000_000})
	req.Contains(f.out.String(), "from another tab")

	// Not rendered while another tab is shown
	f.session.Handle(ctx, "/today")
	f.out.Reset()
	f.store.ReceiveRemote(ctx, domain.ChatMessage{DisplayName: "lee", Text: "hidden", SentAt: 1_700_000_000_000})
	req.False(strings.Contains(f.out.String(), "hidden"))
}

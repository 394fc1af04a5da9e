// Package ui is the console surface of the application.
// It renders the three tabs and translates typed lines into service calls.
// It never touches storage directly.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"no-regret/domain"
	"no-regret/domain/event"
	"no-regret/i18n"
	"no-regret/projection"
	"no-regret/services"
	"strconv"
	"strings"
	"sync"

	"github.com/gookit/color"
)

// Deps groups what a Session drives.
type Deps struct {
	Log        *slog.Logger
	Out        io.Writer
	Translator *i18n.Translator
	Profile    *services.ProfileService
	Messages   *services.MessageStore
	Today      *services.TodayService
	History    *services.HistoryService
	Timeline   *projection.Timeline
	Stats      StatsProvider
}

// Session is the state of one console: active tab, locale and output.
// Output is serialized since relay deliveries are rendered from another goroutine.
type Session struct {
	Deps
	mu  sync.Mutex
	tab domain.Tab
}

func NewSession(deps Deps) *Session {
	if deps.Stats == nil {
		deps.Stats = ProcessStats{}
	}
	return &Session{Deps: deps, tab: domain.ChatTab}
}

func (s *Session) Tab() domain.Tab {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// Start prints the header and the active view.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header()
	s.view()
}

// Handle executes one typed line. It reports true when the user asked to quit.
func (s *Session) Handle(ctx context.Context, line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		s.input(ctx, line)
		return false
	}

	command, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	_, signedIn := s.Profile.Current()
	switch command {
	case "quit", "exit":
		return true
	case "help":
		s.println(s.Translator.T("help"))
		return false
	case "lang":
		s.Translator.Toggle()
		s.refresh()
		return false
	case "join":
		if _, err := s.Profile.Join(ctx, arg); err != nil {
			s.Log.Debug("Join rejected", "error", err)
			s.println(color.New(color.FgRed).Render(s.Translator.T("invalidEmail")))
			return false
		}
		s.refresh()
		return false
	}

	if !signedIn {
		s.refresh()
		return false
	}

	switch command {
	case "chat":
		s.switchTab(domain.ChatTab)
	case "today":
		s.switchTab(domain.TodayTab)
	case "history":
		s.switchTab(domain.HistoryTab)
	case "name":
		if _, err := s.Profile.Rename(ctx, arg); err != nil {
			s.Log.Warn("Rename failed", "error", err)
		}
		s.refresh()
	case "logout":
		if err := s.Profile.Logout(ctx); err != nil {
			s.Log.Error("Logout failed", "error", err)
		}
		s.refresh()
	case "add":
		s.Today.Add(ctx, arg)
		s.switchTab(domain.TodayTab)
	case "done":
		s.toggle(ctx, arg)
		s.switchTab(domain.TodayTab)
	case "stats":
		s.stats()
	default:
		s.println(fmt.Sprintf("%s: /%s", s.Translator.T("unknownCommand"), command))
	}
	return false
}

// Consume renders chat messages as they arrive while the chat tab is shown.
func (s *Session) Consume(_ context.Context, e event.DomainEvent) error {
	posted, ok := e.(event.MessagePosted)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	profile, signedIn := s.Profile.Current()
	if !signedIn || s.tab != domain.ChatTab {
		return nil
	}
	s.chatLine(projection.Line{
		Message: posted.Message,
		Own:     posted.Message.AuthorID == profile.AuthorID,
	})
	return nil
}

func (s *Session) input(ctx context.Context, text string) {
	if _, signedIn := s.Profile.Current(); !signedIn {
		s.refresh()
		return
	}
	switch s.Tab() {
	case domain.ChatTab:
		profile, _ := s.Profile.Current()
		s.Messages.Append(ctx, profile, text)
	case domain.TodayTab:
		if _, ok := s.Today.Add(ctx, text); ok {
			s.refresh()
		}
	}
}

func (s *Session) toggle(ctx context.Context, arg string) {
	n, err := strconv.Atoi(arg)
	items := s.Today.Data().Items
	if err != nil || n < 1 || n > len(items) {
		s.Log.Debug("Ignoring toggle of unknown plan", "arg", arg)
		return
	}
	s.Today.Toggle(ctx, items[n-1].ID)
}

func (s *Session) switchTab(tab domain.Tab) {
	s.mu.Lock()
	s.tab = tab
	s.mu.Unlock()
	s.refresh()
}

func (s *Session) refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.header()
	s.view()
}

func (s *Session) stats() {
	rss, err := s.Stats.RSS()
	if err != nil {
		s.Log.Warn("Failed to collect process stats", "error", err)
	}
	s.println(fmt.Sprintf("%s: %d · RSS: %d KiB", s.Translator.T("stats"), s.Messages.Len(), rss/1024))
}

func (s *Session) println(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.Out, line)
}

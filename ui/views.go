package ui

import (
	"fmt"
	"no-regret/domain"
	"no-regret/projection"
	"strings"

	"github.com/gookit/color"
)

// The functions below expect s.mu to be held.

func (s *Session) header() {
	t := s.Translator
	title := color.New(color.OpBold).Render(t.T("header.title"))
	fmt.Fprintf(s.Out, "%s · %s [%s]\n", title, t.T("header.subtitle"), t.T("header.badge"))

	tabs := []domain.Tab{domain.ChatTab, domain.TodayTab, domain.HistoryTab}
	labels := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := t.T(string(tab))
		if tab == s.tab {
			label = color.New(color.FgGreen, color.OpUnderscore).Render(label)
		}
		labels = append(labels, label)
	}
	fmt.Fprintln(s.Out, strings.Join(labels, " | "))
}

func (s *Session) view() {
	profile, signedIn := s.Profile.Current()
	if !signedIn {
		s.joinCard()
		return
	}
	switch s.tab {
	case domain.ChatTab:
		s.chat(profile)
	case domain.TodayTab:
		s.today()
	case domain.HistoryTab:
		RenderHistory(s.Out, s.Translator, s.History.Weekly(), s.History.Categories())
	}
}

func (s *Session) joinCard() {
	fmt.Fprintf(s.Out, "%s\n  /join <%s>\n", s.Translator.T("joinTitle"), s.Translator.T("email"))
}

func (s *Session) chat(profile domain.Profile) {
	s.Timeline.SetOwner(profile.AuthorID)
	lines := s.Timeline.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(s.Out, color.New(color.FgGray).Render(s.Translator.T("emptyChat")))
	}
	for _, line := range lines {
		s.chatLine(line)
	}
	fmt.Fprintln(s.Out, color.New(color.FgGray).Render(s.Translator.T("chatPlaceholder")))
}

func (s *Session) chatLine(line projection.Line) {
	m := line.Message
	at := m.SentTime().Format("15:04")
	if line.Own {
		fmt.Fprintf(s.Out, "%40s %s\n", color.New(color.FgGreen).Render(m.Text), at)
		return
	}
	fmt.Fprintf(s.Out, "%s %s: %s\n", at, color.New(color.FgCyan).Render(m.DisplayName), m.Text)
}

func (s *Session) today() {
	data := s.Today.Data()
	fmt.Fprintf(s.Out, "%s (%s)\n", s.Translator.T("addPlan"), data.Date)
	if len(data.Items) == 0 {
		fmt.Fprintln(s.Out, color.New(color.FgGray).Render(s.Translator.T("emptyToday")))
		return
	}
	for i, item := range data.Items {
		mark := "[ ]"
		title := item.Title
		if item.Done {
			mark = "[x]"
			title = color.New(color.FgGray, color.OpStrikethrough).Render(title)
		}
		fmt.Fprintf(s.Out, "%2d. %s %s\n", i+1, mark, title)
	}
}

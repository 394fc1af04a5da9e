package projection

import (
	"context"
	"no-regret/domain"
	"no-regret/domain/event"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeline_Consume(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	t0 := time.UnixMilli(1_700_000_000_000)
	timeline := NewTimeline("kim@example.com")

	mine := domain.ChatMessage{AuthorID: "kim@example.com", DisplayName: "kim", Text: "hi", SentAt: t0.UnixMilli()}
	theirs := domain.ChatMessage{AuthorID: "lee@example.com", DisplayName: "lee", Text: "yo", SentAt: t0.Add(time.Minute).UnixMilli()}

	// Given two posted messages
	req.NoError(timeline.Consume(ctx, event.MessagePosted{Message: mine}))
	req.NoError(timeline.Consume(ctx, event.MessagePosted{Message: theirs, Remote: true}))

	// Then own messages are flagged
	req.Equal([]Line{{Message: mine, Own: true}, {Message: theirs, Own: false}}, timeline.Lines())

	// When the first one expires
	req.NoError(timeline.Consume(ctx, event.MessagesPruned{Count: 1, Cutoff: t0.Add(time.Second)}))

	// Then only the second is left
	req.Equal([]Line{{Message: theirs}}, timeline.Lines())

	// And a profile change moves ownership
	req.NoError(timeline.Consume(ctx, event.ProfileChanged{Profile: domain.Profile{AuthorID: "lee@example.com"}}))
	req.True(timeline.Lines()[0].Own)
}

func TestTimeline_Reset(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline("")
	messages := []domain.ChatMessage{{Text: "a"}, {Text: "b"}}

	timeline.Reset(messages)
	messages[0].Text = "changed"

	lines := timeline.Lines()
	req.Len(lines, 2)
	req.Equal("a", lines[0].Message.Text)
	req.False(lines[0].Own)
}

package mock

import (
	"context"

	"github.com/AmKilopa/KlpGIT"
)

// Compile-time interface verification.
var (
	_ klpgit.Broadcaster            = (*Broadcaster)(nil)
	_ klpgit.CommitMessageSuggester = (*Suggester)(nil)
)

// Broadcaster is a mock implementation of klpgit.Broadcaster.
type Broadcaster struct {
	BroadcastFn func(event string, data any)
}

func (b *Broadcaster) Broadcast(event string, data any) {
	b.BroadcastFn(event, data)
}

// Suggester is a mock implementation of klpgit.CommitMessageSuggester.
type Suggester struct {
	SuggestFn func(ctx context.Context, diff *klpgit.Diff) (string, error)
}

func (s *Suggester) Suggest(ctx context.Context, diff *klpgit.Diff) (string, error) {
	return s.SuggestFn(ctx, diff)
}

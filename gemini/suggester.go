package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AmKilopa/KlpGIT"
)

var _ klpgit.CommitMessageSuggester = (*Suggester)(nil)

// DefaultSuggestTimeout bounds a single suggestion request.
const DefaultSuggestTimeout = 30 * time.Second

// maxPromptLines caps the number of diff lines sent to the model.
const maxPromptLines = 400

const suggestInstruction = `You write git commit messages.
Given a diff, reply with one line in the Conventional Commits format:
type(optional scope): summary

Use one of feat, fix, refactor, docs, test, chore, style, perf, build, ci.
Keep the line under 72 characters, imperative mood, no trailing period.`

// SuggesterOption configures a Suggester.
type SuggesterOption func(*Suggester)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) SuggesterOption {
	return func(s *Suggester) {
		s.timeout = d
	}
}

// Suggester proposes commit messages using Gemini.
type Suggester struct {
	client  GenerativeClient
	model   string
	timeout time.Duration
}

// NewSuggester creates a Suggester. An empty model selects DefaultModel.
func NewSuggester(client GenerativeClient, model string, opts ...SuggesterOption) *Suggester {
	if model == "" {
		model = DefaultModel
	}
	s := &Suggester{
		client:  client,
		model:   model,
		timeout: DefaultSuggestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Suggest returns a one-line commit message for diff.
func (s *Suggester) Suggest(ctx context.Context, diff *klpgit.Diff) (string, error) {
	if diff == nil || len(diff.Files) == 0 {
		return "", klpgit.ErrNoChanges
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	contents := []*Content{{Parts: []*Part{{Text: BuildSuggestPrompt(diff)}}}}
	resp, err := s.client.GenerateContent(ctx, s.model, contents, BuildSuggestConfig())
	if err != nil {
		return "", fmt.Errorf("generate commit message: %w", err)
	}

	var out struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &out); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	msg := firstLine(out.Message)
	if msg == "" {
		return "", errors.New("empty commit message in response")
	}
	return msg, nil
}

// BuildSuggestPrompt renders the file list followed by the changed lines.
// Lines past maxPromptLines are dropped.
func BuildSuggestPrompt(diff *klpgit.Diff) string {
	var sb strings.Builder

	sb.WriteString("Files:\n")
	for _, c := range diff.Changes() {
		fmt.Fprintf(&sb, "- %s (%s, +%d -%d)\n", c.Path, c.Operation, c.Added, c.Removed)
	}

	sb.WriteString("\nDiff:\n")
	written := 0
	for _, f := range diff.Files {
		if f.IsBinary {
			continue
		}
		fmt.Fprintf(&sb, "--- %s\n", f.Path())
		for _, h := range f.Hunks {
			fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
			for _, line := range h.Lines {
				if written == maxPromptLines {
					sb.WriteString("[diff truncated]\n")
					return sb.String()
				}
				sb.WriteString(linePrefix(line.Type))
				sb.WriteString(line.Content)
				sb.WriteByte('\n')
				written++
			}
		}
	}
	return sb.String()
}

// BuildSuggestConfig returns the generation config for a suggestion request.
func BuildSuggestConfig() *GenerateContentConfig {
	temp := float32(0.2)
	return &GenerateContentConfig{
		SystemInstruction: &Content{Parts: []*Part{{Text: suggestInstruction}}},
		Temperature:       &temp,
		MaxOutputTokens:   256,
		ResponseMIMEType:  "application/json",
		ResponseSchema: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"message": {Type: "string", Description: "Single-line conventional commit message"},
			},
			Required: []string{"message"},
		},
	}
}

func linePrefix(t klpgit.LineType) string {
	switch t {
	case klpgit.LineAdded:
		return "+"
	case klpgit.LineDeleted:
		return "-"
	default:
		return " "
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

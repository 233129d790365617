// Package prompt composes the classifier prompt deterministically.
// The training promotion ETL replays this exact composition from stored
// inputs, so any change here changes what future training rows look like;
// keep the templates append-only and versioned through the system prompt
package prompt

import (
	"fmt"
	"strings"
)

// ContextItem is one retrieved reference snippet fed into the user prompt.
// Order matters and is preserved verbatim from retrieval
type ContextItem struct {
	Label   string  `json:"label"`
	Content string  `json:"content"`
	Kind    string  `json:"kind"` // slang-term | case-example
	Score   float64 `json:"score"`
}

// Message is a single chat message in provider-neutral form
type Message struct {
	Role    string `json:"role"` // system | user
	Content string `json:"content"`
}

const systemPrompt = `You are a safety reviewer for a public comment section. ` +
	`Assess whether the comment indicates self-harm or crisis risk for its author. ` +
	`Reference examples of community slang and prior cases may be provided; use them ` +
	`to interpret ambiguous phrasing, not as verdicts. ` +
	`Respond with strict JSON only: {"risk_level":"low|medium|high|critical",` +
	`"confidence":<0..1>,"reason":"<short explanation>"}.`

// System returns the fixed system prompt
func System() string { return systemPrompt }

// User renders the user prompt from the redacted comment text and the
// ordered retrieval context. Identical inputs produce identical output
func User(redactedText string, ctx []ContextItem) string {
	var b strings.Builder
	if len(ctx) > 0 {
		b.WriteString("Reference examples:\n")
		for i, c := range ctx {
			fmt.Fprintf(&b, "%d. [%s] %s: %s\n", i+1, c.Kind, c.Label, c.Content)
		}
		b.WriteString("\n")
	}
	b.WriteString("Comment:\n")
	b.WriteString(redactedText)
	return b.String()
}

// Messages bundles the system and user prompts in provider-neutral form.
// This is the exact shape persisted to training rows
func Messages(redactedText string, ctx []ContextItem) []Message {
	return []Message{
		{Role: "system", Content: System()},
		{Role: "user", Content: User(redactedText, ctx)},
	}
}

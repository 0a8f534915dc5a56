// Package assistant provides the AI chat helper. It has no access to the
// stores; its only shared state is a session-local conversation log.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrExternalService wraps any non-success from the AI collaborator. Callers
// surface a generic failure and do not retry.
var ErrExternalService = errors.New("assistant service unavailable")

const systemPreamble = "You are a helpful AI assistant focused on productivity and student success. " +
	"Provide varied, personalized responses based on the specific question."

// Client is the external AI collaborator: send text, receive text.
type Client interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

type message struct {
	role    string
	content string
}

// Conversation is an append-only, session-local chat log. It folds a short
// trailing window of prior assistant replies into each prompt as context.
type Conversation struct {
	client         Client
	contextReplies int
	log            []message
}

// NewConversation creates a conversation over the given client, carrying up
// to contextReplies trailing assistant replies as prompt context.
func NewConversation(client Client, contextReplies int) *Conversation {
	if contextReplies < 0 {
		contextReplies = 0
	}
	return &Conversation{client: client, contextReplies: contextReplies}
}

// BuildPrompt assembles the preamble, the trailing assistant context and the
// user's query into a single prompt.
func (c *Conversation) BuildPrompt(query string) string {
	var b strings.Builder
	b.WriteString(systemPreamble)

	if prior := c.trailingAssistantReplies(); len(prior) > 0 {
		b.WriteString("\nPrevious context: ")
		b.WriteString(strings.Join(prior, " | "))
	}

	b.WriteString("\n\nUser: ")
	b.WriteString(query)
	return b.String()
}

func (c *Conversation) trailingAssistantReplies() []string {
	var replies []string
	for i := len(c.log) - 1; i >= 0 && len(replies) < c.contextReplies; i-- {
		if c.log[i].role == "assistant" {
			replies = append(replies, c.log[i].content)
		}
	}
	// Restore chronological order
	for i, j := 0, len(replies)-1; i < j; i, j = i+1, j-1 {
		replies[i], replies[j] = replies[j], replies[i]
	}
	return replies
}

// Ask sends a query and appends both sides to the log. On failure the log is
// unchanged and the error wraps ErrExternalService.
func (c *Conversation) Ask(ctx context.Context, query string) (string, error) {
	reply, err := c.client.Reply(ctx, c.BuildPrompt(query))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	c.log = append(c.log,
		message{role: "user", content: query},
		message{role: "assistant", content: reply},
	)
	return reply, nil
}

// Len returns the number of messages exchanged so far.
func (c *Conversation) Len() int {
	return len(c.log)
}

// Clear discards the conversation history.
func (c *Conversation) Clear() {
	c.log = nil
}

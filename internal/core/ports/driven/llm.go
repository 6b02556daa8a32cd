package driven

import "context"

// ChatClient provides chat/completion operations against an external
// language model endpoint.
//
// Implementations may include:
//   - OpenAI (gpt-4o, gpt-4o-mini)
//   - OpenAI-compatible inference servers
type ChatClient interface {
	// Chat sends a conversation and returns the complete response with
	// token usage accounting.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error)

	// ChatStream sends a conversation and delivers incremental text
	// deltas to onDelta as they arrive. It returns the accumulated
	// result once the stream terminates. A non-nil error from onDelta
	// abandons the stream.
	ChatStream(ctx context.Context, messages []ChatMessage, opts ChatOptions, onDelta func(delta string) error) (*ChatResult, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// ChatOptions configures a completion call.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// TokenUsage is the endpoint's token accounting for one call.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatResult is the outcome of a completion call.
type ChatResult struct {
	// Content is the full response text.
	Content string

	// Usage is the token accounting. Streaming endpoints may leave it
	// zero when the provider does not report usage for streams.
	Usage TokenUsage
}

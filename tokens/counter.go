package tokens

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// Counter counts and truncates text in model tokens.
type Counter struct {
	encoder *tiktoken.Tiktoken
	mu      sync.Mutex
}

// NewCounter returns a tiktoken counter for the model, falling back to cl100k_base
// for models tiktoken does not know.
func NewCounter(modelName string) (*Counter, error) {
	encoder, err := tiktoken.EncodingForModel(modelName)
	if err != nil {
		encoder, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			return nil, err
		}
	}
	return &Counter{encoder: encoder}, nil
}

// NewEstimatingCounter returns a counter that estimates four characters per token.
func NewEstimatingCounter() *Counter {
	return &Counter{}
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	if c.encoder == nil {
		return estimateTokens(text)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.encoder.Encode(text, nil, nil))
}

// Truncate keeps the leading maxTokens tokens of text. maxTokens <= 0 disables truncation.
func (c *Counter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	if c.encoder == nil {
		maxRunes := maxTokens * 4
		if utf8.RuneCountInString(text) <= maxRunes {
			return text
		}
		return string([]rune(text)[:maxRunes])
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	encoded := c.encoder.Encode(text, nil, nil)
	if len(encoded) <= maxTokens {
		return text
	}
	return c.encoder.Decode(encoded[:maxTokens])
}

func estimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	return (n + 3) / 4
}

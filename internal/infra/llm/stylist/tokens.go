package stylist

import (
	"log/slog"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates prompt size.
type TokenCounter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

func (c tiktokenCounter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// WordCounter approximates tokens by whitespace separated words.
type WordCounter struct{}

// Count implements TokenCounter.
func (WordCounter) Count(text string) int {
	return len(strings.Fields(text))
}

// NewTokenCounter loads the named BPE encoding, falling back to word counts
// when it cannot be loaded (the encoding files are fetched on first use).
func NewTokenCounter(encoding string, logger *slog.Logger) TokenCounter {
	if strings.TrimSpace(encoding) == "" {
		return WordCounter{}
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		if logger != nil {
			logger.Warn("tokenizer unavailable, using word counts", "encoding", encoding, "error", err)
		}
		return WordCounter{}
	}
	return tiktokenCounter{enc: enc}
}

package storage

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

const previewWidth = 100

// ExchangeMatch is one search hit in the archive.
type ExchangeMatch struct {
	Record  ExchangeRecord
	Role    string // which side matched: "user" or "assistant"
	Preview string
	Score   int
}

// Search fuzzy-matches query against the user messages and assistant replies
// of every archived exchange, best matches first.
func (a *ExchangeArchive) Search(query string) ([]ExchangeMatch, error) {
	if query == "" {
		return []ExchangeMatch{}, nil
	}

	records, err := a.List()
	if err != nil {
		return nil, err
	}

	// Two haystack entries per record, same order as records.
	haystack := make([]string, 0, len(records)*2)
	for _, rec := range records {
		haystack = append(haystack, rec.UserMessage, rec.AssistantReply)
	}

	var matches []ExchangeMatch
	for _, m := range fuzzy.Find(query, haystack) {
		rec := records[m.Index/2]
		role := "user"
		if m.Index%2 == 1 {
			role = "assistant"
		}

		matches = append(matches, ExchangeMatch{
			Record:  rec,
			Role:    role,
			Preview: preview(m.Str),
			Score:   m.Score,
		})
	}

	return matches, nil
}

// preview flattens content to one line and truncates it by display width so
// wide runes don't overflow the column.
func preview(content string) string {
	flat := strings.Join(strings.Fields(content), " ")
	return runewidth.Truncate(flat, previewWidth, "...")
}

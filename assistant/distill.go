package assistant

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// candidateBlob is the raw conversational state handed to the distillation
// call: previous memory, latest message, latest reply, as one structured unit.
type candidateBlob struct {
	Memory                string `json:"memory"`
	LastUserMessage       string `json:"lastUserMessage"`
	LastAssistantResponse string `json:"lastAssistantResponse"`
}

// BuildCandidateBlob combines the exchange into the JSON unit the
// distillation prompt operates on.
func BuildCandidateBlob(memory, userMessage, reply string) (string, error) {
	data, err := json.Marshal(candidateBlob{
		Memory:                memory,
		LastUserMessage:       userMessage,
		LastAssistantResponse: reply,
	})
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TidyDistilled normalizes a distilled reply before it is persisted. Models
// routinely wrap the compressed state in a markdown fence or bend the JSON
// slightly (single quotes, trailing commas); strip the fence and run
// jsonrepair when the text looks like JSON but doesn't parse.
//
// Text that doesn't look like JSON at all is returned as-is: the memory blob
// is opaque by contract, and a free-form answer is still a valid blob.
func TidyDistilled(raw string) string {
	out := strings.TrimSpace(raw)
	out = stripFence(out)

	if !looksLikeJSON(out) || json.Valid([]byte(out)) {
		return out
	}

	repaired, err := jsonrepair.JSONRepair(out)
	if err != nil || !json.Valid([]byte(repaired)) {
		return out
	}
	return repaired
}

// stripFence removes a surrounding markdown code fence, with or without a
// language tag.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body, ok := strings.CutPrefix(s, "```")
	if !ok {
		return s
	}
	// Drop the language tag line if present.
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(body[:idx])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{[\"") {
			body = body[idx+1:]
		}
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}

func looksLikeJSON(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[")
}

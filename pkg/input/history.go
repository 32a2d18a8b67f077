package input

// MaxHistoryTurns is how many trailing history entries are considered.
const MaxHistoryTurns = 10

// Turn is one prior exchange in a chat conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History filters a raw JSON history value. Only the last MaxHistoryTurns
// entries are examined; of those, entries that are not objects with both role
// and content keys, whose role is not "user" or "assistant", or whose content
// is empty after sanitizing are dropped.
func History(v any) []Turn {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	if len(raw) > MaxHistoryTurns {
		raw = raw[len(raw)-MaxHistoryTurns:]
	}

	turns := make([]Turn, 0, len(raw))
	for _, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		role, hasRole := obj["role"]
		content, hasContent := obj["content"]
		if !hasRole || !hasContent {
			continue
		}
		r, _ := role.(string)
		if r != "user" && r != "assistant" {
			continue
		}
		text := Text(content)
		if text == "" {
			continue
		}
		turns = append(turns, Turn{Role: r, Content: text})
	}
	return turns
}

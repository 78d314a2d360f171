package textutil

import "strings"

// SentenceBudget builds the longest prefix of whole sentences that fits the
// byte budget. Sentences are split on periods; each kept sentence is
// re-terminated with ". " and the result trimmed. The first sentence that
// would overflow the budget (minus ellipsis headroom) stops accumulation;
// nothing is cut mid-sentence.
func SentenceBudget(text string, budget int) string {
	var b strings.Builder
	for _, sentence := range strings.Split(text, ".") {
		sentence = strings.TrimSpace(sentence)
		if b.Len()+len(sentence) >= budget-3 {
			break
		}
		b.WriteString(sentence)
		b.WriteString(". ")
	}
	return strings.TrimSpace(b.String())
}

// TruncateAtWord shortens text to at most max bytes, cutting at the last
// word boundary and appending an ellipsis. Text already within the limit is
// returned unchanged.
func TruncateAtWord(text string, max int) string {
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// Clamp returns text cut to at most max bytes with surrounding whitespace
// trimmed. Used for alt text, where accessibility guidance caps length but a
// trailing ellipsis adds nothing.
func Clamp(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) > max {
		text = text[:max]
	}
	return strings.TrimSpace(text)
}

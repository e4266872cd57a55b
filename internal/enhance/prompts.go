package enhance

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"cadence/internal/core"
)

// CaptionRewritePromptTemplate asks for a rewrite that keeps the template's tone.
const CaptionRewritePromptTemplate = `Rewrite this social media caption for the topic "%s".

Requirements:
- 1-2 sentences, under %d characters
- Keep the emoji style of the original (2-4 emojis)
- Be conversational and encourage interaction
- Do not include hashtags; they are added separately
- Reply with the caption only

Original caption: %s

Rewritten caption:`

// BuildCaptionPrompt renders the rewrite prompt for an entry.
func BuildCaptionPrompt(entry core.DayEntry, maxLen int) string {
	return fmt.Sprintf(CaptionRewritePromptTemplate, entry.Topic, maxLen, entry.Caption)
}

var labelPrefixes = []string{"rewritten caption:", "caption:", "here's the caption:", "here is the caption:"}

// CleanCaption turns a raw completion into a caption, or returns an error
// wrapping ErrMalformedResponse when nothing usable remains.
func CleanCaption(text string, minLen, maxLen int) (string, error) {
	text = strings.TrimSpace(text)
	if para, _, found := strings.Cut(text, "\n\n"); found {
		text = para
	}

	for stripped := true; stripped; {
		stripped = false
		text = strings.TrimSpace(strings.Trim(strings.TrimSpace(text), "\"'`“”"))
		lower := strings.ToLower(text)
		for _, prefix := range labelPrefixes {
			if strings.HasPrefix(lower, prefix) {
				text = text[len(prefix):]
				stripped = true
				break
			}
		}
	}

	words := strings.Fields(text)
	kept := words[:0]
	for _, w := range words {
		if !strings.HasPrefix(w, "#") {
			kept = append(kept, w)
		}
	}
	caption := strings.Join(kept, " ")

	n := utf8.RuneCountInString(caption)
	switch {
	case n == 0:
		return "", malformed("empty caption")
	case n < minLen:
		return "", malformed("caption too short (%d < %d)", n, minLen)
	case n > maxLen:
		return "", malformed("caption too long (%d > %d)", n, maxLen)
	}
	return caption, nil
}

package core

import (
	"regexp"
	"strings"
)

// Filter masks block-listed terms in message bodies. Matching is
// whole-word and case-insensitive. Filtering is idempotent as long as
// the mask token is not itself a block-listed word.
type Filter struct {
	re   *regexp.Regexp
	mask string
}

// NewFilter compiles the block list into a single alternation. An empty
// list yields a pass-through filter.
func NewFilter(words []string, mask string) *Filter {
	if mask == "" {
		mask = "***"
	}

	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		return &Filter{mask: mask}
	}

	re := regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
	return &Filter{re: re, mask: mask}
}

// Apply replaces every block-listed term in text with the mask token.
func (f *Filter) Apply(text string) string {
	if f == nil || f.re == nil {
		return text
	}
	return f.re.ReplaceAllString(text, f.mask)
}

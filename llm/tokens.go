package llm

import (
	"sort"
	"strings"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

var (
	codec     tokenizer.Codec
	codecOnce sync.Once
	codecErr  error
)

// getCodec returns the cl100k_base tokenizer, a reasonable
// approximation for most code models.
func getCodec() (tokenizer.Codec, error) {
	codecOnce.Do(func() {
		codec, codecErr = tokenizer.Get(tokenizer.Cl100kBase)
	})
	return codec, codecErr
}

// approxRunesPerToken backs the fallback estimate when the codec is
// unavailable.
const approxRunesPerToken = 4

func countTokens(text string) int {
	c, err := getCodec()
	if err != nil {
		return len([]rune(text)) / approxRunesPerToken
	}
	ids, _, err := c.Encode(text)
	if err != nil {
		return len([]rune(text)) / approxRunesPerToken
	}
	return len(ids)
}

// budgetContext trims prefix and suffix to fit budget tokens combined,
// split two to one in the prefix's favor. The prefix keeps its tail and
// the suffix keeps its head, so the text nearest the cursor survives.
// Trimming happens on line boundaries.
func budgetContext(prefix, suffix string, budget int) (string, string) {
	if budget <= 0 {
		return prefix, suffix
	}
	prefixBudget := budget * 2 / 3
	suffixBudget := budget - prefixBudget
	return tailWithin(prefix, prefixBudget), headWithin(suffix, suffixBudget)
}

// tailWithin drops leading lines of s until the remainder fits the
// token budget.
func tailWithin(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if countTokens(s) <= budget {
		return s
	}
	lines := strings.Split(s, "\n")
	k := sort.Search(len(lines), func(i int) bool {
		return countTokens(strings.Join(lines[i:], "\n")) <= budget
	})
	if k >= len(lines) {
		// Even the last line alone blows the budget.
		return tailRunes(lines[len(lines)-1], budget*approxRunesPerToken)
	}
	return strings.Join(lines[k:], "\n")
}

// headWithin drops trailing lines of s until the remainder fits the
// token budget.
func headWithin(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	if countTokens(s) <= budget {
		return s
	}
	lines := strings.Split(s, "\n")
	k := sort.Search(len(lines), func(i int) bool {
		return countTokens(strings.Join(lines[:len(lines)-i], "\n")) <= budget
	})
	if k >= len(lines) {
		return headRunes(lines[0], budget*approxRunesPerToken)
	}
	return strings.Join(lines[:len(lines)-k], "\n")
}

func tailRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func headRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

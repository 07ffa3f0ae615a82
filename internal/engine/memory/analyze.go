package memory

import (
	"regexp"
	"strings"
)

var wordRE = regexp.MustCompile(`[a-zA-Z0-9]+`)

// compact stopword list; extend as needed
var stopwords = map[string]bool{
	"the": true, "is": true, "and": true, "a": true, "an": true, "of": true, "to": true, "in": true,
	"for": true, "on": true, "with": true, "by": true, "that": true, "this": true, "it": true, "as": true,
	"are": true, "was": true, "at": true, "from": true, "be": true, "has": true, "have": true,
}

// tokenize returns lowercase word tokens from text, filtering stopwords.
func tokenize(text string) []string {
	text = strings.ToLower(text)
	var tokens []string
	for _, m := range wordRE.FindAllString(text, -1) {
		if stopwords[m] {
			continue
		}
		tokens = append(tokens, m)
	}
	return tokens
}

// termBag counts query term occurrences, preserving first-seen order.
func termBag(tokens []string) (order []string, freq map[string]int) {
	freq = make(map[string]int, len(tokens))
	for _, t := range tokens {
		if _, seen := freq[t]; !seen {
			order = append(order, t)
		}
		freq[t]++
	}
	return order, freq
}

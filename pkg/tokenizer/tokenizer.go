// Package tokenizer estimates token counts for prompt budgeting.
//
// The estimate assumes one token per four characters, which holds roughly
// for English prose. Text in other languages or with heavy punctuation can
// deviate substantially; when the backend rejects a request as too long,
// trust its usage numbers over this estimate.
package tokenizer

import "unicode/utf8"

// CountTokens returns the approximate number of tokens in text.
func CountTokens(text string) int {
	return utf8.RuneCountInString(text) / 4
}

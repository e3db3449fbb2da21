package tokenizer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// nonAlphanumericRegex matches sequences of non-alphanumeric characters.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// acronymRegex handles cases like "HTTPRequest" -> "HTTP Request"
var acronymRegex = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)

// camelCaseRegex handles cases like "theOffice" -> "the Office" or "myAPI" -> "my API"
var camelCaseRegex = regexp.MustCompile(`([a-z0-9])([A-Z])`)

// Tokenize converts a string into a slice of tokens.
// It splits camel/PascalCase, lowercases the string, and splits by non-alphanumeric characters.
func Tokenize(text string) []string {
	// 1. Split camelCase/PascalCase
	processedText := acronymRegex.ReplaceAllString(text, "$1 $2")
	processedText = camelCaseRegex.ReplaceAllString(processedText, "$1 $2")

	// 2. Lowercase
	lowerText := strings.ToLower(processedText)

	// 3. Split by non-alphanumeric characters
	split := nonAlphanumericRegex.Split(lowerText, -1)

	tokens := make([]string, 0) // Initialize as empty slice, not nil
	for _, s := range split {
		if s != "" { // Filter out empty strings
			tokens = append(tokens, s)
		}
	}
	return tokens
}

// PayloadToken is a token of a payload field together with its optional payload.
type PayloadToken struct {
	Term       string
	Payload    float64
	HasPayload bool
}

// TokenizeWithPayloads splits delimited payload text ("red|5 blue|2.5 green")
// on whitespace. Each chunk is lowercased; the part after the last delimiter
// is parsed as the payload. A chunk without delimiter, or whose payload is not
// a finite number, becomes a token without payload.
func TokenizeWithPayloads(text, delimiter string) []PayloadToken {
	tokens := make([]PayloadToken, 0)
	for _, chunk := range strings.Fields(text) {
		term := chunk
		var token PayloadToken

		if delimiter != "" {
			if i := strings.LastIndex(chunk, delimiter); i >= 0 {
				term = chunk[:i]
				if payload, err := strconv.ParseFloat(chunk[i+len(delimiter):], 64); err == nil && !math.IsNaN(payload) && !math.IsInf(payload, 0) {
					token.Payload = payload
					token.HasPayload = true
				}
			}
		}

		token.Term = strings.ToLower(term)
		if token.Term == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

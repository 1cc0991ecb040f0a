package mecab

import (
	"strings"
	"unicode/utf8"
)

// Spaces is the whitespace set the engine drops from its output.
const Spaces = " \n\r\t\v"

const spacePOS = "SP"

// Token is one analysed span of the input.
type Token struct {
	Surface string  `json:"surface"`
	Feature Feature `json:"feature"`
}

// ReinsertSpaces restores the whitespace the engine dropped. Every rune of
// text found in spaces becomes its own token carrying SpaceFeature, so a
// run of three blanks yields three tokens. Engine tokens are passed
// through unchanged and in order.
//
// The surfaces of tokens must concatenate to text with the runes in spaces
// removed; otherwise an *AlignmentError is returned.
func ReinsertSpaces(text string, tokens []Token, spaces string) ([]Token, error) {
	results := make([]Token, 0, len(tokens)+strings.Count(text, " ")+1)
	textPtr := 0
	tokenPtr := 0

	for textPtr < len(text) {
		r, size := utf8.DecodeRuneInString(text[textPtr:])
		if strings.ContainsRune(spaces, r) {
			results = append(results, Token{Surface: text[textPtr : textPtr+size], Feature: SpaceFeature()})
			textPtr += size
			continue
		}

		if tokenPtr >= len(tokens) {
			return nil, &AlignmentError{Offset: textPtr, Reason: "tokens exhausted before end of text"}
		}
		token := tokens[tokenPtr]
		if !strings.HasPrefix(text[textPtr:], token.Surface) {
			return nil, &AlignmentError{Offset: textPtr, Surface: token.Surface, Reason: "surface does not match text"}
		}
		results = append(results, token)
		textPtr += len(token.Surface)
		tokenPtr++
	}

	if tokenPtr != len(tokens) {
		return nil, &AlignmentError{Offset: textPtr, Surface: tokens[tokenPtr].Surface, Reason: "token left over after end of text"}
	}
	return results, nil
}

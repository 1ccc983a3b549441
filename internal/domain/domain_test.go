package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lower case", input: "cat", expected: "CAT"},
		{name: "surrounding whitespace", input: "  dog\n", expected: "DOG"},
		{name: "multi-byte letters", input: "çay", expected: "ÇAY"},
		{name: "decomposed letters are composed", input: "c\u0327ay", expected: "ÇAY"},
		{name: "no case", input: "猫", expected: "猫"},
		{name: "empty", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestWordEntry_CategoryOrDefault(t *testing.T) {
	assert.Equal(t, "animals", WordEntry{Category: "animals"}.CategoryOrDefault())
	assert.Equal(t, DefaultCategory, WordEntry{}.CategoryOrDefault())
	assert.Equal(t, DefaultCategory, WordEntry{Category: "  "}.CategoryOrDefault())
}

func TestWordEntry_Letters(t *testing.T) {
	assert.Equal(t, []rune{'Ç', 'A', 'Y'}, WordEntry{Text: "ÇAY"}.Letters())
}

func TestCommittedWord_IsACopy(t *testing.T) {
	tokens := []Token{{ID: 1, Letter: 'C'}, {ID: 2, Letter: 'A'}, {ID: 3, Letter: 'T'}}

	word := NewCommittedWord(tokens)
	tokens[0].Letter = 'B'
	word.Tokens()[1].Letter = 'X'

	assert.Equal(t, "CAT", word.Text())
	assert.Equal(t, 3, word.Len())
}

func TestMatchResult_IsAvailable(t *testing.T) {
	res := MatchResult{ValidNextLetters: []rune("TR")}

	assert.True(t, res.IsAvailable('T'))
	assert.True(t, res.IsAvailable('R'))
	assert.False(t, res.IsAvailable('X'))
	assert.False(t, MatchResult{}.IsAvailable('T'))
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		sentinel error
		message  string
	}{
		{
			name:     "not a prefix",
			err:      &Error{Kind: KindNotAPrefix, Op: "autofill", Detail: `"DOG" does not extend "C"`},
			sentinel: ErrNotAPrefix,
			message:  `autofill: not a prefix: "DOG" does not extend "C"`,
		},
		{
			name:     "invalid index",
			err:      &Error{Kind: KindInvalidIndex, Op: "evict committed word"},
			sentinel: ErrInvalidIndex,
			message:  "evict committed word: invalid index",
		},
		{
			name:     "sentinel",
			err:      ErrSentenceModeDisabled,
			sentinel: ErrSentenceModeDisabled,
			message:  "sentence mode disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("handler: %w", tt.err)

			assert.Equal(t, tt.message, tt.err.Error())
			assert.True(t, errors.Is(wrapped, tt.sentinel))
			assert.False(t, errors.Is(tt.err, errors.New(tt.message)))
		})
	}

	assert.False(t, errors.Is(&Error{Kind: KindNotAPrefix}, ErrInvalidIndex))
}

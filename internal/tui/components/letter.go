// Package components provides shared UI components for the TUI.
package components

import (
	"github.com/f3rmion/abc/internal/gesture"
	"github.com/f3rmion/abc/internal/lesson"
)

// LetterInfo holds what the views show about one letter.
type LetterInfo struct {
	Letter        rune
	Pronunciation string
	Example       string
	Dedicated     bool // has its own shape classifier
	Samples       int  // recorded samples in the store
}

// DescribeLetter collects the display data for a letter.
func DescribeLetter(lang lesson.Language, letter rune, counts map[rune]int) LetterInfo {
	info := lang.Info(letter)
	_, dedicated := gesture.ClassifierFor(letter)
	return LetterInfo{
		Letter:        letter,
		Pronunciation: info.Pronunciation,
		Example:       info.Example,
		Dedicated:     dedicated,
		Samples:       counts[letter],
	}
}

// Recognition names how a letter is recognized.
func (l LetterInfo) Recognition() string {
	if l.Dedicated {
		return "shape classifier"
	}
	return "complexity fallback"
}

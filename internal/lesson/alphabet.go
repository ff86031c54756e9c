// Package lesson holds the state of one letter tracing page: which letter is
// being practiced, the stroke being drawn and the feedback shown to the child.
package lesson

import "unicode"

// Alphabet is the fixed practice order.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Letters returns the alphabet as runes.
func Letters() []rune {
	return []rune(Alphabet)
}

// Cursor is an index into the alphabet that wraps in both directions.
type Cursor struct {
	index int
}

// Index returns the zero-based position of the current letter.
func (c Cursor) Index() int { return c.index }

// Letter returns the current letter.
func (c Cursor) Letter() rune { return rune(Alphabet[c.index]) }

// Next moves to the following letter, wrapping from Z to A.
func (c *Cursor) Next() { c.Move(1) }

// Prev moves to the previous letter, wrapping from A to Z.
func (c *Cursor) Prev() { c.Move(-1) }

// Move shifts the cursor by delta positions modulo the alphabet length.
func (c *Cursor) Move(delta int) {
	n := len(Alphabet)
	c.index = ((c.index+delta)%n + n) % n
}

// Set jumps to a letter. It reports false and leaves the cursor unchanged for
// anything outside A-Z (lower case is accepted).
func (c *Cursor) Set(letter rune) bool {
	letter = unicode.ToUpper(letter)
	if letter < 'A' || letter > 'Z' {
		return false
	}
	c.index = int(letter - 'A')
	return true
}

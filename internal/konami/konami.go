// Package konami detects a key sequence typed on the page.
package konami

import "strings"

// Code is the classic up-up-down-down sequence, as KeyboardEvent.key values.
var Code = []string{
	"ArrowUp", "ArrowUp",
	"ArrowDown", "ArrowDown",
	"ArrowLeft", "ArrowRight",
	"ArrowLeft", "ArrowRight",
	"b", "a",
}

// Listener remembers the most recent key presses. Keys compare case-insensitively.
type Listener struct {
	code []string
	keys []string
}

// New creates a Listener for code, or for Code when none is given
func New(code ...string) *Listener {
	if len(code) == 0 {
		code = Code
	}
	normalized := make([]string, len(code))
	for i, k := range code {
		normalized[i] = strings.ToLower(k)
	}
	return &Listener{
		code: normalized,
		keys: make([]string, 0, len(code)),
	}
}

// Press records a key and reports whether it completed the sequence.
// The buffer starts over after a match.
func (l *Listener) Press(key string) bool {
	if len(l.code) == 0 {
		return false
	}
	if len(l.keys) == len(l.code) {
		l.keys = append(l.keys[:0], l.keys[1:]...)
	}
	l.keys = append(l.keys, strings.ToLower(key))

	if len(l.keys) < len(l.code) {
		return false
	}
	for i := range l.code {
		if l.keys[i] != l.code[i] {
			return false
		}
	}
	l.Reset()
	return true
}

// Reset forgets every key pressed so far
func (l *Listener) Reset() {
	l.keys = l.keys[:0]
}

// Package level implements the dotted outline positions of requirement items ("2.3.1").
//
// A trailing zero segment marks a heading without sub-numbering ("2.0") and is ignored
// for depth and relation queries, but it is kept for ordering so that a heading sorts
// right before its first child.
package level

import (
	"strconv"
	"strings"
)

// Default is used for items which do not declare a level.
const Default = "1"

const separator = "."

// Key is the parsed form of a level string.
type Key []int

// Parse splits a level string on dots. Segments which are not non-negative integers are dropped silently.
func Parse(text string) Key {
	segments := strings.Split(text, separator)
	key := make(Key, 0, len(segments))
	for _, segment := range segments {
		n, err := strconv.Atoi(segment)
		if err != nil || n < 0 {
			continue
		}
		key = append(key, n)
	}
	return key
}

// Strip returns the key without trailing zero segments. The receiver is not modified.
func (k Key) Strip() Key {
	end := len(k)
	for end > 0 && k[end-1] == 0 {
		end--
	}
	return k[:end:end]
}

// Depth is the zero-based nesting depth. A key which strips to nothing has depth 0.
func (k Key) Depth() int {
	n := len(k.Strip())
	if n < 1 {
		n = 1
	}
	return n - 1
}

// IsHeading reports whether the key carries the trailing-zero heading marker.
func (k Key) IsHeading() bool {
	return len(k) > 1 && k[len(k)-1] == 0
}

// Compare orders keys segment by segment, a shorter key precedes a longer one sharing its prefix.
func (k Key) Compare(other Key) int {
	for i := 0; i < len(k) && i < len(other); i++ {
		switch {
		case k[i] < other[i]:
			return -1
		case k[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	}
	return 0
}

func (k Key) Less(other Key) bool {
	return k.Compare(other) < 0
}

func (k Key) String() string {
	parts := make([]string, len(k))
	for i, n := range k {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, separator)
}

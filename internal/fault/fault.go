// Package fault defines the error kinds raised while loading a requirements tree.
//
// Every load error is a *Error which matches exactly one of the sentinel kinds below
// with errors.Is, names the file, prefix or UID involved, and wraps its underlying cause.
package fault

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds, to be matched with errors.Is.
var (
	// ErrRead is returned when a path cannot be opened or read.
	ErrRead = errors.New("read error")

	// ErrFormat is returned when file content does not have the expected shape.
	ErrFormat = errors.New("format error")

	// ErrNaming is returned when a path has no usable identifier component.
	ErrNaming = errors.New("naming error")

	// ErrDiscovery is returned when no document descriptor exists below the given root.
	ErrDiscovery = errors.New("discovery error")

	// ErrDanglingParent is returned when a document names a parent prefix no document has.
	ErrDanglingParent = errors.New("dangling parent")

	// ErrCyclicParent is returned when parent references loop back onto a document.
	ErrCyclicParent = errors.New("cyclic parent")

	// ErrAmbiguousRoot is returned when more than one document has no parent.
	ErrAmbiguousRoot = errors.New("ambiguous root")

	// ErrDuplicatePrefix is returned when two documents are configured with the same prefix.
	ErrDuplicatePrefix = errors.New("duplicate prefix")
)

var kinds = []error{ErrRead, ErrFormat, ErrNaming, ErrDiscovery, ErrDanglingParent, ErrCyclicParent, ErrAmbiguousRoot, ErrDuplicatePrefix}

type Error struct {
	kind    error
	Subject string //path, prefix or UID the error is about
	message string
	cause   error
}

func (e *Error) Error() string {
	var msg strings.Builder
	fmt.Fprintf(&msg, "%s: %s", e.kind, e.message)
	if e.cause != nil {
		fmt.Fprint(&msg, ": ", e.cause)
	}
	return msg.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	return target == e.kind
}

// Kind returns the sentinel the error matches.
func (e *Error) Kind() error {
	return e.kind
}

func newError(kind error, subject string, cause error, format string, values ...interface{}) *Error {
	return &Error{kind: kind, Subject: subject, message: fmt.Sprintf(format, values...), cause: cause}
}

func Read(path string, cause error) *Error {
	return newError(ErrRead, path, cause, "cannot read %s", path)
}

func Format(path string, cause error) *Error {
	return newError(ErrFormat, path, cause, "unexpected content in %s", path)
}

func Naming(path string) *Error {
	return newError(ErrNaming, path, nil, "no identifier can be derived from path %q", path)
}

func Discovery(root string, cause error) *Error {
	return newError(ErrDiscovery, root, cause, "no documents found in %s", root)
}

func DanglingParent(prefix string, parent string) *Error {
	return newError(ErrDanglingParent, prefix, nil, "document %s names unknown parent %s", prefix, parent)
}

func CyclicParent(prefixes ...string) *Error {
	if len(prefixes) == 1 {
		return newError(ErrCyclicParent, prefixes[0], nil, "document %s names itself as parent", prefixes[0])
	}
	return newError(ErrCyclicParent, strings.Join(prefixes, ","), nil, "documents not reachable from the root because their parents form a cycle: %s", strings.Join(prefixes, ", "))
}

func AmbiguousRoot(prefixes ...string) *Error {
	return newError(ErrAmbiguousRoot, strings.Join(prefixes, ","), nil, "documents without parent: %s", strings.Join(prefixes, ", "))
}

func DuplicatePrefix(prefix string, first string, second string) *Error {
	return newError(ErrDuplicatePrefix, prefix, nil, "prefix %s configured by both %s and %s", prefix, first, second)
}

// KindName returns a short label for the kind of err, "unknown" for foreign errors.
func KindName(err error) string {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return strings.ReplaceAll(kind.Error(), " ", "_")
		}
	}
	return "unknown"
}

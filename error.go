package reqtree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/n2code/reqtree/internal/fault"
)

type CommandError struct {
	message string
	cause   error
}

func (e *CommandError) Error() string {
	var msg strings.Builder
	fmt.Fprint(&msg, e.message)
	if e.cause != nil {
		fmt.Fprint(&msg, ": ", e.cause)
	}
	return msg.String()
}

func (e *CommandError) Unwrap() error {
	return e.cause
}

func newCommandError(message string, cause error) *CommandError {
	return &CommandError{message: message, cause: cause}
}

// Load error kinds returned by Open, to be matched with errors.Is.
var (
	ErrRead            = fault.ErrRead
	ErrFormat          = fault.ErrFormat
	ErrNaming          = fault.ErrNaming
	ErrDiscovery       = fault.ErrDiscovery
	ErrDanglingParent  = fault.ErrDanglingParent
	ErrCyclicParent    = fault.ErrCyclicParent
	ErrAmbiguousRoot   = fault.ErrAmbiguousRoot
	ErrDuplicatePrefix = fault.ErrDuplicatePrefix
)

var ErrUnknownPrefix = errors.New("unknown document prefix")
var ErrUnknownItem = errors.New("unknown item")

// ErrorSubject extracts the file path, prefix or UID a load error is about.
func ErrorSubject(err error) (subject string, found bool) {
	var loadErr *fault.Error
	if errors.As(err, &loadErr) {
		return loadErr.Subject, true
	}
	return "", false
}

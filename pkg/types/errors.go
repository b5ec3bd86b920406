package types

import "fmt"

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindFileNotFound       ErrKind = iota // input path missing
	ErrKindMalformedHive                     // bad "regf" magic or truncated base block
	ErrKindMalformedRecord                   // signature or count mismatch inside a record
	ErrKindOutOfBounds                       // read or seek past the end of the content
	ErrKindPathNotFound                      // key path segment without a matching child
	ErrKindBootKeyUnavailable                // SYSTEM hive data needed for the boot key is missing
	ErrKindCycleDetected                     // offset graph points back at an already decoded record
	ErrKindDepthExceeded                     // key nesting deeper than the configured limit
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindFileNotFound:
		return "file not found"
	case ErrKindMalformedHive:
		return "malformed hive"
	case ErrKindMalformedRecord:
		return "malformed record"
	case ErrKindOutOfBounds:
		return "out of bounds"
	case ErrKindPathNotFound:
		return "path not found"
	case ErrKindBootKeyUnavailable:
		return "boot key unavailable"
	case ErrKindCycleDetected:
		return "cycle detected"
	case ErrKindDepthExceeded:
		return "depth exceeded"
	default:
		return fmt.Sprintf("ErrKind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind    ErrKind
	Msg     string
	Record  string // record kind for ErrKindMalformedRecord ("nk", "vk", "ri", ...)
	Segment string // offending segment for ErrKindPathNotFound
	Offset  int    // absolute byte position, when known
	Err     error  // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind, so the sentinels
// below match every error of their category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is.
var (
	ErrFileNotFound       = &Error{Kind: ErrKindFileNotFound, Msg: "hive file not found"}
	ErrMalformedHive      = &Error{Kind: ErrKindMalformedHive, Msg: "not a registry hive (bad regf header)"}
	ErrMalformedRecord    = &Error{Kind: ErrKindMalformedRecord, Msg: "malformed record"}
	ErrOutOfBounds        = &Error{Kind: ErrKindOutOfBounds, Msg: "read out of bounds"}
	ErrPathNotFound       = &Error{Kind: ErrKindPathNotFound, Msg: "path not found"}
	ErrBootKeyUnavailable = &Error{Kind: ErrKindBootKeyUnavailable, Msg: "boot key unavailable"}
	ErrCycleDetected      = &Error{Kind: ErrKindCycleDetected, Msg: "cycle detected in offset graph"}
	ErrDepthExceeded      = &Error{Kind: ErrKindDepthExceeded, Msg: "maximum key depth exceeded"}
)

// MalformedRecord reports a signature or structural mismatch in a record of
// the given kind that starts at absolute position off.
func MalformedRecord(record string, off int) *Error {
	return &Error{
		Kind:   ErrKindMalformedRecord,
		Msg:    fmt.Sprintf("malformed %s record at 0x%x", record, off),
		Record: record,
		Offset: off,
	}
}

// OutOfBounds reports an attempt to access n bytes at pos in content of the
// given size.
func OutOfBounds(pos, n, size int) *Error {
	return &Error{
		Kind:   ErrKindOutOfBounds,
		Msg:    fmt.Sprintf("access of %d bytes at 0x%x exceeds content size 0x%x", n, pos, size),
		Offset: pos,
	}
}

// PathNotFound reports a lookup miss for segment.
func PathNotFound(segment string) *Error {
	return &Error{
		Kind:    ErrKindPathNotFound,
		Msg:     fmt.Sprintf("no child key named %q", segment),
		Segment: segment,
	}
}

// BootKeyUnavailable wraps the reason a boot key could not be derived.
func BootKeyUnavailable(msg string, err error) *Error {
	return &Error{Kind: ErrKindBootKeyUnavailable, Msg: "boot key unavailable: " + msg, Err: err}
}

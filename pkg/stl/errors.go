package stl

// ErrorKind identifies the class of a fatal parse error.
type ErrorKind uint8

const (
	KindEmptyInput ErrorKind = iota + 1
	KindMissingKeywords
	KindUnsupportedInput
	KindInvalidSolid
	KindNotClosed
	KindNoFaces
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyInput:
		return "EmptyInput"
	case KindMissingKeywords:
		return "MissingKeywords"
	case KindUnsupportedInput:
		return "UnsupportedInput"
	case KindInvalidSolid:
		return "InvalidSolid"
	case KindNotClosed:
		return "NotClosed"
	case KindNoFaces:
		return "NoFaces"
	default:
		return "Unknown"
	}
}

// Error is a fatal parse error. Warnings are never errors; they are
// delivered as EventWarning.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotClosed)
// holds regardless of the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrEmptyInput       = &Error{Kind: KindEmptyInput, Msg: "Provided STL-string must not be empty"}
	ErrMissingKeywords  = &Error{Kind: KindMissingKeywords, Msg: "STL string does not contain all stl-keywords!"}
	ErrUnsupportedInput = &Error{Kind: KindUnsupportedInput, Msg: "unsupported input"}
	ErrInvalidSolid     = &Error{Kind: KindInvalidSolid, Msg: "Provided ascii STL contains an invalid solid"}
	ErrNotClosed        = &Error{Kind: KindNotClosed, Msg: "Provided ascii STL is not closed with endsolid keyword"}
	ErrNoFaces          = &Error{Kind: KindNoFaces, Msg: "No faces were specified in the binary STL"}
)

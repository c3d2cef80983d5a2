package graph

import "errors"

// Kind classifies pipeline failures the caller has to see. Everything else
// (best-effort fetches, unparsable files, unresolvable imports) degrades the
// result silently.
type Kind int

const (
	KindUnknown Kind = iota
	// KindInvalidInput: the repository reference is malformed. Nothing was
	// fetched.
	KindInvalidInput
	// KindUpstream: a must-have call to the hosting API failed.
	KindUpstream
	// KindNoRelevantFiles: the default branch holds no file the pipeline
	// analyses.
	KindNoRelevantFiles
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindUpstream:
		return "upstream"
	case KindNoRelevantFiles:
		return "no_relevant_files"
	}
	return "unknown"
}

const (
	MsgInvalidURL = "Invalid GitHub URL format."
	MsgUpstream   = "Failed to fetch repository data. It might be private or does not exist."
)

// Error is a typed pipeline failure. Message is safe to show to users; Err
// holds the underlying cause for logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// UserMessage returns the message to show for err without leaking causes.
func UserMessage(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return MsgUpstream
}

func upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: MsgUpstream, Err: err}
}

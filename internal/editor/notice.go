package editor

// NoticeKind classifies a Notice.
type NoticeKind int

// Notice kinds.
const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeFailure
)

// Notice is the user-visible outcome of a store or retrieve. Err carries
// the underlying cause of a failure for logging; Text is what the user sees.
type Notice struct {
	Kind NoticeKind
	Text string
	Err  error
}

// Failed reports whether the notice describes a failure.
func (n Notice) Failed() bool { return n.Kind == NoticeFailure }

func success(text string) Notice {
	return Notice{Kind: NoticeSuccess, Text: text}
}

func failure(text string, err error) Notice {
	return Notice{Kind: NoticeFailure, Text: text, Err: err}
}

package movieclip

import "errors"

// Transport errors. They are returned synchronously and never retried.
var (
	// ErrInvalidArgument reports a transport call with too many optional
	// arguments, e.g. GotoAndPlay(t, 1, 2).
	ErrInvalidArgument = errors.New("movieclip: invalid argument")

	// ErrInvalidTarget reports a seek to a label that does not exist or a
	// frame token that is not an integer.
	ErrInvalidTarget = errors.New("movieclip: invalid frame target")

	// ErrUnboundSource reports a seek on a timeline with no valid source.
	ErrUnboundSource = errors.New("movieclip: no keyframe source bound")
)

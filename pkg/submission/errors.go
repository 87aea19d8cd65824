package submission

import "errors"

var (
	// ErrInstanceClosed is returned when a lifecycle call races a Close.
	ErrInstanceClosed = errors.New("submission: instance is closed")
	// ErrAlreadySubmitted is returned for submit attempts after the
	// terminal state was reached.
	ErrAlreadySubmitted = errors.New("submission: form already submitted")
	// ErrSubmitInFlight is returned when a submit begins while another is
	// still awaiting its transport outcome.
	ErrSubmitInFlight = errors.New("submission: submit already in flight")
)

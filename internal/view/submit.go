package view

import "sync/atomic"

// SubmitState is the pending-submission flag for a form: while a
// submission is in flight the trigger is disabled, so a second submit
// cannot start. It neither queues nor cancels the in-flight call.
type SubmitState struct {
	inFlight atomic.Bool
}

// Begin marks a submission as started. It returns false if one is
// already in flight, in which case the caller must not submit.
func (s *SubmitState) Begin() bool {
	return s.inFlight.CompareAndSwap(false, true)
}

// Done marks the in-flight submission as resolved, success or failure.
func (s *SubmitState) Done() {
	s.inFlight.Store(false)
}

// InFlight reports whether a submission is pending.
func (s *SubmitState) InFlight() bool {
	return s.inFlight.Load()
}

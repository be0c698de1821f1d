package turret

import "errors"

var (
	// ErrNotReady means the I/O port is absent or failed to initialize.
	// Every operation degrades to a no-op that reports this.
	ErrNotReady = errors.New("hardware port not ready")

	// ErrEStop means the emergency stop is pressed. Returned both when
	// an operation refuses to start and when one halts mid-flight; in
	// the latter case the result carries the progress made.
	ErrEStop = errors.New("emergency stop pressed")

	// ErrLimitTripped means a hardware limit switch is open. A tripped
	// limit on either axis blocks motion on both axes.
	ErrLimitTripped = errors.New("limit switch tripped")

	// ErrSoftLimit means a non-zero move request clamped to zero net
	// effect, distinct from a move that completed with no motion.
	ErrSoftLimit = errors.New("move rejected by soft limits")

	// ErrInvalidJob means a job had nothing executable.
	ErrInvalidJob = errors.New("invalid paint job")

	// ErrAborted means a job stopped at a cooperative abort request.
	ErrAborted = errors.New("aborted by request")

	// ErrHomingBudget means a homing phase exhausted its step budget
	// without the limit switch changing state (wiring/direction fault).
	ErrHomingBudget = errors.New("homing step budget exceeded")
)

package physics

import "errors"

var (
	// ErrCoincident is returned when a body sits exactly on an influence, the pull direction is undefined
	ErrCoincident = errors.New("physics: body coincides with influence")

	// ErrInvalidInfluence rejects self, forward or duplicate influence edges
	ErrInvalidInfluence = errors.New("physics: invalid influence")

	// ErrInvalidBody rejects non-positive mass/radius or non-finite state
	ErrInvalidBody = errors.New("physics: invalid body")
)

package eligibility

import (
	"errors"
	"strings"
)

// ErrRejected is the sentinel kind for every validation rejection; callers
// can match it with errors.Is.
var ErrRejected = errors.New("event rejected")

// Rejection carries every rule a proposal violated. It is recoverable: the
// caller corrects the proposal and retries; nothing was written.
type Rejection struct {
	Reasons []string
}

func (r *Rejection) Error() string {
	return "event rejected: " + strings.Join(r.Reasons, "; ")
}

func (r *Rejection) Unwrap() error {
	return ErrRejected
}

package types

import (
	"fmt"
	"strings"
)

// RemoteError is a non-success reply from the snapshot server. Message and
// Details come from the reply body's "error" and "details" fields.
type RemoteError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *RemoteError) Error() string {
	msg := strings.TrimSpace(e.Message + " " + e.Details)
	if msg == "" {
		return fmt.Sprintf("server returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned status %d: %s", e.StatusCode, msg)
}

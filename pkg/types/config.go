package types

import (
	"errors"
	"fmt"
)

// Config selects and parameterizes the storage opened by Backend.Attach.
// An empty DataDir means the current directory; the CLI always fills it in.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// BackendSQLite is the only storage backend.
const BackendSQLite = "sqlite"

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Validate reports ErrBackendEmpty or a wrapped ErrBackendUnknown naming
// the rejected backend.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendSQLite:
		return nil
	case "":
		return ErrBackendEmpty
	default:
		return fmt.Errorf("%w %q (supported: %s)", ErrBackendUnknown, c.Backend, BackendSQLite)
	}
}

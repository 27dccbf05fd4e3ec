// Package todos holds module-wide metadata for the todos binary.
package todos

// Version is the current release of the todos module.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/todos"

// Package types defines the Task entity, the SnapshotStore and Backend
// interfaces, and the standard errors shared by the todos store, server,
// client and editor.
package types

//go:build mage

// Package main provides build targets for the todos project using Mage.
//
// Usage:
//
//	mage build         Compile the todos binary to bin/
//	mage test:all      Run all tests
//	mage test:race     Run all tests with the race detector
//	mage test:cover    Run all tests and write coverage.out
//	mage lint          Run golangci-lint
//	mage vet           Run go vet
//	mage clean         Remove build artifacts
//	mage install       Install todos to GOPATH/bin
//	mage serve         Build and run the Snapshot Store server
//	mage stats         Print Go LOC and documentation word counts
package main

const (
	binGo      = "go"
	binaryName = "todos"
	binaryDir  = "bin"
	cmdDir     = "./cmd/todos"
	coverFile  = "coverage.out"
)

// Package version carries SDK build information and derives the
// User-Agent header sent with every platform request.
//
// Version and commit are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/skyhubkit/version.Version=1.0.0"
package version

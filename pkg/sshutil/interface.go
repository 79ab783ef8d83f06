package sshutil

import "context"

// Runner executes a single non-interactive command on a remote host.
// The real Client and the fake in sshutil/testing both satisfy it.
type Runner interface {
	// Run executes cmd and returns its stdout. A non-zero exit status is an
	// error that carries the remote stderr.
	Run(ctx context.Context, cmd string) ([]byte, error)

	// Host returns the original host/alias used to connect.
	Host() string

	Close() error
}

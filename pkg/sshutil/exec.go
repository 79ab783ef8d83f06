package sshutil

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rileyhilliard/netbwmon/internal/errors"
	"golang.org/x/crypto/ssh"
)

// ExitError is returned by Run when the remote command exits non-zero.
type ExitError struct {
	Cmd    string
	Status int
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("remote command %q exited with status %d", e.Cmd, e.Status)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// Run executes cmd in a fresh session. Cancelling ctx closes the session,
// which unblocks a command stuck on a dead connection.
func (c *Client) Run(ctx context.Context, cmd string) ([]byte, error) {
	session, err := c.Client.NewSession()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to create SSH session",
			"Connection may have been closed. Try reconnecting.")
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	done := make(chan error, 1)
	go func() { done <- session.Run(cmd) }()

	select {
	case <-ctx.Done():
		session.Close()
		return nil, ctx.Err()
	case err = <-done:
	}

	if err != nil {
		var exitErr *ssh.ExitError
		if stderrors.As(err, &exitErr) {
			return stdout.Bytes(), &ExitError{
				Cmd:    cmd,
				Status: exitErr.ExitStatus(),
				Stderr: strings.TrimSpace(stderr.String()),
			}
		}
		return nil, errors.WrapWithCode(err, errors.ErrExec,
			fmt.Sprintf("Failed to execute command: %s", cmd),
			"Check if the command exists on the remote host.")
	}

	return stdout.Bytes(), nil
}

// Package sshutil dials SSH hosts the way the OpenSSH client would (honouring
// ~/.ssh/config, the agent, default keys and known_hosts) and runs one-shot
// commands on them. The remote counter source uses it to read /proc/net/dev
// on another machine.
package sshutil

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"time"

	"github.com/rileyhilliard/netbwmon/internal/errors"
	"golang.org/x/crypto/ssh"
)

// Client wraps an SSH connection with the host it was opened for.
type Client struct {
	*ssh.Client
	host    string // The original host/alias used to connect
	address string // The resolved address (host:port)
}

// DialOptions tunes Dial. The zero value verifies host keys and relies on
// the context for cancellation.
type DialOptions struct {
	// Timeout bounds the TCP connect and the SSH handshake.
	Timeout time.Duration
	// InsecureIgnoreHostKey skips the known_hosts check.
	InsecureIgnoreHostKey bool
}

// Dial establishes an SSH connection to the specified host.
// The host can be:
//   - An SSH config alias (e.g., "router")
//   - A hostname (e.g., "192.168.1.1")
//   - A user@hostname (e.g., "admin@192.168.1.1")
//   - A hostname:port (e.g., "192.168.1.1:2222")
//
// Connection settings are resolved from ~/.ssh/config when available.
func Dial(ctx context.Context, host string, opts DialOptions) (*Client, error) {
	settings := resolveSSHSettings(host)

	config, err := buildSSHConfig(settings, opts)
	if err != nil {
		var nbErr *errors.Error
		if stderrors.As(err, &nbErr) {
			return nil, err
		}
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Couldn't set up SSH for '%s'", host),
			"Check your keys are loaded: ssh-add -l")
	}

	address := settings.address()
	dialer := net.Dialer{Timeout: opts.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("Can't reach '%s' at %s", host, address),
			suggestionForDialError(err))
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()

		var hostKeyErr *HostKeyMismatchError
		if stderrors.As(err, &hostKeyErr) {
			return nil, errors.New(errors.ErrSSH, hostKeyErr.Error(), hostKeyErr.Suggestion())
		}

		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			fmt.Sprintf("SSH handshake with '%s' didn't go through", host),
			suggestionForHandshakeError(err, settings.encryptedKeys))
	}

	return &Client{
		Client:  ssh.NewClient(sshConn, chans, reqs),
		host:    host,
		address: address,
	}, nil
}

// Host returns the original host/alias used to connect.
func (c *Client) Host() string {
	return c.host
}

// Address returns the resolved host:port address.
func (c *Client) Address() string {
	return c.address
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}

package sshutil

import (
	"crypto/ed25519"
	"crypto/rand"
	stderrors "errors"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

func newHostKey(t *testing.T) ssh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	key, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)
	return key
}

func TestHostKeyCallbackFor(t *testing.T) {
	served := newHostKey(t)
	other := newHostKey(t)
	remote := &net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 22}

	tests := []struct {
		name         string
		opts         DialOptions
		known        ssh.PublicKey
		wantErr      bool
		wantMismatch bool
	}{
		{name: "strict rejects unknown host", wantErr: true},
		{name: "strict accepts known key", known: served},
		{name: "strict flags changed key", known: other, wantErr: true, wantMismatch: true},
		{name: "insecure accepts unknown host", opts: DialOptions{InsecureIgnoreHostKey: true}},
		{name: "insecure ignores changed key", opts: DialOptions{InsecureIgnoreHostKey: true}, known: other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), ".ssh", "known_hosts")
			if tt.known != nil {
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
				line := knownhosts.Line([]string{"router:22", remote.String()}, tt.known)
				require.NoError(t, os.WriteFile(path, []byte(line+"\n"), 0o600))
			}

			callback, err := hostKeyCallbackFor(tt.opts, path)
			require.NoError(t, err)

			err = callback("router:22", remote, served)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var mismatch *HostKeyMismatchError
			assert.Equal(t, tt.wantMismatch, stderrors.As(err, &mismatch))
		})
	}
}

func TestHostKeyCallbackFor_InsecureSkipsKnownHosts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "known_hosts")

	_, err := hostKeyCallbackFor(DialOptions{InsecureIgnoreHostKey: true}, path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "known_hosts is left alone when checking is off")
}

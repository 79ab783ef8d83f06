package counters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rileyhilliard/netbwmon/internal/logger"
	sshtesting "github.com/rileyhilliard/netbwmon/pkg/sshutil/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemote_Linux(t *testing.T) {
	runner := sshtesting.NewFakeRunner("router").
		On("uname -s", sshtesting.Response{Stdout: []byte("Linux\n")}).
		On("cat '/proc/net/dev'", sshtesting.Response{Stdout: []byte(sampleNetDev)})

	src := NewRemote(runner, "", time.Second, nil)
	ctx := context.Background()

	c, err := src.Read(ctx, "eth0")
	require.NoError(t, err)
	assert.Equal(t, Counters{RxBytes: 98765432, TxBytes: 12345678}, c)

	_, err = src.Read(ctx, "eth0")
	require.NoError(t, err)

	// uname runs once per connection.
	assert.Equal(t, []string{"uname -s", "cat '/proc/net/dev'", "cat '/proc/net/dev'"}, runner.Calls())

	name, err := src.Detect(ctx)
	require.NoError(t, err)
	assert.Equal(t, "eth0", name, "loopback is skipped")

	assert.Equal(t, "ssh:router", src.Describe())
	require.NoError(t, src.Close())
	assert.True(t, runner.Closed())
}

func TestRemote_Darwin(t *testing.T) {
	runner := sshtesting.NewFakeRunner("mac").
		On("uname -s", sshtesting.Response{Stdout: []byte("Darwin\n")}).
		On("netstat -ibn", sshtesting.Response{Stdout: []byte(sampleNetstat)})

	src := NewRemote(runner, "", time.Second, nil)
	c, err := src.Read(context.Background(), "en0")
	require.NoError(t, err)
	assert.Equal(t, Counters{RxBytes: 12345678, TxBytes: 9876543}, c)
}

func TestRemote_Errors(t *testing.T) {
	t.Run("uname fails", func(t *testing.T) {
		runner := sshtesting.NewFakeRunner("box").
			On("uname -s", sshtesting.Response{Err: errors.New("connection reset")})
		_, err := NewRemote(runner, "", time.Second, nil).Read(context.Background(), "eth0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "detect remote OS")
	})

	t.Run("interface disappears", func(t *testing.T) {
		runner := sshtesting.NewFakeRunner("box").
			On("uname -s", sshtesting.Response{Stdout: []byte("Linux")}).
			On("cat '/proc/net/dev'", sshtesting.Response{Stdout: []byte("h1\nh2\n")})
		_, err := NewRemote(runner, "", time.Second, nil).Read(context.Background(), "eth0")
		assert.True(t, IsNotFound(err))
	})

	t.Run("custom proc path is quoted", func(t *testing.T) {
		runner := sshtesting.NewFakeRunner("box").
			On("uname -s", sshtesting.Response{Stdout: []byte("Linux")}).
			On("cat '/host proc/net/dev'", sshtesting.Response{Stdout: []byte(sampleNetDev)})
		_, err := NewRemote(runner, "/host proc/net/dev", time.Second, nil).Read(context.Background(), "lo")
		assert.NoError(t, err)
	})
}

func TestRemote_LogsToInjectedLogger(t *testing.T) {
	tests := []struct {
		name   string
		uname  string
		cmd    string
		output string
		iface  string
		want   string
	}{
		{"linux", "Linux\n", "cat '/proc/net/dev'", sampleNetDev, "eth0", "remote router runs Linux"},
		{"darwin", "Darwin\n", "netstat -ibn", sampleNetstat, "en0", "remote router runs Darwin"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := sshtesting.NewFakeRunner("router").
				On("uname -s", sshtesting.Response{Stdout: []byte(tt.uname)}).
				On(tt.cmd, sshtesting.Response{Stdout: []byte(tt.output)})
			log := logger.NewBufferLogger()

			_, err := NewRemote(runner, "", time.Second, log).Read(context.Background(), tt.iface)
			require.NoError(t, err)

			require.True(t, log.HasLevel("debug"))
			assert.Equal(t, tt.want, log.Messages[0].Message)
		})
	}
}

package counters

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/netbwmon/internal/config"
	"github.com/rileyhilliard/netbwmon/internal/logger"
	"github.com/rileyhilliard/netbwmon/internal/util"
	"github.com/rileyhilliard/netbwmon/pkg/sshutil"
)

// Remote reads another machine's counters over SSH: /proc/net/dev on Linux,
// `netstat -ibn` on macOS and the BSDs.
type Remote struct {
	runner   sshutil.Runner
	procPath string
	timeout  time.Duration
	log      logger.Logger

	once   sync.Once
	osName string
	osErr  error
}

// NewRemote wraps an established runner. A nil log discards output.
func NewRemote(runner sshutil.Runner, procPath string, timeout time.Duration, log logger.Logger) *Remote {
	if procPath == "" {
		procPath = DefaultProcPath
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Remote{
		runner:   runner,
		procPath: procPath,
		timeout:  timeout,
		log:      log,
	}
}

// DialRemote connects to sc.Host and returns a Remote source.
func DialRemote(ctx context.Context, sc config.SourceConfig, log logger.Logger) (*Remote, error) {
	client, err := sshutil.Dial(ctx, sc.Host, sshutil.DialOptions{
		Timeout:               sc.Timeout,
		InsecureIgnoreHostKey: !sc.StrictHostKeyChecking,
	})
	if err != nil {
		return nil, err
	}
	return NewRemote(client, sc.ProcPath, sc.Timeout, log), nil
}

func (r *Remote) run(ctx context.Context, cmd string) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return r.runner.Run(ctx, cmd)
}

// remoteOS runs `uname -s` once per connection.
func (r *Remote) remoteOS(ctx context.Context) (string, error) {
	r.once.Do(func() {
		out, err := r.run(ctx, "uname -s")
		if err != nil {
			r.osErr = fmt.Errorf("detect remote OS on %s: %w", r.runner.Host(), err)
			return
		}
		r.osName = strings.TrimSpace(string(out))
		r.log.Debug("remote %s runs %s", r.runner.Host(), r.osName)
	})
	return r.osName, r.osErr
}

func (r *Remote) Read(ctx context.Context, name string) (Counters, error) {
	return readFromList(ctx, r, name)
}

func (r *Remote) List(ctx context.Context) ([]Interface, error) {
	osName, err := r.remoteOS(ctx)
	if err != nil {
		return nil, err
	}

	if osName == "Linux" {
		out, err := r.run(ctx, "cat "+util.ShellQuote(r.procPath))
		if err != nil {
			return nil, err
		}
		return ParseNetDev(string(out))
	}

	out, err := r.run(ctx, "netstat -ibn")
	if err != nil {
		return nil, err
	}
	return ParseNetstat(string(out))
}

// Detect picks the first non-loopback row; flags of remote interfaces
// aren't available.
func (r *Remote) Detect(ctx context.Context) (string, error) {
	list, err := r.List(ctx)
	if err != nil {
		return "", err
	}
	return detectFirstNonLoopback(list)
}

func (r *Remote) Describe() string {
	return "ssh:" + r.runner.Host()
}

func (r *Remote) Close() error {
	return r.runner.Close()
}

package counters

import (
	"context"
	"fmt"
	"os"
)

// DefaultProcPath is the Linux per-interface counter table.
const DefaultProcPath = "/proc/net/dev"

// ProcFS reads counters from a net/dev file.
type ProcFS struct {
	path string
}

// NewProcFS creates a source reading path (DefaultProcPath if empty).
func NewProcFS(path string) *ProcFS {
	if path == "" {
		path = DefaultProcPath
	}
	return &ProcFS{path: path}
}

func (p *ProcFS) Read(ctx context.Context, name string) (Counters, error) {
	return readFromList(ctx, p, name)
}

func (p *ProcFS) List(ctx context.Context) ([]Interface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}
	return ParseNetDev(string(data))
}

func (p *ProcFS) Detect(ctx context.Context) (string, error) {
	return detectLocal(ctx, p)
}

func (p *ProcFS) Describe() string {
	return "procfs"
}

func (p *ProcFS) Close() error {
	return nil
}

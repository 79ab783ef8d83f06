package counters

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/rileyhilliard/netbwmon/internal/config"
	"github.com/rileyhilliard/netbwmon/internal/logger"
)

// New builds the source selected by cfg.Kind. "auto" prefers procfs on Linux
// when the file is readable and falls back to gopsutil. log receives the
// remote source's diagnostics and may be nil.
func New(ctx context.Context, cfg config.SourceConfig, log logger.Logger) (Source, error) {
	switch cfg.Kind {
	case config.SourceProcFS:
		return NewProcFS(cfg.ProcPath), nil
	case config.SourceGopsutil:
		return NewGopsutil(), nil
	case config.SourceSSH:
		return DialRemote(ctx, cfg, log)
	case config.SourceAuto, "":
		if cfg.Host != "" {
			return DialRemote(ctx, cfg, log)
		}
		path := cfg.ProcPath
		if path == "" {
			path = DefaultProcPath
		}
		if runtime.GOOS == "linux" {
			if _, err := os.Stat(path); err == nil {
				return NewProcFS(path), nil
			}
		}
		return NewGopsutil(), nil
	default:
		return nil, fmt.Errorf("unknown counter source %q", cfg.Kind)
	}
}

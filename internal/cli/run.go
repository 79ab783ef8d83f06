package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/netbwmon/internal/config"
	"github.com/rileyhilliard/netbwmon/internal/counters"
	"github.com/rileyhilliard/netbwmon/internal/dashboard"
	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/rileyhilliard/netbwmon/internal/logger"
	"github.com/rileyhilliard/netbwmon/internal/metrics"
	"github.com/rileyhilliard/netbwmon/internal/monitor"
	"github.com/rileyhilliard/netbwmon/internal/ui"
	"github.com/rileyhilliard/netbwmon/pkg/sshutil"
)

// runDashboard resolves the source and interface, then hands the terminal
// to the dashboard until the user quits.
func runDashboard(ctx context.Context, cfg *config.Config, opts *rootOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if !dashboard.IsTerminal(os.Stdout) {
		return errors.New(errors.ErrTerminal,
			"Standard output is not a terminal",
			"Run netbwmon in an interactive terminal, or use 'netbwmon interfaces' for plain output.")
	}

	colors := colorsEnabled(cfg, os.Stdout)
	if !colors {
		ui.DisableColors()
	}

	if err := setupLogging(cfg.Logging); err != nil {
		return err
	}
	defer logger.Close()
	log := logger.NewEnvLogger("netbwmon")

	if opts.pickHost {
		host, err := pickHost()
		if err != nil {
			return err
		}
		if host == "" {
			return nil
		}
		cfg.Source.Host = host
		if cfg.Source.Kind == config.SourceAuto {
			cfg.Source.Kind = config.SourceSSH
		}
	}

	src, err := openSource(ctx, cfg.Source, log)
	if err != nil {
		return err
	}
	defer src.Close()
	log.Info("reading counters from %s", src.Describe())

	name := cfg.Interface
	if opts.pick {
		name, err = pickInterface(ctx, src, cfg.Interface, cfg.UseSI())
		if err != nil {
			return err
		}
	}
	name, err = counters.Resolve(ctx, src, name)
	if err != nil {
		return err
	}
	log.Info("monitoring %s every %s", name, cfg.Interval())

	engine := monitor.NewEngine(src, monitor.Options{
		Interface:  name,
		UseSI:      cfg.UseSI(),
		Colors:     colors,
		ShowStats:  cfg.Stats.Enabled,
		StatsEvery: cfg.Stats.Every,
		Logger:     log,
	})

	dcfg := dashboard.Config{
		Interval: cfg.Interval(),
		Logger:   log,
	}
	if cfg.Metrics.Addr != "" {
		exp := metrics.New()
		srv, err := metrics.Serve(cfg.Metrics.Addr, exp, log)
		if err != nil {
			return err
		}
		defer srv.Close()
		dcfg.Publish = exp.Publish
	}

	if cfg.UI.Mode == config.ModeTUI {
		return dashboard.RunTUI(ctx, engine, dcfg)
	}
	return dashboard.Run(ctx, engine, dcfg)
}

// setupLogging keeps log output off the dashboard's terminal: it goes to the
// rotating file when one is configured and is discarded otherwise.
func setupLogging(l config.LoggingConfig) error {
	if err := logger.SetLevel(l.Level); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid log level %q", l.Level),
			"Use one of: debug, info, warn, error.")
	}
	if l.File == "" {
		logger.SetOutput(io.Discard)
		return nil
	}
	if err := logger.EnableFileLogging(l.File, l.MaxSize, l.MaxBackups, l.MaxAge); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to open log file "+l.File,
			"Check that the directory exists and is writable, or drop --log-file.")
	}
	return nil
}

// openSource builds the counter source, classifying failures for the user.
func openSource(ctx context.Context, sc config.SourceConfig, log logger.Logger) (counters.Source, error) {
	src, err := counters.New(ctx, sc, log)
	if err == nil {
		return src, nil
	}
	if errors.IsCode(err, errors.ErrSSH) {
		return nil, err
	}
	if sc.Host != "" {
		return nil, errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to connect to "+sc.Host,
			"Check that 'ssh "+sc.Host+"' works without a password prompt.")
	}
	return nil, errors.WrapWithCode(err, errors.ErrCounter,
		"Failed to open the counter source",
		"Try --source gopsutil, or point --proc-path at a readable net/dev file.")
}

func pickHost() (string, error) {
	hosts, err := sshutil.ListHosts()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrSSH,
			"Failed to read ~/.ssh/config",
			"Pass the host directly with --host.")
	}
	if len(hosts) == 0 {
		return "", errors.New(errors.ErrSSH,
			"No hosts found in ~/.ssh/config",
			"Pass the host directly with --host.")
	}
	entry, err := ui.PickSSHHost(hosts)
	if err != nil {
		return "", err
	}
	if entry == nil {
		return "", nil
	}
	return entry.Alias, nil
}

func pickInterface(ctx context.Context, src counters.Source, preselect string, si bool) (string, error) {
	list, err := src.List(ctx)
	if err != nil {
		return "", errors.CounterReadFailure("", err)
	}
	if preselect == "" {
		preselect, _ = src.Detect(ctx)
	}
	return ui.PickInterface(interfaceChoices(list, si), preselect)
}

// interfaceChoices labels each interface with its lifetime totals.
func interfaceChoices(list []counters.Interface, si bool) []ui.InterfaceOption {
	choices := make([]ui.InterfaceOption, len(list))
	for i, iface := range list {
		choices[i] = ui.InterfaceOption{
			Name:  iface.Name,
			Label: fmt.Sprintf("rx %s  tx %s", humanBytes(iface.RxBytes, si), humanBytes(iface.TxBytes, si)),
		}
	}
	return choices
}

func humanBytes(n uint64, si bool) string {
	if si {
		return humanize.Bytes(n)
	}
	return humanize.IBytes(n)
}

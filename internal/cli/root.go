package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/rileyhilliard/netbwmon/internal/config"
	"github.com/rileyhilliard/netbwmon/internal/dashboard"
	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/rileyhilliard/netbwmon/internal/ui"
	"github.com/spf13/cobra"
)

// rootOptions are root-only flags that don't map onto config keys.
type rootOptions struct {
	pick     bool
	pickHost bool
	version  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "netbwmon",
		Short: "Live network bandwidth graphs in the terminal",
		Long: `netbwmon draws live receive and transmit graphs for one network
interface, with averages and totals underneath.

Keys: q quit, s toggle SI/binary units, c toggle colors, t toggle stats.

Examples:
  netbwmon                 # first active interface, 1s refresh
  netbwmon -i eth0 -d 0.5  # eth0, two samples per second
  netbwmon --host router   # interfaces of a remote host over SSH`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(cmd.OutOrStdout(), "netbwmon %s\n", formatVersion(version))
				return nil
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runDashboard(cmd.Context(), cfg, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.String("config", "", "config file (default ./.netbwmon.yaml, then ~/.config/netbwmon/config.yaml)")
	pf.String("source", "", "counter source: auto, procfs, gopsutil or ssh")
	pf.String("host", "", "read counters from a remote host over SSH (host, user@host or ssh_config alias)")
	pf.String("proc-path", "", "net/dev file read by the procfs and ssh sources")
	pf.String("log-level", "", "log level: debug, info, warn or error")

	f := cmd.Flags()
	f.StringP("interface", "i", "", "interface to monitor (default: first active one)")
	f.Float64P("delay", "d", 0, "seconds between samples, fractions allowed (default 1)")
	f.BoolP("si", "s", false, "use SI units (kB, MB) instead of binary (KiB, MiB)")
	f.BoolP("no-color", "c", false, "disable colors")
	f.Bool("no-stats", false, "hide the stats panel")
	f.Bool("tui", false, "use the full-screen bubbletea front end")
	f.String("log-file", "", "write logs to this file, rotated")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9273")
	f.BoolVar(&opts.pick, "pick", false, "choose the interface from a list")
	f.BoolVar(&opts.pickHost, "pick-host", false, "choose the SSH host from ~/.ssh/config")
	f.BoolVarP(&opts.version, "version", "v", false, "print the version and exit")

	cmd.AddCommand(
		newInterfacesCmd(),
		newConfigCmd(),
		newDoctorCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
	registerCompletions(cmd)
	return cmd
}

var rootCmd = newRootCmd()

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes one diagnostic block. Structured errors carry their own
// symbol and suggestion; anything else gets the failure symbol.
func printError(w io.Writer, err error) {
	var nbErr *errors.Error
	if stderrors.As(err, &nbErr) {
		fmt.Fprint(w, err.Error())
		return
	}
	fmt.Fprintf(w, "%s %s\n", ui.SymbolFail, err.Error())
}

// loadConfig layers explicit flags over the config file and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, _, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies flags the user actually set onto cfg, so unset flags
// never mask file or environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()

	stringFlags := map[string]*string{
		"interface":    &cfg.Interface,
		"source":       &cfg.Source.Kind,
		"host":         &cfg.Source.Host,
		"proc-path":    &cfg.Source.ProcPath,
		"log-level":    &cfg.Logging.Level,
		"log-file":     &cfg.Logging.File,
		"metrics-addr": &cfg.Metrics.Addr,
	}
	for name, dst := range stringFlags {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*dst = v
	}

	if fs.Changed("delay") {
		v, err := fs.GetFloat64("delay")
		if err != nil {
			return err
		}
		cfg.Delay = v
	}

	boolFlags := map[string]func(bool){
		"si": func(v bool) {
			cfg.Units = config.UnitsBinary
			if v {
				cfg.Units = config.UnitsSI
			}
		},
		"no-color": func(v bool) {
			if v {
				cfg.Color = config.ColorNever
			}
		},
		"no-stats": func(v bool) { cfg.Stats.Enabled = !v },
		"tui": func(v bool) {
			cfg.UI.Mode = config.ModeRaw
			if v {
				cfg.UI.Mode = config.ModeTUI
			}
		},
	}
	for name, set := range boolFlags {
		if !fs.Changed(name) {
			continue
		}
		v, err := fs.GetBool(name)
		if err != nil {
			return err
		}
		set(v)
	}

	if cfg.Logging.File != "" {
		cfg.Logging.File = config.Expand(cfg.Logging.File)
	}
	return nil
}

// colorsEnabled resolves "auto" against the terminal and NO_COLOR.
func colorsEnabled(cfg *config.Config, out *os.File) bool {
	isTTY := dashboard.IsTerminal(out) && os.Getenv("NO_COLOR") == ""
	return cfg.ColorsEnabled(isTTY)
}

package cli

import (
	"context"
	"strings"
	"time"

	"github.com/rileyhilliard/netbwmon/internal/config"
	"github.com/rileyhilliard/netbwmon/internal/counters"
	"github.com/rileyhilliard/netbwmon/pkg/sshutil"
	"github.com/spf13/cobra"
)

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion script",
		Long: `Generate shell completion scripts for netbwmon.

To load completions:

Bash:
  netbwmon completion bash > /etc/bash_completion.d/netbwmon

Zsh:
  netbwmon completion zsh > "${fpath[1]}/_netbwmon"

Fish:
  netbwmon completion fish > ~/.config/fish/completions/netbwmon.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(out)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletion(out)
			}
			return nil
		},
	}
}

// registerCompletions attaches dynamic completions to root's flags.
func registerCompletions(root *cobra.Command) {
	_ = root.RegisterFlagCompletionFunc("host", completeHosts)
	_ = root.RegisterFlagCompletionFunc("interface", completeInterfaces)
	_ = root.RegisterFlagCompletionFunc("source", cobra.FixedCompletions(
		[]string{config.SourceAuto, config.SourceProcFS, config.SourceGopsutil, config.SourceSSH},
		cobra.ShellCompDirectiveNoFileComp))
	_ = root.RegisterFlagCompletionFunc("log-level", cobra.FixedCompletions(
		[]string{"debug", "info", "warn", "error"},
		cobra.ShellCompDirectiveNoFileComp))
}

func completeHosts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	hosts, err := sshutil.ListHosts()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, h := range hosts {
		if strings.HasPrefix(h.Alias, toComplete) {
			names = append(names, h.Alias+"\t"+h.Description())
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// completeInterfaces lists local interfaces. Remote sources are skipped so
// pressing tab never opens an SSH connection.
func completeInterfaces(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, _, err := config.LoadOrDefault("")
	if err != nil || cfg.Source.Host != "" || cfg.Source.Kind == config.SourceSSH {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	src, err := counters.New(ctx, cfg.Source, nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer src.Close()

	list, err := src.List(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var names []string
	for _, iface := range list {
		if strings.HasPrefix(iface.Name, toComplete) {
			names = append(names, iface.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

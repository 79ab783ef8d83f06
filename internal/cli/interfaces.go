package cli

import (
	"fmt"
	"math"
	"math/big"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/netbwmon/internal/counters"
	"github.com/rileyhilliard/netbwmon/internal/logger"
	"github.com/rileyhilliard/netbwmon/internal/ui"
	"github.com/spf13/cobra"
)

func newInterfacesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interfaces",
		Aliases: []string{"ifaces", "ls"},
		Short:   "List interfaces and their cumulative counters",
		Long: `List every interface the counter source reports, with lifetime byte and
packet counts. The interface netbwmon would pick by default is marked.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !colorsEnabled(cfg, os.Stdout) {
				ui.DisableColors()
			}

			ctx := cmd.Context()
			src, err := openSource(ctx, cfg.Source, logger.NewEnvLogger("interfaces"))
			if err != nil {
				return err
			}
			defer src.Close()

			list, err := src.List(ctx)
			if err != nil {
				return err
			}
			detected, _ := src.Detect(ctx)

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				ui.PrintWarning(out, "No interfaces reported by "+src.Describe())
				return nil
			}
			fmt.Fprintln(out, ui.MutedStyle().Render("Source: "+src.Describe()))
			fmt.Fprintln(out, ui.RenderSimpleTable(interfaceColumns, interfaceRows(list, detected, cfg.UseSI())))
			return nil
		},
	}
	cmd.Flags().BoolP("si", "s", false, "use SI units (kB, MB) instead of binary (KiB, MiB)")
	cmd.Flags().BoolP("no-color", "c", false, "disable colors")
	return cmd
}

var interfaceColumns = []ui.TableColumn{
	{Title: ""},
	{Title: "INTERFACE"},
	{Title: "RX"},
	{Title: "TX"},
	{Title: "RX PACKETS"},
	{Title: "TX PACKETS"},
}

// interfaceRows renders one table row per interface, marking detected.
func interfaceRows(list []counters.Interface, detected string, si bool) [][]string {
	rows := make([][]string, 0, len(list))
	for _, iface := range list {
		mark := ui.SymbolDown
		if iface.Name == detected {
			mark = ui.SymbolUp
		}
		rows = append(rows, []string{
			mark,
			iface.Name,
			humanBytes(iface.RxBytes, si),
			humanBytes(iface.TxBytes, si),
			comma(iface.RxPackets),
			comma(iface.TxPackets),
		})
	}
	return rows
}

// comma formats n with thousands separators. humanize.Comma takes int64, so
// counters past that range go through BigComma.
func comma(n uint64) string {
	if n > math.MaxInt64 {
		return humanize.BigComma(new(big.Int).SetUint64(n))
	}
	return humanize.Comma(int64(n))
}

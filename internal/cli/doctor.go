package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/netbwmon/internal/config"
	"github.com/rileyhilliard/netbwmon/internal/dashboard"
	"github.com/rileyhilliard/netbwmon/internal/doctor"
	"github.com/rileyhilliard/netbwmon/internal/errors"
	"github.com/rileyhilliard/netbwmon/internal/logger"
	"github.com/rileyhilliard/netbwmon/internal/ui"
	"github.com/spf13/cobra"
)

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// counterGap is how long the counter check waits between its two reads.
const counterGap = 500 * time.Millisecond

func newDoctorCmd() *cobra.Command {
	var asJSON, fix bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check config, counter source, interface and terminal",
		Long: `Run the checks netbwmon depends on and report what would stop the
dashboard from starting: config errors, an unreadable counter source, a
missing interface or a terminal that is too small.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit, _ := cmd.Flags().GetString("config")

			// Broken config is a finding, not a reason to stop; the source
			// checks fall back to defaults.
			cfg, _, err := config.LoadOrDefault(explicit)
			if err != nil {
				cfg = config.DefaultConfig()
			}
			if err := applyFlags(cmd, cfg); err != nil {
				return err
			}

			probe := doctor.NewSourceProbe(cfg.Source, logger.NewEnvLogger("doctor"))
			defer probe.Close()

			term := dashboard.NewTTY(os.Stdin, os.Stdout)
			checks := doctor.NewConfigChecks(explicit)
			checks = append(checks, doctor.NewSourceChecks(probe, cfg.Interface, counterGap)...)
			checks = append(checks, &doctor.TerminalCheck{
				IsTTY: dashboard.IsTerminal(os.Stdout),
				Size:  term.Size,
			})

			results := doctor.RunAll(checks)
			if fix {
				results = doctor.ApplyFixes(checks, results)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeDoctorJSON(out, checks, results); err != nil {
					return err
				}
			} else {
				writeDoctorText(out, checks, results, fix)
			}

			if doctor.HasFailures(results) {
				return errors.New(errors.ErrConfig, doctor.Summary(results), "")
			}
			return nil
		},
	}
	cmd.Flags().StringP("interface", "i", "", "interface to check (default: the auto-detected one)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	cmd.Flags().BoolVar(&fix, "fix", false, "attempt automatic fixes where possible")
	return cmd
}

func writeDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	grouped := doctor.GroupByCategory(checks)
	output := DoctorOutput{}
	for _, cat := range doctor.CategoryOrder {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		co := CategoryOutput{Name: cat}
		for _, i := range indices {
			co.Results = append(co.Results, results[i])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func writeDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult, fixed bool) {
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("netbwmon diagnostic report"))
	fmt.Fprintln(w)

	grouped := doctor.GroupByCategory(checks)
	for _, cat := range doctor.CategoryOrder {
		indices := grouped[cat]
		if len(indices) == 0 {
			continue
		}
		fmt.Fprintln(w, headerStyle.Render(cat))
		for _, i := range indices {
			writeCheckResult(w, results[i])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", 60))
	fmt.Fprintln(w)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))
		if doctor.FixableCount(results) > 0 && !fixed {
			fmt.Fprintf(w, "\n  Run with %s to attempt automatic fixes where possible.\n",
				ui.MutedStyle().Render("--fix"))
		}
	}
	fmt.Fprintln(w)
}

func writeCheckResult(w io.Writer, r doctor.CheckResult) {
	symbol, style := ui.SymbolSuccess, ui.SuccessStyle()
	switch r.Status {
	case doctor.StatusWarn:
		symbol, style = ui.SymbolWarning, ui.WarningStyle()
	case doctor.StatusFail:
		symbol, style = ui.SymbolFail, ui.ErrorStyle()
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), r.Message)
	if r.Suggestion != "" && r.Status != doctor.StatusPass {
		for _, line := range strings.Split(r.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}

package main

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/banknotify/internal/cli"
	"github.com/Veraticus/banknotify/internal/registry"
)

func sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Validate and list the monitored sources",
		Long: `Load the source registry, validate it and list every monitored source with
its bank, default payment method and merchant flag, followed by the ecosystem
pairs and SMS sender patterns.

Pass --registry to check an override file before pointing registry.path at it.`,
		RunE: runSources,
	}

	cmd.Flags().String("registry", "", "registry override file (default: registry.path setting)")

	return cmd
}

func runSources(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("registry")
	if path == "" {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		path = settings.Registry.Path
	}

	reg, err := loadRegistry(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatTitle("Monitored Sources")) //nolint:errcheck // terminal output
	if err := writeSources(out, reg); err != nil {
		return err
	}

	fmt.Fprintln(out)                                                                              //nolint:errcheck // terminal output
	fmt.Fprintln(out, cli.BoldStyle.Render(fmt.Sprintf("Ecosystem pairs (%d)", len(reg.Pairs())))) //nolint:errcheck // terminal output
	for _, p := range reg.Pairs() {
		fmt.Fprintf(out, "  %s ↔ %s\n", p.A, p.B) //nolint:errcheck // terminal output
	}

	fmt.Fprintln(out)                                                                               //nolint:errcheck // terminal output
	fmt.Fprintln(out, cli.BoldStyle.Render(fmt.Sprintf("SMS patterns (%d)", len(reg.SMSPatterns)))) //nolint:errcheck // terminal output
	for _, p := range reg.SMSPatterns {
		fmt.Fprintf(out, "  %-24s → %s\n", p.Pattern, p.Bank) //nolint:errcheck // terminal output
	}

	fmt.Fprintln(out)                                         //nolint:errcheck // terminal output
	fmt.Fprintln(out, cli.FormatSuccess("Registry is valid")) //nolint:errcheck // terminal output
	return nil
}

func writeSources(out io.Writer, reg *registry.Registry) error {
	ids := make([]string, 0, len(reg.Sources))
	for id := range reg.Sources {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("Source"),
		headerStyle.Render("Bank"),
		headerStyle.Render("Method"),
		headerStyle.Render("Merchant")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 24),
		strings.Repeat("─", 10),
		strings.Repeat("─", 8),
		strings.Repeat("─", 8)); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}

	for _, id := range ids {
		method, _ := reg.DefaultMethod(id)
		merchant := ""
		if reg.IsMerchant(id) {
			merchant = "yes"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, reg.BankName(id), method, merchant); err != nil {
			return fmt.Errorf("failed to write source row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

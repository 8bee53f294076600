package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"sitedeck/internal/collection"
	"sitedeck/internal/logging"
	"sitedeck/internal/site"
	"sitedeck/internal/ui"
)

var (
	hrefStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.ColorMuted))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ui.ColorAccent))
)

func newLsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List sites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.NewLogger(opts.cfg.Logging)
			if err != nil {
				return err
			}
			defer log.Close()
			tp := setupTelemetry(cmd.Context(), opts.cfg, log)
			defer shutdownTelemetry(tp, log)

			ctrl := collection.NewController(newClient(opts.cfg, tp), nil,
				writerNotifier{w: cmd.ErrOrStderr()}, log.WithComponent("ls"))
			if ctrl.Load(cmd.Context()) == collection.StatusError {
				return errReported
			}

			snap := ctrl.Snapshot()
			switch collection.Render(snap).Kind {
			case collection.ViewEmpty:
				createURL, err := site.ResolveLink(opts.cfg.APIURL, opts.cfg.CreatePath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "No sites yet. %s: %s\n", collection.MsgCreateCTA, createURL)
			case collection.ViewList:
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(snap.Items()))
			}
			return nil
		},
	}
}

func renderTable(items []site.Item) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "URL", "BUCKET").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return hrefStyle
			default:
				return lipgloss.NewStyle()
			}
		})
	for _, it := range items {
		t.Row(it.ID, it.DisplayName(), it.Href, it.BucketName)
	}
	return t.String()
}

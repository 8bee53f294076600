package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sitedeck/internal/collection"
	"sitedeck/internal/logging"
)

func newRmCmd(opts *rootOptions) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a site after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			log, err := logging.NewLogger(opts.cfg.Logging)
			if err != nil {
				return err
			}
			defer log.Close()
			tp := setupTelemetry(cmd.Context(), opts.cfg, log)
			defer shutdownTelemetry(tp, log)

			var confirm collection.Confirmer = surveyConfirmer{}
			switch {
			case yes:
				confirm = staticConfirmer(true)
			case opts.confirmer != nil:
				confirm = opts.confirmer
			}

			ctrl := collection.NewController(newClient(opts.cfg, tp), confirm,
				writerNotifier{w: cmd.ErrOrStderr()}, log.WithComponent("rm"))

			// The prompt names the site, so fetch it first.
			name := id
			if ctrl.Load(cmd.Context()) == collection.StatusLoaded {
				snap := ctrl.Snapshot()
				it, ok := snap.Find(id)
				if !ok {
					return fmt.Errorf("no site with id %q", id)
				}
				name = it.DisplayName()
			}

			switch ctrl.Delete(cmd.Context(), id, name) {
			case collection.DeleteDeclined:
				fmt.Fprintln(cmd.ErrOrStderr(), "Aborted.")
			case collection.DeleteFailed:
				return errReported
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

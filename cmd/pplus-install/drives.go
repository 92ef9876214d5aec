package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pplus-installer/internal/config"
	"github.com/conn-castle/pplus-installer/internal/eligibility"
	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/render"
	"github.com/conn-castle/pplus-installer/internal/updatewarn"
)

func newDrivesCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   messages.DrivesUse,
		Short: messages.DrivesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(opts)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			provider := newProvider()
			paths, err := provider.Candidates(ctx)
			if err != nil {
				return fmt.Errorf(messages.ListDrivesFailedFmt, err)
			}

			inspector := newInspector()
			policy := cfg.EligibilityPolicy()
			rows := make([]render.DriveRow, 0, len(paths))
			for _, path := range paths {
				facts, err := provider.Facts(ctx, path)
				if err != nil {
					log.WithError(err).WithField("path", path).Warn("skipping drive")
					continue
				}
				rows = append(rows, render.DriveRow{
					Facts:   facts,
					Verdict: eligibility.Evaluate(facts, policy, inspector.IsInstalled(path)),
				})
			}

			if asJSON {
				err = render.DriveJSON(cmd.OutOrStdout(), rows)
			} else {
				err = render.DriveTable(cmd.OutOrStdout(), rows)
			}
			if err != nil {
				return err
			}
			warnIfOutdated(cmd, cfg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, messages.DrivesFlagJSON)
	return cmd
}

// warnIfOutdated prints the update notice for non-interactive commands.
func warnIfOutdated(cmd *cobra.Command, cfg *config.Config) {
	if !cfg.UpdateEnabled() {
		return
	}
	updatewarn.WarnIfOutdated(cmd.Context(), newChecker(cfg.Update.ReleasesURL), Version, cfg.Update.DownloadURL, cmd.ErrOrStderr())
}

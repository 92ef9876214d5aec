package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/pplus-installer/internal/drive"
	"github.com/conn-castle/pplus-installer/internal/eligibility"
	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/render"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   messages.CheckUse,
		Short: messages.CheckShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(opts)
			if err != nil {
				return err
			}
			path := drive.VolumeRoot(args[0])
			err = eligibility.EvaluateWithReason(cmd.Context(), newProvider(), newInspector().IsInstalled, path, cfg.EligibilityPolicy())
			if rejection, ok := eligibility.AsRejection(err); ok {
				render.Error(cmd.ErrOrStderr(), fmt.Sprintf(messages.DriveRejectedFmt, rejection.Path, rejection.Error()))
				return &SilentExitError{Code: exitRejected}
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.CheckEligible, path)
			warnIfOutdated(cmd, cfg)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/conn-castle/pplus-installer/internal/config"
	"github.com/conn-castle/pplus-installer/internal/drive"
	"github.com/conn-castle/pplus-installer/internal/extract"
	"github.com/conn-castle/pplus-installer/internal/install"
	"github.com/conn-castle/pplus-installer/internal/logging"
	"github.com/conn-castle/pplus-installer/internal/messages"
	"github.com/conn-castle/pplus-installer/internal/update"
	"github.com/conn-castle/pplus-installer/internal/wizard"
)

// Seams for tests.
var (
	newProvider  = func() drive.Provider { return drive.NewSystemProvider() }
	newUI        = func() wizard.UI { return wizard.NewHuhUI() }
	newExtractor = func() wizard.Extractor { return extract.New(logExtractedEntry) }
	newChecker   = func(url string) wizard.UpdateChecker { return update.NewChecker(url) }
	newInspector = func() *install.Inspector { return install.NewInspector(nil) }
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configPath    string
	archive       string
	drive         string
	noUpdateCheck bool
	logLevel      string
	logFile       string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	flags.StringVar(&opts.archive, "archive", "", messages.RootFlagArchive)
	flags.BoolVar(&opts.noUpdateCheck, "no-update-check", false, messages.RootFlagNoUpdateCheck)
	flags.StringVar(&opts.logLevel, "log-level", "", messages.RootFlagLogLevel)
	flags.StringVar(&opts.logFile, "log-file", "", messages.RootFlagLogFile)
	cmd.Flags().StringVar(&opts.drive, "drive", "", messages.RootFlagDrive)

	cmd.AddCommand(newDrivesCmd(opts), newCheckCmd(opts))
	return cmd
}

// loadSettings reads the config file, applies flag overrides and initializes logging.
func loadSettings(opts *rootOptions) (*config.Config, error) {
	path, explicit := opts.configPath, opts.configPath != ""
	var err error
	if explicit {
		path, err = config.ExpandPath(path)
	} else {
		path, err = config.DefaultPath()
	}
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigLoadFailedFmt, err)
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigLoadFailedFmt, err)
	}
	if strings.TrimSpace(opts.archive) != "" {
		cfg.Payload.Archive = opts.archive
	}
	if opts.noUpdateCheck {
		disabled := false
		cfg.Update.Enabled = &disabled
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFile != "" {
		cfg.Log.File = opts.logFile
	}

	logFile := cfg.Log.File
	if logFile != "" && logFile != logging.Console {
		if logFile, err = config.ExpandPath(logFile); err != nil {
			return nil, fmt.Errorf(messages.LogInitFailedFmt, err)
		}
	}
	if err := logging.Init(cfg.Log.Level, logFile); err != nil {
		return nil, fmt.Errorf(messages.LogInitFailedFmt, err)
	}
	log.WithField("config", path).Debug("settings loaded")
	return cfg, nil
}

func runWizard(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := loadSettings(opts)
	if err != nil {
		return err
	}
	archive, err := cfg.ArchivePath()
	if err != nil {
		return fmt.Errorf(messages.ResolveArchiveErrFmt, err)
	}

	var updates wizard.UpdateChecker
	if cfg.UpdateEnabled() {
		updates = newChecker(cfg.Update.ReleasesURL)
	}

	w := wizard.New(wizard.Options{
		Policy:         cfg.EligibilityPolicy(),
		PayloadVersion: cfg.Payload.Version,
		ArchivePath:    archive,
		CurrentVersion: Version,
		Drive:          opts.drive,
		UpdateCheck:    updates != nil,
		DownloadURL:    cfg.Update.DownloadURL,
	}, wizard.Deps{
		UI:        newUI(),
		Drives:    newProvider(),
		Inspector: newInspector(),
		Extractor: newExtractor(),
		Updates:   updates,
		Out:       cmd.OutOrStdout(),
	})
	return w.Run(cmd.Context())
}

func logExtractedEntry(name string) {
	log.WithField("entry", name).Debug("extracted")
}

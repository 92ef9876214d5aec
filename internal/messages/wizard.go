package messages

// Wizard prompts, notes and abort messages.
const (
	WizardRequiresTerminal = "the installer requires an interactive terminal; use --drive with `pplus-install check` for scripted checks"

	// WizardUpdateAvailablePromptFmt is shown when a newer installer exists.
	WizardUpdateAvailablePromptFmt = "Installer %s is available (you have %s). Open the download page?"
	WizardUpdateOpenedFmt          = "Opened %s. Run the new installer once the download finishes."
	WizardUpdateOpenFailedFmt      = "Download the new installer from %s."

	WizardWelcomeTitle   = "Project+ installer"
	WizardWelcomeBodyFmt = "This installs Project+ %s onto an SD card.\n\n" +
		"Insert the SD card you use with your Wii, then continue. " +
		"The card must be 32GB or smaller and formatted FAT32."

	WizardSelectDriveTitle   = "Select the SD card"
	WizardBypassNoteTitle    = "No compatible drive found"
	WizardBypassNoteBody     = "None of the mounted drives passed every check. Showing all drives that are big enough; the drive you pick is checked again before anything is written."
	WizardDriveNotSelected   = "Drive not selected"
	WizardNoDrivesAvailable  = "No drive is large enough to hold Project+. Insert an SD card and try again."
	WizardDriveOptionFmt     = "%s  (%s, %s free)"
	WizardDriveUnreadableFmt = "Could not read %s. Check that the drive is still connected."

	WizardInstalledOutdatedFmt = "Project+ %s is installed on this drive; this installer carries %s."
	WizardInstalledSameFmt     = "Project+ %s is already installed on this drive."
	WizardInstalledNewerFmt    = "Project+ %s is installed on this drive, which is newer than the bundled %s."
	WizardInstalledUnknown     = "An older Project+ install was found on this drive but its version is unknown."
	WizardReinstallPrompt      = "Delete the existing Project+ files and reinstall?"
	WizardReinstallDeclined    = "Kept the existing installation; nothing was changed"

	WizardExtracting       = "Extracting Project+ to %s...\n"
	WizardExtractionFailed = "Failed to extract Project+ to the drive. Check that the SD card is not write-protected and try again."

	WizardCompleteTitle        = "Complete"
	WizardCompleteHomebrew     = "Mod extracted, place SD in console and boot through the Homebrew Channel. A Brawl disc or backup is required to play."
	WizardCompleteStageBuilder = "Mod extracted, place SD in console and boot through Stage Builder or the Homebrew Channel. A Brawl disc or backup is required to play."

	WizardCancelled  = "Installation cancelled"
	WizardHintCancel = "cancel"
)

package commands

// Message constants
const (
	// Command descriptions
	MsgRootShort = "Keep JetBrains vmoptions files in sync"
	MsgRootLong  = `jbsync maintains the vmoptions files of your JetBrains IDEs from a
single set of managed fragments. It composes the desired content per
product, preserves Toolbox-managed preset variables already in place,
and only rewrites a file when its content actually changed, taking a
rotating backup first.`

	MsgSyncShort = "Synchronize vmoptions files for installed products"
	MsgSyncLong  = `Sync enumerates the product directories under your JetBrains user
directory, composes the desired vmoptions content for each recognized
product, and writes it when it differs from what is on disk.

Unchanged files are skipped. Before every write the previous file is
copied into the backup tree, where the five most recent copies per
product are retained.`
	MsgSyncExample = `  # Synchronize every installed product
  jbsync sync

  # See what would change without writing anything
  jbsync sync --dry-run

  # Machine-readable result
  jbsync sync --format json`

	MsgLicenseShort = "Archive and restore license files"
	MsgLicenseLong  = `License mirrors *.key and *.license files between the product
directories and a local archive. Current licenses are archived first,
then archived licenses are restored into any freshly installed product
directory that is missing them. Identical files are never rewritten.`
	MsgLicenseExample = `  # Mirror licenses both ways
  jbsync license`

	MsgGenConfigShort = "Print the configuration file"
	MsgGenConfigLong  = `Gen-config prints the annotated built-in configuration, ready to be
saved as jbsync.toml and edited. With --effective it prints the fully
resolved configuration instead, after the config file and JBSYNC_*
environment overrides have been applied.`
	MsgGenConfigExample = `  # Start a config file from the defaults
  jbsync gen-config > jbsync.toml

  # Inspect what a run would actually use
  jbsync gen-config --effective`

	MsgTopicsShort = "Display documentation topics"
	MsgTopicsLong  = `Topics lists the available documentation pages. Pass a topic name to
read it.`

	MsgVersionShort = "Print version information"

	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice = "\nDRY RUN MODE - No changes were made"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagConfig  = "Path to the configuration file (default ./jbsync.toml)"
	MsgFlagFormat  = "Output format: text, json or yaml"
)

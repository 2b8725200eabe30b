package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ideutil/jbsync/pkg/backup"
	"github.com/ideutil/jbsync/pkg/filesystem"
	"github.com/ideutil/jbsync/pkg/output"
	"github.com/ideutil/jbsync/pkg/paths"
	"github.com/ideutil/jbsync/pkg/products"
	"github.com/ideutil/jbsync/pkg/resources"
	"github.com/ideutil/jbsync/pkg/sync"
)

func newSyncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			formatFlag, _ := cmd.Flags().GetString("format")
			format, err := output.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			fsys := filesystem.NewOS()
			userDir, err := paths.UserJetBrainsDir(cfg)
			if err != nil {
				return err
			}

			log.Info().
				Str("user_dir", userDir).
				Bool("dry_run", dryRun).
				Msg("Synchronizing vmoptions")

			registry := products.NewRegistry(cfg.Products)
			targets, err := registry.EnumerateTargets(fsys, userDir)
			if err != nil {
				return err
			}

			rotator := backup.New(fsys, paths.BackupRoot(cfg), cfg.BackupKeep)
			orchestrator := sync.New(fsys, resources.NewEmbedProvider(), rotator,
				cfg.ToolboxPrefixes, sync.Options{DryRun: dryRun})

			summary := orchestrator.Run(targets)

			if dryRun && format == output.FormatText {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			if err := output.RenderRunSummary(cmd.OutOrStdout(), summary, format); err != nil {
				return err
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d target(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "text", MsgFlagFormat)

	return cmd
}

package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ideutil/jbsync/pkg/filesystem"
	"github.com/ideutil/jbsync/pkg/license"
	"github.com/ideutil/jbsync/pkg/output"
	"github.com/ideutil/jbsync/pkg/paths"
	"github.com/ideutil/jbsync/pkg/products"
)

func newLicenseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "license",
		Short:   MsgLicenseShort,
		Long:    MsgLicenseLong,
		Example: MsgLicenseExample,
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
				Str("archive", paths.ArchiveRoot(cfg)).
				Bool("dry_run", dryRun).
				Msg("Mirroring licenses")

			mirror := license.NewMirror(fsys, products.NewRegistry(cfg.Products), paths.ArchiveRoot(cfg),
				license.Options{DryRun: dryRun})
			summary, err := mirror.Run(userDir)
			if err != nil {
				return err
			}

			if dryRun && format == output.FormatText {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			if err := output.RenderMirrorSummary(cmd.OutOrStdout(), summary, format); err != nil {
				return err
			}

			if summary.Failed > 0 {
				return fmt.Errorf("%d license file(s) failed", summary.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "text", MsgFlagFormat)

	return cmd
}

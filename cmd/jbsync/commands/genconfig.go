package commands

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/ideutil/jbsync/pkg/config"
)

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			effective, _ := cmd.Flags().GetBool("effective")
			if !effective {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultConfigContent())
				return nil
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().Bool("effective", false, "Print the resolved configuration instead of the defaults")

	return cmd
}

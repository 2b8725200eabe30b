package commands

import (
	"embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ideutil/jbsync/pkg/cobrax/topics"
)

//go:embed topics
var topicsFS embed.FS

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics [topic]",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := topics.Load(topicsFS, "topics", topics.Options{
				Extensions: []string{".md"},
				Renderer:   topics.NewGlamourRenderer(),
			})
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
				for _, name := range manager.Names() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
				}
				return nil
			}

			rendered, ok := manager.Render(args[0])
			if !ok {
				return fmt.Errorf("unknown topic %q", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), rendered)
			return nil
		},
	}
}

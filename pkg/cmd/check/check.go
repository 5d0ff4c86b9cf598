package check

import (
	"github.com/spf13/cobra"
)

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "commands to check computed data",
	}

	cmd.AddCommand(NewCheckArtifactCmd())
	cmd.AddCommand(NewCheckGeometryCmd())
	cmd.AddCommand(NewCheckQualiCmd())

	return cmd
}

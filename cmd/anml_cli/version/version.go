package version

import (
	"fmt"

	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/erth-network/anml-cli/common/version"
	"github.com/spf13/cobra"
)

const versionTitle = "ANML Registration Contract CLI"

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Get current version",
		Args:         common.RangeArgs(0),
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.BuildVersionString(versionTitle))
		},
	}
}

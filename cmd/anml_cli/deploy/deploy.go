package deploy

import (
	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/spf13/cobra"
)

func GetCommand(rt *common.Runtime) *cobra.Command {
	cmd := common.NewCategory("deploy", "Contract deployment and migration commands", "deploy", common.DeployUsage)
	cmd.AddCommand(
		uploadCommand(rt),
		instantiateCommand(rt),
		migrateCommand(rt),
	)
	return cmd
}

func uploadCommand(rt *common.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "upload",
		Short: "Upload the contract",
		Args:  common.RangeArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.Upload(cmd.Context())
			return err
		},
	}
}

func instantiateCommand(rt *common.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "instantiate [codeId] [hash]",
		Short: "Instantiate a contract (run after upload)",
		Args:  common.RangeArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeID, err := common.ParseCodeID(common.Arg(args, 0))
			if err != nil {
				return err
			}
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.Instantiate(cmd.Context(), codeID, common.Arg(args, 1))
			return err
		},
	}
}

func migrateCommand(rt *common.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate [address] [codeId] [hash]",
		Short: "Migrate a contract to new code ID",
		Args:  common.RangeArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeID, err := common.ParseCodeID(common.Arg(args, 1))
			if err != nil {
				return err
			}
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.Migrate(cmd.Context(), common.Arg(args, 0), codeID, common.Arg(args, 2))
			return err
		},
	}
}

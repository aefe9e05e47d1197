package query

import (
	"context"
	"encoding/json"

	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/spf13/cobra"
)

func GetCommand(rt *common.Runtime) *cobra.Command {
	cmd := common.NewCategory("query", "Read-only commands to query contracts or network", "query", common.QueryUsage)
	cmd.AddCommand(
		contractQueryCommand(rt, "state [address] [hash]", "Query contract state", common.Operations.QueryState),
		contractQueryCommand(rt, "config [address] [hash]", "Query contract config", common.Operations.QueryConfig),
		contractQueryCommand(rt, "options [address] [hash]", "Query allocation options",
			common.Operations.QueryAllocationOptions),
		userQueryCommand(rt, "allocations <user> [address] [hash]", "Query allocations of a user",
			common.Operations.QueryUserAllocations),
		userQueryCommand(rt, "registration <user> [address] [hash]", "Query registration status of a user",
			common.Operations.QueryRegistrationStatus),
		infoCommand(rt),
		statusCommand(rt),
		hashCommand(rt),
	)
	return cmd
}

type contractQuery func(ops common.Operations, ctx context.Context, address, codeHash string) (json.RawMessage, error)

func contractQueryCommand(rt *common.Runtime, use, short string, query contractQuery) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  common.RangeArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = query(ops, cmd.Context(), common.Arg(args, 0), common.Arg(args, 1))
			return err
		},
	}
}

type userQuery func(ops common.Operations, ctx context.Context, user, address, codeHash string) (json.RawMessage, error)

func userQueryCommand(rt *common.Runtime, use, short string, query userQuery) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  common.RangeArgs(3, "user address"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = query(ops, cmd.Context(), args[0], common.Arg(args, 1), common.Arg(args, 2))
			return err
		},
	}
}

func infoCommand(rt *common.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "info [address]",
		Short: "Query contract info",
		Args:  common.RangeArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.QueryContractInfo(cmd.Context(), common.Arg(args, 0))
			return err
		},
	}
}

func statusCommand(rt *common.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Query node status",
		Args:  common.RangeArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.QueryNodeStatus(cmd.Context())
			return err
		},
	}
}

func hashCommand(rt *common.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "hash <address>",
		Short: "Get contract code hash",
		Args:  common.RangeArgs(1, "Contract address"),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.GetCodeHash(cmd.Context(), args[0])
			return err
		},
	}
}

package ops

import (
	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/spf13/cobra"
)

func GetCommand(rt *common.Runtime) *cobra.Command {
	cmd := common.NewCategory("ops", "Contract operations and management", "operations", common.OpsUsage, "operations")
	cmd.AddCommand(
		updateConfigCommand(rt),
		addAllocationCommand(rt),
		claimAllocationCommand(rt),
		setAllocationCommand(rt),
		editAllocationCommand(rt),
		addMinterCommand(rt),
	)
	return cmd
}

func updateConfigCommand(rt *common.Runtime) *cobra.Command {
	params := &configParams{}
	cmd := &cobra.Command{
		Use:   "update-config [address] [hash]",
		Short: "Update contract configuration",
		Args:  common.RangeArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.UpdateConfig(cmd.Context(), common.Arg(args, 0), common.Arg(args, 1), params.options(cmd))
			return err
		},
	}
	params.setFlags(cmd.Flags())
	return cmd
}

func addAllocationCommand(rt *common.Runtime) *cobra.Command {
	params := &allocationParams{}
	cmd := &cobra.Command{
		Use:   "add-allocation [address] [hash]",
		Short: "Add allocation",
		Args:  common.RangeArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.AddAllocation(cmd.Context(), common.Arg(args, 0), common.Arg(args, 1), params.options(cmd))
			return err
		},
	}
	params.setFlags(cmd.Flags())
	return cmd
}

func claimAllocationCommand(rt *common.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "claim-allocation <id> [address] [hash]",
		Short: "Claim allocation",
		Args:  common.RangeArgs(3, "Allocation ID"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := common.ParseAllocationID(args[0])
			if err != nil {
				return err
			}
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.ClaimAllocation(cmd.Context(), common.Arg(args, 1), common.Arg(args, 2), id)
			return err
		},
	}
}

func setAllocationCommand(rt *common.Runtime) *cobra.Command {
	var pairs []string
	cmd := &cobra.Command{
		Use:   "set-allocation [address] [hash]",
		Short: "Set allocation percentages",
		Args:  common.RangeArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			percentages, err := common.ParsePercentages(pairs)
			if err != nil {
				return err
			}
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.SetAllocationPercentages(cmd.Context(), common.Arg(args, 0), common.Arg(args, 1), percentages)
			return err
		},
	}
	cmd.Flags().StringArrayVar(&pairs, percentageFlag, nil,
		"Allocation share as id=percentage, repeatable (default: 1=100)")
	return cmd
}

func editAllocationCommand(rt *common.Runtime) *cobra.Command {
	params := &allocationParams{}
	cmd := &cobra.Command{
		Use:   "edit-allocation <id> [address] [hash]",
		Short: "Edit allocation",
		Args:  common.RangeArgs(3, "Allocation ID"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := common.ParseAllocationID(args[0])
			if err != nil {
				return err
			}
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.EditAllocation(cmd.Context(), common.Arg(args, 1), common.Arg(args, 2), id, params.options(cmd))
			return err
		},
	}
	params.setFlags(cmd.Flags())
	return cmd
}

func addMinterCommand(rt *common.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "add-minter [address]",
		Short: "Add a minter to ANML token",
		Args:  common.RangeArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops, err := rt.Operations()
			if err != nil {
				return err
			}
			_, err = ops.AddMinter(cmd.Context(), common.Arg(args, 0))
			return err
		},
	}
}

package examples

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("examplesCommand")

func GetCommand(rt *common.Runtime) *cobra.Command {
	cmd := common.NewCategory("examples", "Run example operation flows", "examples", common.ExamplesUsage)
	for _, f := range flows {
		cmd.AddCommand(&cobra.Command{
			Use:   f.name,
			Short: f.title,
			Args:  common.RangeArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runFlows(cmd.Context(), rt, f)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "all",
		Short: "Run every flow (takes a long time)",
		Args:  common.RangeArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFlows(cmd.Context(), rt, flows...)
		},
	})
	return cmd
}

// runFlows runs every flow even if an earlier one failed and returns all failures.
func runFlows(ctx context.Context, rt *common.Runtime, selected ...flow) error {
	ops, err := rt.Operations()
	if err != nil {
		return err
	}
	out := rt.Output()

	var errs []error
	for _, f := range selected {
		if err := runFlow(ctx, ops, out, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func runFlow(ctx context.Context, ops common.Operations, out io.Writer, f flow) error {
	printSection(out, f.title)
	if err := f.run(ctx, ops, out); err != nil {
		logger.Error().Err(err).Str(logging.FieldOperation, f.name).Msg("Example flow failed")
		fmt.Fprintf(out, "%s failed: %v\n", f.title, err)
		return fmt.Errorf("%s: %w", f.name, err)
	}
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/erth-network/anml-cli/cmd/anml_cli/config"
	"github.com/erth-network/anml-cli/cmd/anml_cli/deploy"
	"github.com/erth-network/anml-cli/cmd/anml_cli/examples"
	"github.com/erth-network/anml-cli/cmd/anml_cli/ops"
	"github.com/erth-network/anml-cli/cmd/anml_cli/query"
	"github.com/erth-network/anml-cli/cmd/anml_cli/version"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("rootCommand")

// Environment is what a single invocation reads from and writes to.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Factory common.OperationsFactory
}

func DefaultEnvironment() Environment {
	return Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Factory: common.ServiceFactory,
	}
}

// Dispatch runs the command selected by argv and returns the process exit code.
func Dispatch(ctx context.Context, argv []string, env Environment) int {
	rt := common.NewRuntime(env.Stdout, env.Stderr, env.Factory)
	root := newRootCommand(rt)
	root.SetArgs(argv)
	root.SetOut(env.Stdout)
	root.SetErr(env.Stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		logger.Trace().Msg("Command executed successfully")
		return 0
	}

	if errors.Is(err, common.ErrUsage) {
		logger.Debug().Err(err).Msg("Invalid command line")
		fmt.Fprintf(env.Stderr, "Error: %v\n", err)
		fmt.Fprint(env.Stdout, common.Usage(cmd))
		return 1
	}

	logger.Error().Err(err).Msg("Command failed")
	fmt.Fprintf(env.Stderr, "Error executing command: %v\n", err)
	return 1
}

func newRootCommand(rt *common.Runtime) *cobra.Command {
	root := &cobra.Command{
		Use:           "anml_cli",
		Short:         "CLI for the ANML registration contract on Secret Network",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt.Flags.EnvFileExplicit = cmd.Flags().Changed(common.EnvFileFlag)
			return setupLogging(rt.Flags, cmd.Flags().Changed(common.LogLevelFlag))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				fmt.Fprint(out, common.ProgramUsage)
				return nil
			}
			fmt.Fprintf(out, "Unknown category: %s\n", args[0])
			fmt.Fprint(out, common.Categories)
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", common.ErrUsage, err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&rt.Flags.EnvFile, common.EnvFileFlag, rt.Flags.EnvFile, "Path to the dotenv file with MNEMONIC and friends")
	flags.StringVarP(&rt.Flags.LogLevel, common.LogLevelFlag, "l", rt.Flags.LogLevel, "Log level: trace|debug|info|warn|error|fatal|panic")
	flags.BoolVarP(&rt.Flags.Verbose, common.VerboseFlag, "v", false, "Print logs to stderr")
	flags.BoolVarP(&rt.Flags.Quiet, common.QuietFlag, "q", false, "Do not print operation results")

	root.AddCommand(
		deploy.GetCommand(rt),
		query.GetCommand(rt),
		ops.GetCommand(rt),
		examples.GetCommand(rt),
		config.GetCommand(rt),
		version.GetCommand(),
	)

	logger.Trace().Msg("Subcommands registered")
	return root
}

// setupLogging keeps logs off unless --verbose is given. Without --log-level the
// level comes from LOG_LEVEL.
func setupLogging(flags common.GlobalFlags, levelExplicit bool) error {
	switch {
	case !flags.Verbose:
		logging.Disable()
	case levelExplicit:
		if err := logging.TrySetupGlobalLevel(flags.LogLevel); err != nil {
			return fmt.Errorf("%w: %w", common.ErrUsage, err)
		}
	default:
		logging.SetLogSeverityFromEnv()
	}
	return nil
}

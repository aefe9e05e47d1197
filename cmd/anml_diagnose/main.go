package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/erth-network/anml-cli/cli/diagnostics"
	"github.com/erth-network/anml-cli/cli/service"
	"github.com/erth-network/anml-cli/client/lcd"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/common/version"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/spf13/cobra"
)

type params struct {
	envFile  string
	logLevel string
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the diagnostics. Failed checks are part of the report; only a
// configuration that cannot be read makes it exit 1.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	p := &params{}
	cmd := &cobra.Command{
		Use:           "anml_diagnose",
		Short:         "Diagnose connectivity to the node and the ANML registration contract",
		Version:       version.Version(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p.verbose {
				if err := logging.TrySetupGlobalLevel(p.logLevel); err != nil {
					return err
				}
			} else {
				logging.Disable()
			}

			cfg, err := service.LoadConfig(p.envFile, cmd.Flags().Changed("env-file"))
			if err != nil {
				return err
			}

			dial := lcd.NewDialer(logging.NewLogger("lcd"))
			runner := diagnostics.NewRunner(cfg, dial, contracts.Default(), net.DefaultResolver, cmd.OutOrStdout())
			runner.Run(cmd.Context())

			fmt.Fprintln(cmd.OutOrStdout(), "\nDiagnostics completed successfully")
			return nil
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.Flags().StringVar(&p.envFile, "env-file", service.DefaultEnvFile, "Path to the dotenv file")
	cmd.Flags().StringVarP(&p.logLevel, "log-level", "l", "info", "Log level")
	cmd.Flags().BoolVarP(&p.verbose, "verbose", "v", false, "Print logs to stderr")

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "\nDiagnostics failed: %v\n", err)
		return 1
	}
	return 0
}

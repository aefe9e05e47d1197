package config

import (
	"fmt"
	"io"

	"github.com/erth-network/anml-cli/cli/service"
	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/spf13/cobra"
)

const usage = `Config Commands:
  show   - Print the effective configuration (mnemonic redacted)
`

func GetCommand(rt *common.Runtime) *cobra.Command {
	cmd := common.NewCategory("config", "Show the effective configuration", "config", usage)
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (mnemonic redacted)",
		Args:  common.RangeArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rt.Config()
			if err != nil {
				return err
			}
			printConfig(cmd.OutOrStdout(), cfg.Redacted())
			return nil
		},
	})
	return cmd
}

// printConfig writes cfg in the dotenv syntax it is read from.
func printConfig(w io.Writer, cfg service.Config) {
	for _, kv := range []struct{ key, value string }{
		{"MNEMONIC", cfg.Mnemonic},
		{"ERTH_URL", cfg.URL},
		{"CHAIN_ID", cfg.ChainID},
		{"WASM_PATH", cfg.WasmPath},
		{"GAS_PRICE", cfg.GasPrice.String()},
		{"FEE_DENOM", cfg.FeeDenom},
		{"LOG_LEVEL", cfg.LogLevel},
	} {
		fmt.Fprintf(w, "%s=%s\n", kv.key, kv.value)
	}
}

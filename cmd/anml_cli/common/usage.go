package common

import (
	"fmt"

	"github.com/spf13/cobra"
)

// UsageAnnotation holds the text printed for a category without a command.
const UsageAnnotation = "anml_usage"

const Categories = `Available categories:
  deploy     - Contract deployment and migration commands
  query      - Read-only commands to query contracts or network
  ops        - Contract operations and management
  examples   - Run example operation flows
  config     - Show the effective configuration
  version    - Print version information
`

const ProgramUsage = `ANML Registration Contract CLI

Usage: anml_cli <category> <command> [args]

` + Categories + `
Run 'anml_cli <category>' for specific commands in each category
`

const DeployUsage = `Deployment Commands:
  upload                              - Upload the contract
  instantiate [codeId] [hash]         - Instantiate a contract (run after upload)
  migrate [address] [codeId] [hash]   - Migrate a contract to new code ID
`

const QueryUsage = `Query Commands:
  state [address] [hash]                       - Query contract state
  info [address]                               - Query contract info
  status                                       - Query node status
  hash <address>                               - Get contract code hash
  config [address] [hash]                      - Query contract config
  options [address] [hash]                     - Query allocation options
  allocations <user> [address] [hash]          - Query allocations of a user
  registration <user> [address] [hash]         - Query registration status of a user
`

const OpsUsage = `Operation Commands:
  update-config [address] [hash]         - Update contract configuration
  add-allocation [address] [hash]        - Add allocation
  claim-allocation <id> [address] [hash] - Claim allocation
  set-allocation [address] [hash]        - Set allocation percentages
  edit-allocation <id> [address] [hash]  - Edit allocation
  add-minter [address]                   - Add a minter to ANML token
`

const ExamplesUsage = `Example Flows:
  deploy-flow       - Upload and instantiate the contract
  query-flow        - Node status, contract info, code hash and state
  allocation-flow   - Add, set, edit and claim an allocation
  config-flow       - Update configuration and add a minter
  all               - Run every flow (takes a long time)
`

// Usage returns the text of the nearest annotated command, or the program usage.
func Usage(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if u, ok := c.Annotations[UsageAnnotation]; ok {
			return u
		}
	}
	return ProgramUsage
}

// NewCategory builds a command that groups subcommands. Without a command it prints its
// usage, an unknown command is reported together with the usage. Neither is an error.
func NewCategory(use, short, displayName, usage string, aliases ...string) *cobra.Command {
	return &cobra.Command{
		Use:         use,
		Short:       short,
		Aliases:     aliases,
		Args:        cobra.ArbitraryArgs,
		Annotations: map[string]string{UsageAnnotation: usage},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				fmt.Fprintf(out, "Unknown %s command: %s\n", displayName, args[0])
			}
			fmt.Fprint(out, usage)
			return nil
		},
	}
}

package examples

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/erth-network/anml-cli/cli/service"
	"github.com/erth-network/anml-cli/cmd/anml_cli/common"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/msg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type flow struct {
	name  string
	title string
	run   func(ctx context.Context, ops common.Operations, out io.Writer) error
}

var flows = []flow{
	{name: "deploy-flow", title: "Deployment Flow Example", run: deployFlow},
	{name: "query-flow", title: "Query Flow Example", run: queryFlow},
	{name: "allocation-flow", title: "Allocation Flow Example", run: allocationFlow},
	{name: "config-flow", title: "Configuration Flow Example", run: configFlow},
}

var upper = cases.Upper(language.English)

func printSection(out io.Writer, title string) {
	rule := strings.Repeat("=", 50)
	fmt.Fprintf(out, "\n%s\n%s\n%s\n\n", rule, upper.String(title), rule)
}

func deployFlow(ctx context.Context, ops common.Operations, out io.Writer) error {
	fmt.Fprintln(out, "Step 1: Uploading contract...")
	uploaded, err := ops.Upload(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Contract uploaded successfully with code ID: %d and hash: %s\n", uploaded.CodeID, uploaded.CodeHash)

	fmt.Fprintln(out, "\nStep 2: Instantiating contract...")
	instantiated, err := ops.Instantiate(ctx, uploaded.CodeID, uploaded.CodeHash)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Contract instantiated successfully at address: %s\n", instantiated.ContractAddress)

	fmt.Fprintln(out, "\nStep 3: Demonstrating contract migration (not executed)...")
	fmt.Fprintf(out, "To migrate: anml_cli deploy migrate %s <newCodeId> <newCodeHash>\n", instantiated.ContractAddress)
	return nil
}

func queryFlow(ctx context.Context, ops common.Operations, out io.Writer) error {
	registration := contracts.Default().MustLookup(contracts.Registration)

	fmt.Fprintln(out, "Step 1: Querying node status...")
	block, err := ops.QueryNodeStatus(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Node is at block height: %d\n", block.Height)

	fmt.Fprintln(out, "\nStep 2: Querying contract info...")
	info, err := ops.QueryContractInfo(ctx, registration.Address)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Contract code ID: %d\n", info.CodeID)

	fmt.Fprintln(out, "\nStep 3: Getting contract code hash...")
	codeHash, err := ops.GetCodeHash(ctx, registration.Address)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Contract code hash: %s\n", codeHash)

	fmt.Fprintln(out, "\nStep 4: Querying contract state...")
	if _, err := ops.QueryState(ctx, registration.Address, ""); err != nil {
		return err
	}
	fmt.Fprintln(out, "Contract state retrieved successfully")
	return nil
}

func allocationFlow(ctx context.Context, ops common.Operations, out io.Writer) error {
	fmt.Fprintln(out, "Step 1: Adding allocation...")
	added, err := ops.AddAllocation(ctx, "", "", service.AllocationOptions{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Allocation added with transaction hash: %s\n", added.TxHash)

	fmt.Fprintln(out, "\nStep 2: Setting allocation percentages...")
	set, err := ops.SetAllocationPercentages(ctx, "", "", msg.DefaultPercentages())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Allocation percentages set with transaction hash: %s\n", set.TxHash)

	fmt.Fprintln(out, "\nStep 3: Editing allocation...")
	edited, err := ops.EditAllocation(ctx, "", "", 1, service.AllocationOptions{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Allocation edited with transaction hash: %s\n", edited.TxHash)

	fmt.Fprintln(out, "\nStep 4: Claiming allocation...")
	claimed, err := ops.ClaimAllocation(ctx, "", "", 1)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Allocation claimed with transaction hash: %s\n", claimed.TxHash)
	return nil
}

func configFlow(ctx context.Context, ops common.Operations, out io.Writer) error {
	fmt.Fprintln(out, "Step 1: Updating contract configuration...")
	updated, err := ops.UpdateConfig(ctx, "", "", service.ConfigOptions{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Contract configuration updated with transaction hash: %s\n", updated.TxHash)

	fmt.Fprintln(out, "\nStep 2: Adding a minter to ANML token...")
	minter, err := ops.AddMinter(ctx, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Minter added with transaction hash: %s\n", minter.TxHash)
	return nil
}

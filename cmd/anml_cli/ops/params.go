package ops

import (
	"github.com/erth-network/anml-cli/cli/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	maxRegistrationsFlag = "max-registrations"
	validitySecondsFlag  = "validity-seconds"
	receiveAddrFlag      = "receive-addr"
	receiveHashFlag      = "receive-hash"
	managerFlag          = "manager"
	claimerFlag          = "claimer"
	useSendFlag          = "use-send"
	percentageFlag       = "percentage"
)

type configParams struct {
	maxRegistrations uint32
	validitySeconds  uint64
}

func (p *configParams) setFlags(fs *pflag.FlagSet) {
	fs.Uint32Var(&p.maxRegistrations, maxRegistrationsFlag, 0,
		"Maximum registrations, for contracts that still support the limit")
	fs.Uint64Var(&p.validitySeconds, validitySecondsFlag, 0,
		"Seconds a registration stays valid (default one year)")
}

func (p *configParams) options(cmd *cobra.Command) service.ConfigOptions {
	opts := service.ConfigOptions{ValiditySeconds: p.validitySeconds}
	if cmd.Flags().Changed(maxRegistrationsFlag) {
		v := p.maxRegistrations
		opts.MaxRegistrations = &v
	}
	return opts
}

type allocationParams struct {
	receiveAddr string
	receiveHash string
	manager     string
	claimer     string
	useSend     bool
}

func (p *allocationParams) setFlags(fs *pflag.FlagSet) {
	fs.StringVar(&p.receiveAddr, receiveAddrFlag, "", "Address receiving the allocation (default: the contract)")
	fs.StringVar(&p.receiveHash, receiveHashFlag, "", "Code hash of the receiver (default: the contract hash)")
	fs.StringVar(&p.manager, managerFlag, "", "Manager address (default: the wallet)")
	fs.StringVar(&p.claimer, claimerFlag, "", "Claimer address (default: none)")
	fs.BoolVar(&p.useSend, useSendFlag, true, "Deliver rewards with send instead of transfer")
}

func (p *allocationParams) options(cmd *cobra.Command) service.AllocationOptions {
	opts := service.AllocationOptions{
		ReceiveAddr: p.receiveAddr,
		ReceiveHash: p.receiveHash,
		ManagerAddr: p.manager,
		ClaimerAddr: p.claimer,
	}
	if cmd.Flags().Changed(useSendFlag) {
		v := p.useSend
		opts.UseSend = &v
	}
	return opts
}

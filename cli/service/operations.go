package service

import (
	"context"
	"fmt"

	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/msg"
	"github.com/erth-network/anml-cli/core/types"
)

// ConfigOptions override the fields of the config sent by UpdateConfig. A zero
// ValiditySeconds means msg.DefaultRegistrationValiditySeconds; a nil MaxRegistrations
// leaves the field out.
type ConfigOptions struct {
	MaxRegistrations *uint32
	ValiditySeconds  uint64
}

// AllocationOptions override the defaults of an allocation config. Empty fields use:
// receiver = target contract, manager = wallet, claimer = none, use_send = true.
type AllocationOptions struct {
	ReceiveAddr string
	ReceiveHash string
	ManagerAddr string
	ClaimerAddr string
	UseSend     *bool
}

func (s *Service) allocationConfig(sess *Session, target Target, opts AllocationOptions) msg.AllocationConfig {
	cfg := msg.AllocationConfig{
		ReceiveAddr: target.Address,
		ReceiveHash: ptr(target.CodeHash),
		ManagerAddr: ptr(sess.Wallet.Address().String()),
		UseSend:     true,
	}
	if opts.ReceiveAddr != "" {
		cfg.ReceiveAddr = opts.ReceiveAddr
	}
	if opts.ReceiveHash != "" {
		cfg.ReceiveHash = ptr(opts.ReceiveHash)
	}
	if opts.ManagerAddr != "" {
		cfg.ManagerAddr = ptr(opts.ManagerAddr)
	}
	if opts.ClaimerAddr != "" {
		cfg.ClaimerAddr = ptr(opts.ClaimerAddr)
	}
	if opts.UseSend != nil {
		cfg.UseSend = *opts.UseSend
	}
	return cfg
}

func (s *Service) UpdateConfig(ctx context.Context, address, codeHash string, opts ConfigOptions) (*types.TxResponse, error) {
	target, err := s.resolve(address, codeHash, contracts.Registration)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(s.out, "Starting update contract configuration...")
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	validity := opts.ValiditySeconds
	if validity == 0 {
		validity = msg.DefaultRegistrationValiditySeconds
	}
	anml := s.dir.MustLookup(contracts.Anml)
	erth := s.dir.MustLookup(contracts.Erth)
	pool := s.dir.MustLookup(contracts.AnmlPool)
	self := sess.Wallet.Address().String()

	payload := &msg.UpdateConfig{Config: msg.Config{
		RegistrationAddress:         s.dir.RegistrationAddress(),
		RegistrationWallet:          self,
		ContractManager:             self,
		MaxRegistrations:            opts.MaxRegistrations,
		RegistrationValiditySeconds: validity,
		AnmlTokenContract:           anml.Address,
		AnmlTokenHash:               anml.CodeHash,
		ErthTokenContract:           erth.Address,
		ErthTokenHash:               erth.CodeHash,
		AnmlPoolContract:            pool.Address,
		AnmlPoolHash:                pool.CodeHash,
	}}

	fmt.Fprintln(s.out, "Executing update config transaction...")
	resp, err := s.execute(ctx, sess, target, payload)
	return s.printTx(resp, err, "Config updated successfully")
}

func (s *Service) AddAllocation(ctx context.Context, address, codeHash string, opts AllocationOptions) (*types.TxResponse, error) {
	target, err := s.resolve(address, codeHash, contracts.Registration)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(s.out, "Starting add allocation...")
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	payload := msg.AddAllocation(s.allocationConfig(sess, target, opts))

	fmt.Fprintln(s.out, "Executing add allocation transaction...")
	resp, err := s.execute(ctx, sess, target, &payload)
	return s.printTx(resp, err, "Allocation added successfully")
}

func (s *Service) ClaimAllocation(ctx context.Context, address, codeHash string, allocationID uint32) (*types.TxResponse, error) {
	target, err := s.resolve(address, codeHash, contracts.Registration)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Starting claim allocation for ID: %d...\n", allocationID)
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Uint32(logging.FieldAllocationId, allocationID).Msg("Claiming allocation")
	fmt.Fprintln(s.out, "Executing claim allocation transaction...")
	resp, err := s.execute(ctx, sess, target, &msg.ClaimAllocation{AllocationID: allocationID})
	return s.printTx(resp, err, "Allocation claimed successfully")
}

// SetAllocationPercentages replaces the reward split. Nil percentages route everything to allocation 1.
func (s *Service) SetAllocationPercentages(
	ctx context.Context, address, codeHash string, percentages []msg.AllocationPercentage,
) (*types.TxResponse, error) {
	target, err := s.resolve(address, codeHash, contracts.Registration)
	if err != nil {
		return nil, err
	}
	if percentages == nil {
		percentages = msg.DefaultPercentages()
	}

	fmt.Fprintln(s.out, "Starting set allocation percentages...")
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(s.out, "Executing set allocation percentages transaction...")
	resp, err := s.execute(ctx, sess, target, &msg.SetAllocation{Percentages: percentages})
	return s.printTx(resp, err, "Allocation percentages set successfully")
}

func (s *Service) EditAllocation(
	ctx context.Context, address, codeHash string, allocationID uint32, opts AllocationOptions,
) (*types.TxResponse, error) {
	target, err := s.resolve(address, codeHash, contracts.Registration)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Starting edit allocation for ID: %d...\n", allocationID)
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	payload := &msg.EditAllocation{
		AllocationID: allocationID,
		Config:       s.allocationConfig(sess, target, opts),
	}

	fmt.Fprintln(s.out, "Executing edit allocation transaction...")
	resp, err := s.execute(ctx, sess, target, payload)
	return s.printTx(resp, err, "Allocation edited successfully")
}

// AddMinter lets minter mint ANML. An empty minter means the registration contract.
func (s *Service) AddMinter(ctx context.Context, minter string) (*types.TxResponse, error) {
	if minter == "" {
		minter = s.dir.MustLookup(contracts.Registration).Address
	}
	target, err := s.resolve("", "", contracts.Anml)
	if err != nil {
		return nil, err
	}
	payload := &msg.SetMinters{Minters: []string{minter}}
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", msg.ErrInvalidPayload, err)
	}

	fmt.Fprintf(s.out, "Starting add minter: %s...\n", minter)
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(s.out, "Executing add minter transaction...")
	resp, err := s.execute(ctx, sess, target, payload)
	return s.printTx(resp, err, "Minter added successfully")
}

// printTx prints the success line of a write.
func (s *Service) printTx(resp *types.TxResponse, err error, success string) (*types.TxResponse, error) {
	if err != nil {
		return resp, err
	}
	fmt.Fprintf(s.out, "%s: %s\n", success, resp.TxHash)
	return resp, nil
}

func ptr[T any](v T) *T {
	return &v
}

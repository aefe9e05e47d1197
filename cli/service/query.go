package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/erth-network/anml-cli/common/concurrent"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/msg"
	"github.com/erth-network/anml-cli/core/types"
)

// QueryState returns the registration contract state. It never broadcasts.
func (s *Service) QueryState(ctx context.Context, address, codeHash string) (json.RawMessage, error) {
	return s.queryContract(ctx, address, codeHash, &msg.QueryState{}, "Querying state for contract", "Contract state:")
}

func (s *Service) QueryConfig(ctx context.Context, address, codeHash string) (json.RawMessage, error) {
	return s.queryContract(ctx, address, codeHash, &msg.QueryConfig{}, "Querying config for contract", "Contract config:")
}

func (s *Service) QueryAllocationOptions(ctx context.Context, address, codeHash string) (json.RawMessage, error) {
	return s.queryContract(ctx, address, codeHash, &msg.QueryAllocationOptions{},
		"Querying allocation options for contract", "Allocation options:")
}

func (s *Service) QueryUserAllocations(ctx context.Context, user, address, codeHash string) (json.RawMessage, error) {
	return s.queryContract(ctx, address, codeHash, &msg.QueryUserAllocations{Address: user},
		"Querying allocations of "+user+" on contract", "User allocations:")
}

func (s *Service) QueryRegistrationStatus(ctx context.Context, user, address, codeHash string) (json.RawMessage, error) {
	return s.queryContract(ctx, address, codeHash, &msg.QueryRegistrationStatus{Address: user},
		"Querying registration status of "+user+" on contract", "Registration status:")
}

func (s *Service) queryContract(
	ctx context.Context, address, codeHash string, payload msg.Payload, intro, label string,
) (json.RawMessage, error) {
	target, err := s.resolve(address, codeHash, contracts.Registration)
	if err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", msg.ErrInvalidPayload, err)
	}

	fmt.Fprintf(s.out, "%s: %s\n", intro, target.Address)
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.query(ctx, sess, target, payload)
	if err != nil {
		return nil, err
	}
	s.printJSON(label, result)
	return result, nil
}

func (s *Service) QueryContractInfo(ctx context.Context, address string) (*types.ContractInfo, error) {
	if address == "" {
		address = s.dir.MustLookup(contracts.Registration).Address
	}

	fmt.Fprintf(s.out, "Querying contract info for: %s\n", address)
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	info, err := concurrent.ExecuteWithTimeout(ctx, s.queryTimeout, func(ctx context.Context) (*types.ContractInfo, error) {
		return sess.Client.ContractInfo(ctx, address)
	})
	if err != nil {
		return nil, withTimeoutHint(err)
	}
	s.printJSON("Contract Info:", info)
	return info, nil
}

func (s *Service) QueryNodeStatus(ctx context.Context) (*types.Block, error) {
	fmt.Fprintln(s.out, "Querying node status...")
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	block, err := concurrent.ExecuteWithTimeout(ctx, s.queryTimeout, sess.Client.LatestBlock)
	if err != nil {
		return nil, withTimeoutHint(err)
	}
	fmt.Fprintf(s.out, "Latest block height: %d\n", block.Height)
	fmt.Fprintf(s.out, "Latest block time: %s\n", block.Time.Format(time.RFC3339Nano))
	return block, nil
}

// GetCodeHash looks up the code hash of the contract at address. The address is required.
func (s *Service) GetCodeHash(ctx context.Context, address string) (string, error) {
	if address == "" {
		return "", fmt.Errorf("%w: contract address is required", ErrMissingTarget)
	}

	fmt.Fprintf(s.out, "Getting code hash for contract: %s\n", address)
	sess, err := s.connect(ctx)
	if err != nil {
		return "", err
	}

	hash, err := concurrent.ExecuteWithTimeout(ctx, s.queryTimeout, func(ctx context.Context) (string, error) {
		return sess.Client.CodeHashByContractAddress(ctx, address)
	})
	if err != nil {
		return "", withTimeoutHint(err)
	}
	fmt.Fprintf(s.out, "Code hash for contract %s: %s\n", address, hash)
	return hash, nil
}

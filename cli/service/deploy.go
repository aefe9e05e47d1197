package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/erth-network/anml-cli/common/concurrent"
	"github.com/erth-network/anml-cli/common/logging"
	"github.com/erth-network/anml-cli/contracts"
	"github.com/erth-network/anml-cli/core/msg"
	"github.com/erth-network/anml-cli/core/types"
)

type UploadResult struct {
	CodeID   uint64
	CodeHash string
	TxHash   string
}

type InstantiateResult struct {
	ContractAddress string
	TxHash          string
}

// Upload stores the compressed contract bytecode and looks up its code hash.
func (s *Service) Upload(ctx context.Context) (*UploadResult, error) {
	fmt.Fprintln(s.out, "Starting contract upload...")

	path := s.cfg.WasmPath
	if path == "" {
		path = contracts.DefaultWasmPath
	}
	wasm, err := contracts.LoadWasm(ctx, path)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to read contract wasm")
		return nil, err
	}

	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(s.out, "Uploading contract...")
	resp, err := s.broadcast(ctx, sess, UploadGasLimit, types.MsgStoreCode{
		Sender:       sess.Wallet.Address(),
		WASMByteCode: wasm,
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Upload transaction completed: %s\n", resp.TxHash)

	raw, err := resp.ArrayLog.Find("message", "code_id")
	if err != nil {
		return nil, err
	}
	codeID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid code_id %q in transaction log: %w", raw, err)
	}
	fmt.Fprintf(s.out, "Code ID: %d\n", codeID)

	codeHash, err := concurrent.ExecuteWithTimeout(ctx, s.queryTimeout, func(ctx context.Context) (string, error) {
		return sess.Client.CodeHashByCodeID(ctx, codeID)
	})
	if err != nil {
		return nil, withTimeoutHint(err)
	}
	fmt.Fprintf(s.out, "Contract hash: %s\n", codeHash)

	return &UploadResult{CodeID: codeID, CodeHash: codeHash, TxHash: resp.TxHash}, nil
}

func (s *Service) instantiateMsg(sess *Session) *msg.InstantiateMsg {
	anml := s.dir.MustLookup(contracts.Anml)
	erth := s.dir.MustLookup(contracts.Erth)
	pool := s.dir.MustLookup(contracts.AnmlPool)
	self := sess.Wallet.Address().String()
	return &msg.InstantiateMsg{
		RegistrationAddress: s.dir.RegistrationAddress(),
		RegistrationWallet:  self,
		ContractManager:     self,
		AnmlTokenContract:   anml.Address,
		AnmlTokenHash:       anml.CodeHash,
		ErthTokenContract:   erth.Address,
		ErthTokenHash:       erth.CodeHash,
		AnmlPoolContract:    pool.Address,
		AnmlPoolHash:        pool.CodeHash,
	}
}

// Instantiate creates a contract from codeID with the wallet as admin.
// Zero codeID and empty codeHash fall back to the directory defaults.
func (s *Service) Instantiate(ctx context.Context, codeID uint64, codeHash string) (*InstantiateResult, error) {
	if codeID == 0 {
		codeID = s.dir.CodeID()
	}
	target, err := s.resolve("", codeHash, contracts.Registration)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(s.out, "Starting contract instantiation...")
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	initMsg := s.instantiateMsg(sess)
	data, err := msg.MarshalInit(initMsg)
	if err != nil {
		return nil, err
	}
	s.printJSON("Instantiating contract with init message:", initMsg)

	resp, err := s.broadcast(ctx, sess, InstantiateGasLimit, types.MsgInstantiateContract{
		Sender:   sess.Wallet.Address(),
		CodeID:   codeID,
		CodeHash: target.CodeHash,
		Label:    fmt.Sprintf("animal registration %d", rand.IntN(10000)+1),
		InitMsg:  data,
		Admin:    sess.Wallet.Address().String(),
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Instantiation transaction completed: %s\n", resp.TxHash)

	addr, err := resp.ArrayLog.Find("message", "contract_address")
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Contract address: %s\n", addr)

	s.logger.Info().Str(logging.FieldContract, addr).Uint64(logging.FieldCodeId, codeID).Msg("Contract instantiated")
	return &InstantiateResult{ContractAddress: addr, TxHash: resp.TxHash}, nil
}

// Migrate moves the contract at address to codeID. codeHash is the hash of the new code.
func (s *Service) Migrate(ctx context.Context, address string, codeID uint64, codeHash string) (*types.TxResponse, error) {
	if codeID == 0 {
		codeID = s.dir.CodeID()
	}
	target, err := s.resolve(address, codeHash, contracts.Registration)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Starting contract migration for %s...\n", target.Address)
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	data, err := msg.Marshal(&msg.Migrate{})
	if err != nil {
		return nil, err
	}
	contract, err := types.ParseAddress(target.Address)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.out, "Migrating contract to code ID %d...\n", codeID)
	resp, err := s.broadcast(ctx, sess, MigrateGasLimit, types.MsgMigrateContract{
		Sender:   sess.Wallet.Address(),
		Contract: contract,
		CodeID:   codeID,
		CodeHash: target.CodeHash,
		Msg:      data,
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.out, "Migration transaction completed: %s\n", resp.TxHash)
	return resp, nil
}

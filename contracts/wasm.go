package contracts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/tetratelabs/wazero"
)

const DefaultWasmPath = "contract.wasm.gz"

// maxWasmSize bounds the decompressed module.
const maxWasmSize = 64 << 20

var ErrInvalidWasm = errors.New("invalid contract bytecode")

// LoadWasm reads a gzip-compressed contract and compiles it locally. The compressed
// bytes are returned unchanged for upload.
func LoadWasm(ctx context.Context, path string) ([]byte, error) {
	gz, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract %s: %w", path, err)
	}
	if err := ValidateWasm(ctx, gz); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return gz, nil
}

func ValidateWasm(ctx context.Context, gz []byte) error {
	zr, err := gzip.NewReader(bytes.NewReader(gz))
	if err != nil {
		return fmt.Errorf("%w: not gzip: %w", ErrInvalidWasm, err)
	}
	defer zr.Close()

	code, err := io.ReadAll(io.LimitReader(zr, maxWasmSize+1))
	if err != nil {
		return fmt.Errorf("%w: decompress: %w", ErrInvalidWasm, err)
	}
	if len(code) > maxWasmSize {
		return fmt.Errorf("%w: module exceeds %d bytes", ErrInvalidWasm, maxWasmSize)
	}

	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidWasm, err)
	}
	return compiled.Close(ctx)
}

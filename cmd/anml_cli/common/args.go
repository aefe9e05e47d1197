package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/erth-network/anml-cli/core/msg"
	"github.com/spf13/cobra"
)

var ErrUsage = errors.New("invalid usage")

// Arg returns the i-th positional argument or "" when it was omitted.
func Arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// RangeArgs is cobra.RangeArgs reporting ErrUsage. required names the mandatory arguments in order.
func RangeArgs(maxArgs int, required ...string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < len(required) {
			return fmt.Errorf("%w: %s is required for %s command", ErrUsage, required[len(args)], cmd.Name())
		}
		if len(args) > maxArgs {
			return fmt.Errorf("%w: %s accepts at most %d arg(s), received %d", ErrUsage, cmd.Name(), maxArgs, len(args))
		}
		return nil
	}
}

// ParseCodeID parses an optional code id. An omitted id is 0.
func ParseCodeID(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: code ID must be a positive integer, got %q", ErrUsage, s)
	}
	return id, nil
}

func ParseAllocationID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: allocation ID must be a non-negative integer, got %q", ErrUsage, s)
	}
	return uint32(id), nil
}

// ParsePercentages parses "id=percentage" pairs. No pairs yields nil.
func ParsePercentages(pairs []string) ([]msg.AllocationPercentage, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make([]msg.AllocationPercentage, 0, len(pairs))
	for _, pair := range pairs {
		idStr, pctStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("%w: percentage %q is not in id=value form", ErrUsage, pair)
		}
		id, err := ParseAllocationID(strings.TrimSpace(idStr))
		if err != nil {
			return nil, err
		}
		pct, err := msg.ParseUint128(strings.TrimSpace(pctStr))
		if err != nil {
			return nil, fmt.Errorf("%w: percentage %q: %w", ErrUsage, pctStr, err)
		}
		out = append(out, msg.AllocationPercentage{AllocationID: id, Percentage: pct})
	}
	return out, nil
}

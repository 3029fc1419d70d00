package compute_budget

import (
	"bytes"
	"crypto/ed25519"
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

// ComputeBudget111111111111111111111111111111
var ProgramKey = ed25519.PublicKey{3, 6, 70, 111, 229, 33, 23, 50, 255, 236, 173, 186, 114, 195, 155, 231, 188, 140, 229, 187, 197, 247, 18, 107, 44, 67, 155, 58, 64, 0, 0, 0}

const (
	commandRequestUnits uint8 = iota
	commandRequestHeapFrame
	commandSetComputeUnitLimit
	commandSetComputeUnitPrice
)

var ErrInvalidInstructionData = errors.New("invalid compute budget instruction data")

// SetComputeUnitLimit caps the compute units the transaction may consume.
func SetComputeUnitLimit(computeUnitLimit uint32) solana.Instruction {
	data := make([]byte, 1+4)
	data[0] = commandSetComputeUnitLimit
	binary.LittleEndian.PutUint32(data[1:], computeUnitLimit)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
	)
}

// SetComputeUnitPrice sets the priority fee in micro-lamports per compute unit.
func SetComputeUnitPrice(computeUnitPrice uint64) solana.Instruction {
	data := make([]byte, 1+8)
	data[0] = commandSetComputeUnitPrice
	binary.LittleEndian.PutUint64(data[1:], computeUnitPrice)

	return solana.NewInstruction(
		ProgramKey[:],
		data,
	)
}

// DecompiledComputeBudget holds whichever settings were found in a message.
// Unset values are nil.
type DecompiledComputeBudget struct {
	ComputeUnitLimit *uint32
	ComputeUnitPrice *uint64
}

// DecompileComputeBudget collects the compute budget instructions in a
// message. Instructions for other programs are skipped.
func DecompileComputeBudget(m solana.Message) (*DecompiledComputeBudget, error) {
	var decompiled DecompiledComputeBudget

	for i, ix := range m.Instructions {
		if int(ix.ProgramIndex) >= len(m.Accounts) || !bytes.Equal(m.Accounts[ix.ProgramIndex], ProgramKey) {
			continue
		}

		if len(ix.Data) == 0 {
			return nil, errors.Wrapf(ErrInvalidInstructionData, "empty instruction at %d", i)
		}

		switch ix.Data[0] {
		case commandSetComputeUnitLimit:
			limit, err := ParseSetComputeUnitLimitIxnData(ix.Data)
			if err != nil {
				return nil, errors.Wrapf(err, "instruction %d", i)
			}
			decompiled.ComputeUnitLimit = &limit
		case commandSetComputeUnitPrice:
			price, err := ParseSetComputeUnitPriceIxnData(ix.Data)
			if err != nil {
				return nil, errors.Wrapf(err, "instruction %d", i)
			}
			decompiled.ComputeUnitPrice = &price
		default:
			return nil, errors.Wrapf(ErrInvalidInstructionData, "unsupported command %d at %d", ix.Data[0], i)
		}
	}

	return &decompiled, nil
}

func ParseSetComputeUnitLimitIxnData(data []byte) (uint32, error) {
	if len(data) != 5 || data[0] != commandSetComputeUnitLimit {
		return 0, ErrInvalidInstructionData
	}

	return binary.LittleEndian.Uint32(data[1:]), nil
}

func ParseSetComputeUnitPriceIxnData(data []byte) (uint64, error) {
	if len(data) != 9 || data[0] != commandSetComputeUnitPrice {
		return 0, ErrInvalidInstructionData
	}

	return binary.LittleEndian.Uint64(data[1:]), nil
}

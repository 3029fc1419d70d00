package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const RefundInstructionAccountsCount = 6

type RefundInstructionAccounts struct {
	Program       ed25519.PublicKey
	Authority     ed25519.PublicKey
	Asset         ed25519.PublicKey
	Bidder        ed25519.PublicKey
	PlatformState ed25519.PublicKey
	BidState      ed25519.PublicKey
	BidVault      ed25519.PublicKey
}

// NewRefundInstruction lets the platform authority return a bidder's escrowed funds.
func NewRefundInstruction(
	accounts *RefundInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeRefund, &offset)

	return solana.Instruction{
		Program: accounts.Program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Authority,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Asset,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Bidder,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.PlatformState,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.BidState,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.BidVault,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

// RefundInstructionFromBinary validates the payload of a refund instruction.
// Trailing bytes after the opcode are ignored.
func RefundInstructionFromBinary(data []byte) error {
	if len(data) == 0 {
		return ProgramErrorInvalidInstruction
	}
	if InstructionType(data[0]) != InstructionTypeRefund {
		return ErrInvalidInstructionData
	}
	return nil
}

func refundInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*RefundInstructionAccounts, error) {
	if len(keys) != RefundInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &RefundInstructionAccounts{
		Program:       program,
		Authority:     keys[0],
		Asset:         keys[1],
		Bidder:        keys[2],
		PlatformState: keys[3],
		BidState:      keys[4],
		BidVault:      keys[5],
	}, nil
}

package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const WithdrawBidInstructionAccountsCount = 5

type WithdrawBidInstructionAccounts struct {
	Program  ed25519.PublicKey
	Bidder   ed25519.PublicKey
	Asset    ed25519.PublicKey
	BidState ed25519.PublicKey
	BidVault ed25519.PublicKey
}

// NewWithdrawBidInstruction cancels an active bid and returns the escrowed funds.
func NewWithdrawBidInstruction(
	accounts *WithdrawBidInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeWithdrawBid, &offset)

	return solana.Instruction{
		Program: accounts.Program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Bidder,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.Asset,
				IsWritable: true,
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
			{
				PublicKey:  accounts.Program,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

// WithdrawBidInstructionFromBinary validates the payload of a withdraw bid instruction.
// Trailing bytes after the opcode are ignored.
func WithdrawBidInstructionFromBinary(data []byte) error {
	if len(data) == 0 {
		return ProgramErrorInvalidInstruction
	}
	if InstructionType(data[0]) != InstructionTypeWithdrawBid {
		return ErrInvalidInstructionData
	}
	return nil
}

func withdrawBidInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*WithdrawBidInstructionAccounts, error) {
	if len(keys) != WithdrawBidInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &WithdrawBidInstructionAccounts{
		Program:  program,
		Bidder:   keys[0],
		Asset:    keys[1],
		BidState: keys[2],
		BidVault: keys[3],
	}, nil
}

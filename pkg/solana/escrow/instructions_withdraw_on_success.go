package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const WithdrawOnSuccessInstructionAccountsCount = 7

type WithdrawOnSuccessInstructionAccounts struct {
	Program            ed25519.PublicKey
	Bidder             ed25519.PublicKey
	BidderTokenAccount ed25519.PublicKey
	Asset              ed25519.PublicKey
	Lister             ed25519.PublicKey
	ListState          ed25519.PublicKey
	ListVault          ed25519.PublicKey
}

// NewWithdrawOnSuccessInstruction releases a settled asset to the winning bidder.
func NewWithdrawOnSuccessInstruction(
	accounts *WithdrawOnSuccessInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeWithdrawOnSuccess, &offset)

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
				PublicKey:  accounts.BidderTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Asset,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Lister,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.ListState,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.ListVault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

// WithdrawOnSuccessInstructionFromBinary validates the payload of a withdraw on success instruction.
// Trailing bytes after the opcode are ignored.
func WithdrawOnSuccessInstructionFromBinary(data []byte) error {
	if len(data) == 0 {
		return ProgramErrorInvalidInstruction
	}
	if InstructionType(data[0]) != InstructionTypeWithdrawOnSuccess {
		return ErrInvalidInstructionData
	}
	return nil
}

func withdrawOnSuccessInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*WithdrawOnSuccessInstructionAccounts, error) {
	if len(keys) != WithdrawOnSuccessInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &WithdrawOnSuccessInstructionAccounts{
		Program:            program,
		Bidder:             keys[0],
		BidderTokenAccount: keys[1],
		Asset:              keys[2],
		Lister:             keys[3],
		ListState:          keys[4],
		ListVault:          keys[5],
	}, nil
}

package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const DelistInstructionAccountsCount = 7

type DelistInstructionAccounts struct {
	Program            ed25519.PublicKey
	Lister             ed25519.PublicKey
	ListerTokenAccount ed25519.PublicKey
	Asset              ed25519.PublicKey
	ListState          ed25519.PublicKey
	ListVault          ed25519.PublicKey
}

// NewDelistInstruction closes an open listing and returns the escrowed asset.
func NewDelistInstruction(
	accounts *DelistInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeDelist, &offset)

	return solana.Instruction{
		Program: accounts.Program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Lister,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.ListerTokenAccount,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Asset,
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
				PublicKey:  accounts.Program,
				IsWritable: false,
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

// DelistInstructionFromBinary validates the payload of a delist instruction.
// Trailing bytes after the opcode are ignored.
func DelistInstructionFromBinary(data []byte) error {
	if len(data) == 0 {
		return ProgramErrorInvalidInstruction
	}
	if InstructionType(data[0]) != InstructionTypeDelist {
		return ErrInvalidInstructionData
	}
	return nil
}

func delistInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*DelistInstructionAccounts, error) {
	if len(keys) != DelistInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &DelistInstructionAccounts{
		Program:            program,
		Lister:             keys[0],
		ListerTokenAccount: keys[1],
		Asset:              keys[2],
		ListState:          keys[3],
		ListVault:          keys[4],
	}, nil
}

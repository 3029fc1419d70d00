package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const (
	ChangeAuthorityInstructionArgsSize = (32) // authority

	ChangeAuthorityInstructionAccountsCount = 2
)

type ChangeAuthorityInstructionArgs struct {
	NewAuthority ed25519.PublicKey
}

type ChangeAuthorityInstructionAccounts struct {
	Program       ed25519.PublicKey
	Payer         ed25519.PublicKey
	PlatformState ed25519.PublicKey
}

// NewChangeAuthorityInstruction hands the platform authority to a new key.
func NewChangeAuthorityInstruction(
	accounts *ChangeAuthorityInstructionAccounts,
	args *ChangeAuthorityInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+ChangeAuthorityInstructionArgsSize)

	putInstructionType(data, InstructionTypeChangeAuthority, &offset)
	putKey(data, args.NewAuthority, &offset)

	return solana.Instruction{
		Program: accounts.Program,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []solana.AccountMeta{
			{
				PublicKey:  accounts.Payer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  accounts.PlatformState,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

// ChangeAuthorityInstructionFromBinary parses the payload of a change authority instruction.
func ChangeAuthorityInstructionFromBinary(data []byte) (*ChangeAuthorityInstructionArgs, error) {
	var offset int
	var instructionType InstructionType

	if len(data) == 0 {
		return nil, ProgramErrorInvalidInstruction
	}

	getInstructionType(data, &instructionType, &offset)
	if instructionType != InstructionTypeChangeAuthority {
		return nil, ErrInvalidInstructionData
	}
	if len(data)-offset != ChangeAuthorityInstructionArgsSize {
		return nil, ProgramErrorInvalidAuthority
	}

	var args ChangeAuthorityInstructionArgs
	getKey(data, &args.NewAuthority, &offset)

	return &args, nil
}

func changeAuthorityInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*ChangeAuthorityInstructionAccounts, error) {
	if len(keys) != ChangeAuthorityInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &ChangeAuthorityInstructionAccounts{
		Program:       program,
		Payer:         keys[0],
		PlatformState: keys[1],
	}, nil
}

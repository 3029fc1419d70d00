package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const (
	ListInstructionArgsSize = (8) // amount

	ListInstructionAccountsCount = 9
)

type ListInstructionArgs struct {
	Amount uint64
}

type ListInstructionAccounts struct {
	Program            ed25519.PublicKey
	Lister             ed25519.PublicKey
	ListerTokenAccount ed25519.PublicKey
	Asset              ed25519.PublicKey
	ListState          ed25519.PublicKey
	ListVault          ed25519.PublicKey
}

// NewListInstruction escrows the lister's asset and opens a listing.
func NewListInstruction(
	accounts *ListInstructionAccounts,
	args *ListInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+ListInstructionArgsSize)

	putInstructionType(data, InstructionTypeList, &offset)
	putUint64(data, args.Amount, &offset)

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
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

// ListInstructionFromBinary parses the payload of a list instruction.
func ListInstructionFromBinary(data []byte) (*ListInstructionArgs, error) {
	var offset int
	var instructionType InstructionType

	if len(data) == 0 {
		return nil, ProgramErrorInvalidInstruction
	}

	getInstructionType(data, &instructionType, &offset)
	if instructionType != InstructionTypeList {
		return nil, ErrInvalidInstructionData
	}
	if len(data)-offset != ListInstructionArgsSize {
		return nil, ProgramErrorInvalidInstructionData
	}

	var args ListInstructionArgs
	getUint64(data, &args.Amount, &offset)

	return &args, nil
}

func listInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*ListInstructionAccounts, error) {
	if len(keys) != ListInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &ListInstructionAccounts{
		Program:            program,
		Lister:             keys[0],
		ListerTokenAccount: keys[1],
		Asset:              keys[2],
		ListState:          keys[3],
		ListVault:          keys[4],
	}, nil
}

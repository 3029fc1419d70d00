package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const (
	InitializeInstructionArgsSize = (32 + // authority
		8) // platform_fee

	InitializeInstructionAccountsCount = 5
)

type InitializeInstructionArgs struct {
	Authority ed25519.PublicKey
	Fee       uint64
}

type InitializeInstructionAccounts struct {
	Program       ed25519.PublicKey
	Payer         ed25519.PublicKey
	PlatformState ed25519.PublicKey
}

// NewInitializeInstruction creates the platform state with its authority and fee.
func NewInitializeInstruction(
	accounts *InitializeInstructionAccounts,
	args *InitializeInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+InitializeInstructionArgsSize)

	putInstructionType(data, InstructionTypeInitialize, &offset)
	putKey(data, args.Authority, &offset)
	putUint64(data, args.Fee, &offset)

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
			{
				PublicKey:  accounts.Program,
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

// InitializeInstructionFromBinary parses the payload of an initialize instruction.
func InitializeInstructionFromBinary(data []byte) (*InitializeInstructionArgs, error) {
	var offset int
	var instructionType InstructionType

	if len(data) == 0 {
		return nil, ProgramErrorInvalidInstruction
	}

	getInstructionType(data, &instructionType, &offset)
	if instructionType != InstructionTypeInitialize {
		return nil, ErrInvalidInstructionData
	}
	if len(data)-offset < 32 {
		return nil, ProgramErrorInvalidAuthority
	}
	if len(data)-offset != InitializeInstructionArgsSize {
		return nil, ProgramErrorInvalidPlatformFee
	}

	var args InitializeInstructionArgs
	getKey(data, &args.Authority, &offset)
	getUint64(data, &args.Fee, &offset)

	return &args, nil
}

func initializeInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*InitializeInstructionAccounts, error) {
	if len(keys) != InitializeInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &InitializeInstructionAccounts{
		Program:       program,
		Payer:         keys[0],
		PlatformState: keys[1],
	}, nil
}

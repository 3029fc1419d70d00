package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const (
	BidInstructionArgsSize = (8) // amount

	BidInstructionAccountsCount = 7
)

type BidInstructionArgs struct {
	Amount uint64
}

type BidInstructionAccounts struct {
	Program  ed25519.PublicKey
	Bidder   ed25519.PublicKey
	Asset    ed25519.PublicKey
	BidState ed25519.PublicKey
	BidVault ed25519.PublicKey
}

// NewBidInstruction escrows the bidder's funds against an asset.
func NewBidInstruction(
	accounts *BidInstructionAccounts,
	args *BidInstructionArgs,
) solana.Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, 1+BidInstructionArgsSize)

	putInstructionType(data, InstructionTypeBid, &offset)
	putUint64(data, args.Amount, &offset)

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

// BidInstructionFromBinary parses the payload of a bid instruction.
func BidInstructionFromBinary(data []byte) (*BidInstructionArgs, error) {
	var offset int
	var instructionType InstructionType

	if len(data) == 0 {
		return nil, ProgramErrorInvalidInstruction
	}

	getInstructionType(data, &instructionType, &offset)
	if instructionType != InstructionTypeBid {
		return nil, ErrInvalidInstructionData
	}
	if len(data)-offset != BidInstructionArgsSize {
		return nil, ProgramErrorInvalidInstructionData
	}

	var args BidInstructionArgs
	getUint64(data, &args.Amount, &offset)

	return &args, nil
}

func bidInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*BidInstructionAccounts, error) {
	if len(keys) != BidInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &BidInstructionAccounts{
		Program:  program,
		Bidder:   keys[0],
		Asset:    keys[1],
		BidState: keys[2],
		BidVault: keys[3],
	}, nil
}

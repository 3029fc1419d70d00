package escrow

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

const AcceptBidInstructionAccountsCount = 7

type AcceptBidInstructionAccounts struct {
	Program   ed25519.PublicKey
	Lister    ed25519.PublicKey
	Asset     ed25519.PublicKey
	Bidder    ed25519.PublicKey
	BidState  ed25519.PublicKey
	BidVault  ed25519.PublicKey
	ListState ed25519.PublicKey
	ListVault ed25519.PublicKey
}

// NewAcceptBidInstruction settles a listing against a bidder's escrowed funds.
func NewAcceptBidInstruction(
	accounts *AcceptBidInstructionAccounts,
) solana.Instruction {
	var offset int

	data := make([]byte, 1)
	putInstructionType(data, InstructionTypeAcceptBid, &offset)

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
				PublicKey:  accounts.ListState,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.ListVault,
				IsWritable: true,
				IsSigner:   false,
			},
		},
	}
}

// AcceptBidInstructionFromBinary validates the payload of an accept bid instruction.
// Trailing bytes after the opcode are ignored.
func AcceptBidInstructionFromBinary(data []byte) error {
	if len(data) == 0 {
		return ProgramErrorInvalidInstruction
	}
	if InstructionType(data[0]) != InstructionTypeAcceptBid {
		return ErrInvalidInstructionData
	}
	return nil
}

func acceptBidInstructionAccountsFromKeys(program ed25519.PublicKey, keys []ed25519.PublicKey) (*AcceptBidInstructionAccounts, error) {
	if len(keys) != AcceptBidInstructionAccountsCount {
		return nil, ErrInvalidInstructionData
	}

	return &AcceptBidInstructionAccounts{
		Program:   program,
		Lister:    keys[0],
		Asset:     keys[1],
		Bidder:    keys[2],
		BidState:  keys[3],
		BidVault:  keys[4],
		ListState: keys[5],
		ListVault: keys[6],
	}, nil
}

package auction

import (
	"crypto/ed25519"

	"github.com/code-payments/escrow-auction/pkg/solana/escrow"
)

// Action is one of the nine auction actions understood by the escrow program.
// The asset is not part of an action; it is fixed by the Encoder.
type Action interface {
	// Type is the opcode the action encodes to.
	Type() escrow.InstructionType

	// Signer is the account that must co-sign the resulting instruction.
	Signer() ed25519.PublicKey

	isAction()
}

// Initialize creates the platform state.
type Initialize struct {
	Payer     ed25519.PublicKey
	Authority ed25519.PublicKey
	Fee       uint64
}

// ChangeAuthority replaces the platform authority.
type ChangeAuthority struct {
	Payer        ed25519.PublicKey
	NewAuthority ed25519.PublicKey
}

// List escrows Amount of the asset from the lister's token account.
//
// ListerTokenAccount defaults to the lister's associated token account.
type List struct {
	Lister             ed25519.PublicKey
	ListerTokenAccount ed25519.PublicKey
	Amount             uint64
}

// Delist returns an open listing to the lister.
//
// ListerTokenAccount defaults to the lister's associated token account.
type Delist struct {
	Lister             ed25519.PublicKey
	ListerTokenAccount ed25519.PublicKey
}

// Bid escrows Amount of funds from the bidder.
type Bid struct {
	Bidder ed25519.PublicKey
	Amount uint64
}

// WithdrawBid cancels an active bid.
type WithdrawBid struct {
	Bidder ed25519.PublicKey
}

// AcceptBid settles the lister's listing against the bidder's bid.
type AcceptBid struct {
	Lister ed25519.PublicKey
	Bidder ed25519.PublicKey
}

// WithdrawOnSuccess releases the listed asset to the accepted bidder.
//
// BidderTokenAccount defaults to the bidder's associated token account.
type WithdrawOnSuccess struct {
	Bidder             ed25519.PublicKey
	BidderTokenAccount ed25519.PublicKey
	Lister             ed25519.PublicKey
}

// Refund is issued by the platform authority to close a bidder's bid.
type Refund struct {
	Authority ed25519.PublicKey
	Bidder    ed25519.PublicKey
}

func (*Initialize) Type() escrow.InstructionType      { return escrow.InstructionTypeInitialize }
func (*ChangeAuthority) Type() escrow.InstructionType { return escrow.InstructionTypeChangeAuthority }
func (*List) Type() escrow.InstructionType            { return escrow.InstructionTypeList }
func (*Delist) Type() escrow.InstructionType          { return escrow.InstructionTypeDelist }
func (*Bid) Type() escrow.InstructionType             { return escrow.InstructionTypeBid }
func (*WithdrawBid) Type() escrow.InstructionType     { return escrow.InstructionTypeWithdrawBid }
func (*AcceptBid) Type() escrow.InstructionType       { return escrow.InstructionTypeAcceptBid }
func (*WithdrawOnSuccess) Type() escrow.InstructionType {
	return escrow.InstructionTypeWithdrawOnSuccess
}
func (*Refund) Type() escrow.InstructionType { return escrow.InstructionTypeRefund }

func (a *Initialize) Signer() ed25519.PublicKey        { return a.Payer }
func (a *ChangeAuthority) Signer() ed25519.PublicKey   { return a.Payer }
func (a *List) Signer() ed25519.PublicKey              { return a.Lister }
func (a *Delist) Signer() ed25519.PublicKey            { return a.Lister }
func (a *Bid) Signer() ed25519.PublicKey               { return a.Bidder }
func (a *WithdrawBid) Signer() ed25519.PublicKey       { return a.Bidder }
func (a *AcceptBid) Signer() ed25519.PublicKey         { return a.Lister }
func (a *WithdrawOnSuccess) Signer() ed25519.PublicKey { return a.Bidder }
func (a *Refund) Signer() ed25519.PublicKey            { return a.Authority }

func (*Initialize) isAction()        {}
func (*ChangeAuthority) isAction()   {}
func (*List) isAction()              {}
func (*Delist) isAction()            {}
func (*Bid) isAction()               {}
func (*WithdrawBid) isAction()       {}
func (*AcceptBid) isAction()         {}
func (*WithdrawOnSuccess) isAction() {}
func (*Refund) isAction()            {}

package auction

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/escrow-auction/pkg/solana"
	"github.com/code-payments/escrow-auction/pkg/solana/escrow"
	"github.com/code-payments/escrow-auction/pkg/solana/token"
)

// Encoder builds escrow program instructions for a single asset.
//
// Every address an action needs is resolved before the instruction is
// assembled, so a failure never yields a partial instruction. Encoding does
// not consult ledger state and never rejects an action based on it.
type Encoder struct {
	deriver Deriver
	asset   ed25519.PublicKey
}

// NewEncoder returns an Encoder for asset, resolving addresses via deriver.
func NewEncoder(deriver Deriver, asset ed25519.PublicKey) *Encoder {
	return &Encoder{
		deriver: deriver,
		asset:   asset,
	}
}

// Asset returns the asset identity every action is encoded against.
func (e *Encoder) Asset() ed25519.PublicKey {
	return e.asset
}

// Encode builds the instruction for an action. Failures are returned as a
// *PhaseError in either the derivation or the encoding phase.
func (e *Encoder) Encode(action Action) (solana.Instruction, error) {
	program := e.deriver.Program()

	switch a := action.(type) {
	case *Initialize:
		if err := requireKeys(a, a.Payer, a.Authority); err != nil {
			return solana.Instruction{}, err
		}

		platformState, err := e.derive(a, escrow.RolePlatform, escrow.SubkindState)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewInitializeInstruction(
			&escrow.InitializeInstructionAccounts{
				Program:       program,
				Payer:         a.Payer,
				PlatformState: platformState,
			},
			&escrow.InitializeInstructionArgs{
				Authority: a.Authority,
				Fee:       a.Fee,
			},
		), nil

	case *ChangeAuthority:
		if err := requireKeys(a, a.Payer, a.NewAuthority); err != nil {
			return solana.Instruction{}, err
		}

		platformState, err := e.derive(a, escrow.RolePlatform, escrow.SubkindState)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewChangeAuthorityInstruction(
			&escrow.ChangeAuthorityInstructionAccounts{
				Program:       program,
				Payer:         a.Payer,
				PlatformState: platformState,
			},
			&escrow.ChangeAuthorityInstructionArgs{
				NewAuthority: a.NewAuthority,
			},
		), nil

	case *List:
		if err := requireKeys(a, a.Lister); err != nil {
			return solana.Instruction{}, err
		}

		listState, listVault, err := e.deriveListing(a, a.Lister)
		if err != nil {
			return solana.Instruction{}, err
		}

		tokenAccount, err := e.tokenAccountOrDefault(a, a.ListerTokenAccount, a.Lister)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewListInstruction(
			&escrow.ListInstructionAccounts{
				Program:            program,
				Lister:             a.Lister,
				ListerTokenAccount: tokenAccount,
				Asset:              e.asset,
				ListState:          listState,
				ListVault:          listVault,
			},
			&escrow.ListInstructionArgs{
				Amount: a.Amount,
			},
		), nil

	case *Delist:
		if err := requireKeys(a, a.Lister); err != nil {
			return solana.Instruction{}, err
		}

		listState, listVault, err := e.deriveListing(a, a.Lister)
		if err != nil {
			return solana.Instruction{}, err
		}

		tokenAccount, err := e.tokenAccountOrDefault(a, a.ListerTokenAccount, a.Lister)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewDelistInstruction(
			&escrow.DelistInstructionAccounts{
				Program:            program,
				Lister:             a.Lister,
				ListerTokenAccount: tokenAccount,
				Asset:              e.asset,
				ListState:          listState,
				ListVault:          listVault,
			},
		), nil

	case *Bid:
		if err := requireKeys(a, a.Bidder); err != nil {
			return solana.Instruction{}, err
		}

		bidState, bidVault, err := e.deriveBid(a, a.Bidder)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewBidInstruction(
			&escrow.BidInstructionAccounts{
				Program:  program,
				Bidder:   a.Bidder,
				Asset:    e.asset,
				BidState: bidState,
				BidVault: bidVault,
			},
			&escrow.BidInstructionArgs{
				Amount: a.Amount,
			},
		), nil

	case *WithdrawBid:
		if err := requireKeys(a, a.Bidder); err != nil {
			return solana.Instruction{}, err
		}

		bidState, bidVault, err := e.deriveBid(a, a.Bidder)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewWithdrawBidInstruction(
			&escrow.WithdrawBidInstructionAccounts{
				Program:  program,
				Bidder:   a.Bidder,
				Asset:    e.asset,
				BidState: bidState,
				BidVault: bidVault,
			},
		), nil

	case *AcceptBid:
		if err := requireKeys(a, a.Lister, a.Bidder); err != nil {
			return solana.Instruction{}, err
		}

		bidState, bidVault, err := e.deriveBid(a, a.Bidder)
		if err != nil {
			return solana.Instruction{}, err
		}

		listState, listVault, err := e.deriveListing(a, a.Lister)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewAcceptBidInstruction(
			&escrow.AcceptBidInstructionAccounts{
				Program:   program,
				Lister:    a.Lister,
				Asset:     e.asset,
				Bidder:    a.Bidder,
				BidState:  bidState,
				BidVault:  bidVault,
				ListState: listState,
				ListVault: listVault,
			},
		), nil

	case *WithdrawOnSuccess:
		if err := requireKeys(a, a.Bidder, a.Lister); err != nil {
			return solana.Instruction{}, err
		}

		listState, listVault, err := e.deriveListing(a, a.Lister)
		if err != nil {
			return solana.Instruction{}, err
		}

		tokenAccount, err := e.tokenAccountOrDefault(a, a.BidderTokenAccount, a.Bidder)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewWithdrawOnSuccessInstruction(
			&escrow.WithdrawOnSuccessInstructionAccounts{
				Program:            program,
				Bidder:             a.Bidder,
				BidderTokenAccount: tokenAccount,
				Asset:              e.asset,
				Lister:             a.Lister,
				ListState:          listState,
				ListVault:          listVault,
			},
		), nil

	case *Refund:
		if err := requireKeys(a, a.Authority, a.Bidder); err != nil {
			return solana.Instruction{}, err
		}

		platformState, err := e.derive(a, escrow.RolePlatform, escrow.SubkindState)
		if err != nil {
			return solana.Instruction{}, err
		}

		bidState, bidVault, err := e.deriveBid(a, a.Bidder)
		if err != nil {
			return solana.Instruction{}, err
		}

		return escrow.NewRefundInstruction(
			&escrow.RefundInstructionAccounts{
				Program:       program,
				Authority:     a.Authority,
				Asset:         e.asset,
				Bidder:        a.Bidder,
				PlatformState: platformState,
				BidState:      bidState,
				BidVault:      bidVault,
			},
		), nil
	}

	return solana.Instruction{}, newPhaseError(PhaseEncoding, action, errors.Wrapf(ErrUnknownAction, "%T", action))
}

func (e *Encoder) derive(action Action, role escrow.Role, subkind escrow.Subkind, identities ...ed25519.PublicKey) (ed25519.PublicKey, error) {
	addr, err := e.deriver.Derive(role, subkind, identities...)
	if err != nil {
		return nil, newPhaseError(PhaseDerivation, action, err)
	}
	return addr.PublicKey, nil
}

func (e *Encoder) deriveListing(action Action, lister ed25519.PublicKey) (state, vault ed25519.PublicKey, err error) {
	if state, err = e.derive(action, escrow.RoleList, escrow.SubkindState, e.asset, lister); err != nil {
		return nil, nil, err
	}
	if vault, err = e.derive(action, escrow.RoleList, escrow.SubkindVault, e.asset, lister); err != nil {
		return nil, nil, err
	}
	return state, vault, nil
}

func (e *Encoder) deriveBid(action Action, bidder ed25519.PublicKey) (state, vault ed25519.PublicKey, err error) {
	if state, err = e.derive(action, escrow.RoleBid, escrow.SubkindState, e.asset, bidder); err != nil {
		return nil, nil, err
	}
	if vault, err = e.derive(action, escrow.RoleBid, escrow.SubkindVault, e.asset, bidder); err != nil {
		return nil, nil, err
	}
	return state, vault, nil
}

func (e *Encoder) tokenAccountOrDefault(action Action, tokenAccount, owner ed25519.PublicKey) (ed25519.PublicKey, error) {
	if len(tokenAccount) > 0 {
		if len(tokenAccount) != ed25519.PublicKeySize {
			return nil, newPhaseError(PhaseEncoding, action, errors.Wrap(ErrMissingAccount, "invalid token account"))
		}
		return tokenAccount, nil
	}

	ata, err := token.GetAssociatedAccount(owner, e.asset)
	if err != nil {
		return nil, newPhaseError(PhaseDerivation, action, errors.Wrap(err, "failed to derive associated token account"))
	}
	return ata, nil
}

func requireKeys(action Action, keys ...ed25519.PublicKey) error {
	for i, key := range keys {
		if len(key) != ed25519.PublicKeySize {
			return newPhaseError(PhaseEncoding, action, errors.Wrapf(ErrMissingAccount, "account %d", i))
		}
	}
	return nil
}

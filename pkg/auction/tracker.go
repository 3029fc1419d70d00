package auction

import (
	"crypto/ed25519"
	"sync"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

type PlatformStatus uint8

const (
	PlatformUninitialized PlatformStatus = iota
	PlatformInitialized
)

type ListingStatus uint8

const (
	ListingUnlisted ListingStatus = iota
	ListingListed
	ListingSettled
)

type BidStatus uint8

const (
	BidNone BidStatus = iota
	BidActive
	BidAccepted
	BidClosed
)

func (s PlatformStatus) String() string {
	if s == PlatformInitialized {
		return "initialized"
	}
	return "uninitialized"
}

func (s ListingStatus) String() string {
	switch s {
	case ListingListed:
		return "listed"
	case ListingSettled:
		return "settled"
	}
	return "unlisted"
}

func (s BidStatus) String() string {
	switch s {
	case BidActive:
		return "active"
	case BidAccepted:
		return "accepted"
	case BidClosed:
		return "closed"
	}
	return "none"
}

// Tracker is a local mirror of the auction state machine for a single asset.
// It only knows about transitions it has been told about via Apply or the
// Set methods; the escrow program remains the authority.
type Tracker struct {
	asset ed25519.PublicKey

	mu       sync.RWMutex
	platform PlatformStatus
	listings map[string]ListingStatus
	bids     map[string]BidStatus
}

func NewTracker(asset ed25519.PublicKey) *Tracker {
	return &Tracker{
		asset:    asset,
		listings: make(map[string]ListingStatus),
		bids:     make(map[string]BidStatus),
	}
}

// Check returns ErrInvalidActionSequence if the action is not valid from the
// currently tracked state.
func (t *Tracker) Check(action Action) error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, err := t.transition(action)
	return err
}

// Apply records the transition for an action that was confirmed on the ledger.
func (t *Tracker) Apply(action Action) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	apply, err := t.transition(action)
	if err != nil {
		return err
	}
	apply()
	return nil
}

func (t *Tracker) PlatformStatus() PlatformStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.platform
}

func (t *Tracker) ListingStatus(lister ed25519.PublicKey) ListingStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.listings[t.key(lister)]
}

func (t *Tracker) BidStatus(bidder ed25519.PublicKey) BidStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.bids[t.key(bidder)]
}

func (t *Tracker) SetPlatformStatus(status PlatformStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.platform = status
}

func (t *Tracker) SetListingStatus(lister ed25519.PublicKey, status ListingStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setListing(t.key(lister), status)
}

func (t *Tracker) SetBidStatus(bidder ed25519.PublicKey, status BidStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setBid(t.key(bidder), status)
}

// transition validates the action against the current state and returns the
// mutation to perform. Callers must hold mu.
func (t *Tracker) transition(action Action) (func(), error) {
	switch a := action.(type) {
	case *Initialize:
		if t.platform != PlatformUninitialized {
			return nil, t.sequenceError(action, "platform is %s", t.platform)
		}
		return func() { t.platform = PlatformInitialized }, nil

	case *ChangeAuthority:
		if t.platform != PlatformInitialized {
			return nil, t.sequenceError(action, "platform is %s", t.platform)
		}
		return func() {}, nil

	case *List:
		key := t.key(a.Lister)
		if status := t.listings[key]; status != ListingUnlisted {
			return nil, t.sequenceError(action, "listing is %s", status)
		}
		return func() { t.setListing(key, ListingListed) }, nil

	case *Delist:
		key := t.key(a.Lister)
		if status := t.listings[key]; status != ListingListed {
			return nil, t.sequenceError(action, "listing is %s", status)
		}
		return func() { t.setListing(key, ListingUnlisted) }, nil

	case *Bid:
		key := t.key(a.Bidder)
		if status := t.bids[key]; status != BidNone && status != BidClosed {
			return nil, t.sequenceError(action, "bid is %s", status)
		}
		return func() { t.setBid(key, BidActive) }, nil

	case *WithdrawBid:
		key := t.key(a.Bidder)
		if status := t.bids[key]; status != BidActive {
			return nil, t.sequenceError(action, "bid is %s", status)
		}
		return func() { t.setBid(key, BidNone) }, nil

	case *AcceptBid:
		listingKey, bidKey := t.key(a.Lister), t.key(a.Bidder)
		if status := t.listings[listingKey]; status != ListingListed {
			return nil, t.sequenceError(action, "listing is %s", status)
		}
		if status := t.bids[bidKey]; status != BidActive {
			return nil, t.sequenceError(action, "bid is %s", status)
		}
		return func() {
			t.setListing(listingKey, ListingSettled)
			t.setBid(bidKey, BidAccepted)
		}, nil

	case *WithdrawOnSuccess:
		listingKey, bidKey := t.key(a.Lister), t.key(a.Bidder)
		if status := t.listings[listingKey]; status != ListingSettled {
			return nil, t.sequenceError(action, "listing is %s", status)
		}
		if status := t.bids[bidKey]; status != BidAccepted {
			return nil, t.sequenceError(action, "bid is %s", status)
		}
		return func() {
			t.setListing(listingKey, ListingUnlisted)
			t.setBid(bidKey, BidClosed)
		}, nil

	case *Refund:
		key := t.key(a.Bidder)
		if status := t.bids[key]; status != BidActive {
			return nil, t.sequenceError(action, "bid is %s", status)
		}
		return func() { t.setBid(key, BidClosed) }, nil
	}

	return nil, errors.Wrapf(ErrUnknownAction, "%T", action)
}

func (t *Tracker) setListing(key string, status ListingStatus) {
	if status == ListingUnlisted {
		delete(t.listings, key)
		return
	}
	t.listings[key] = status
}

func (t *Tracker) setBid(key string, status BidStatus) {
	if status == BidNone {
		delete(t.bids, key)
		return
	}
	t.bids[key] = status
}

func (t *Tracker) key(participant ed25519.PublicKey) string {
	return base58.Encode(t.asset) + "/" + base58.Encode(participant)
}

func (t *Tracker) sequenceError(action Action, format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidActionSequence, "%s: "+format, append([]interface{}{action.Type()}, args...)...)
}

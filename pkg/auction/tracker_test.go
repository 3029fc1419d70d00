package auction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/escrow-auction/pkg/testutil"
)

func TestTracker_PlatformLifecycle(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)
	asset, payer, authority := keys[0], keys[1], keys[2]

	tracker := NewTracker(asset)

	changeAuthority := &ChangeAuthority{Payer: payer, NewAuthority: authority}
	assert.True(t, errors.Is(tracker.Check(changeAuthority), ErrInvalidActionSequence))

	initialize := &Initialize{Payer: payer, Authority: authority}
	require.NoError(t, tracker.Apply(initialize))
	assert.Equal(t, PlatformInitialized, tracker.PlatformStatus())
	assert.True(t, errors.Is(tracker.Check(initialize), ErrInvalidActionSequence))

	require.NoError(t, tracker.Apply(changeAuthority))
	require.NoError(t, tracker.Apply(changeAuthority))
}

func TestTracker_ListAndDelist(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	asset, lister := keys[0], keys[1]

	tracker := NewTracker(asset)

	delist := &Delist{Lister: lister}
	assert.True(t, errors.Is(tracker.Check(delist), ErrInvalidActionSequence))

	list := &List{Lister: lister, Amount: 1_000_000_000}
	require.NoError(t, tracker.Check(list))
	require.NoError(t, tracker.Apply(list))
	assert.Equal(t, ListingListed, tracker.ListingStatus(lister))

	assert.True(t, errors.Is(tracker.Apply(list), ErrInvalidActionSequence))

	require.NoError(t, tracker.Apply(delist))
	assert.Equal(t, ListingUnlisted, tracker.ListingStatus(lister))
}

func TestTracker_FullAuction(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 4)
	asset, lister, bidder, other := keys[0], keys[1], keys[2], keys[3]

	tracker := NewTracker(asset)

	accept := &AcceptBid{Lister: lister, Bidder: bidder}
	assert.True(t, errors.Is(tracker.Check(accept), ErrInvalidActionSequence))

	require.NoError(t, tracker.Apply(&List{Lister: lister, Amount: 1_000_000_000}))
	assert.True(t, errors.Is(tracker.Check(accept), ErrInvalidActionSequence))

	require.NoError(t, tracker.Apply(&Bid{Bidder: bidder, Amount: 1_000_000_000}))
	require.NoError(t, tracker.Apply(&Bid{Bidder: other, Amount: 1}))
	assert.True(t, errors.Is(tracker.Check(&Bid{Bidder: bidder, Amount: 2}), ErrInvalidActionSequence))

	withdrawOnSuccess := &WithdrawOnSuccess{Bidder: bidder, Lister: lister}
	assert.True(t, errors.Is(tracker.Check(withdrawOnSuccess), ErrInvalidActionSequence))

	require.NoError(t, tracker.Apply(accept))
	assert.Equal(t, ListingSettled, tracker.ListingStatus(lister))
	assert.Equal(t, BidAccepted, tracker.BidStatus(bidder))

	// The accepted bid can no longer be withdrawn or refunded
	assert.True(t, errors.Is(tracker.Check(&WithdrawBid{Bidder: bidder}), ErrInvalidActionSequence))
	assert.True(t, errors.Is(tracker.Check(&Refund{Bidder: bidder}), ErrInvalidActionSequence))
	assert.True(t, errors.Is(tracker.Check(&Delist{Lister: lister}), ErrInvalidActionSequence))

	require.NoError(t, tracker.Apply(withdrawOnSuccess))
	assert.Equal(t, ListingUnlisted, tracker.ListingStatus(lister))
	assert.Equal(t, BidClosed, tracker.BidStatus(bidder))

	// Losing bids are refunded by the authority, after which the bidder may bid again
	require.NoError(t, tracker.Apply(&Refund{Bidder: other}))
	assert.Equal(t, BidClosed, tracker.BidStatus(other))
	require.NoError(t, tracker.Check(&Bid{Bidder: other, Amount: 1}))
}

func TestTracker_WithdrawBid(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 2)
	asset, bidder := keys[0], keys[1]

	tracker := NewTracker(asset)

	withdraw := &WithdrawBid{Bidder: bidder}
	assert.True(t, errors.Is(tracker.Check(withdraw), ErrInvalidActionSequence))

	require.NoError(t, tracker.Apply(&Bid{Bidder: bidder, Amount: 5}))
	require.NoError(t, tracker.Apply(withdraw))
	assert.Equal(t, BidNone, tracker.BidStatus(bidder))
}

func TestTracker_ScopedToAsset(t *testing.T) {
	keys := testutil.GenerateSolanaKeys(t, 3)
	asset, otherAsset, lister := keys[0], keys[1], keys[2]

	tracker := NewTracker(asset)
	other := NewTracker(otherAsset)

	require.NoError(t, tracker.Apply(&List{Lister: lister, Amount: 1}))
	assert.Equal(t, ListingUnlisted, other.ListingStatus(lister))

	other.SetListingStatus(lister, ListingSettled)
	assert.Equal(t, ListingListed, tracker.ListingStatus(lister))
	assert.Equal(t, ListingSettled, other.ListingStatus(lister))
}

func TestTracker_UnknownAction(t *testing.T) {
	tracker := NewTracker(testutil.GenerateSolanaKeys(t, 1)[0])
	assert.True(t, errors.Is(tracker.Check(&unsupportedAction{}), ErrUnknownAction))
}

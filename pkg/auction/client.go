package auction

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	xrate "golang.org/x/time/rate"

	"github.com/code-payments/escrow-auction/pkg/metrics"
	"github.com/code-payments/escrow-auction/pkg/rate"
	"github.com/code-payments/escrow-auction/pkg/solana"
	compute_budget "github.com/code-payments/escrow-auction/pkg/solana/computebudget"
	"github.com/code-payments/escrow-auction/pkg/solana/escrow"
	"github.com/code-payments/escrow-auction/pkg/solana/memo"
	"github.com/code-payments/escrow-auction/pkg/solana/token"
	"github.com/code-payments/escrow-auction/pkg/sync"
)

const (
	metricsStructName = "auction.client"

	submittedEventName = "AuctionInstructionSubmitted"

	submissionLatencyMetricName = "Auction/submission_latency"
	submissionFailureMetricName = "Auction/submission_failures"

	signerLockStripes = 64
)

// Client executes auction actions for a single asset against a deployed
// escrow program.
type Client struct {
	log  *logrus.Entry
	conf *conf

	rpc        solana.Client
	commitment solana.Commitment
	program    ed25519.PublicKey
	asset      ed25519.PublicKey

	deriver   Deriver
	encoder   *Encoder
	submitter Submitter
	tracker   *Tracker

	signerLocks *sync.StripedLock
	limiter     rate.Limiter
}

// NewClient returns a Client configured by configProvider. A nil rpc client
// connects to the configured endpoint, and a nil submitter submits through
// that rpc client.
func NewClient(ctx context.Context, rpc solana.Client, submitter Submitter, configProvider ConfigProvider) (*Client, error) {
	conf := configProvider()

	program, err := conf.programId.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid program id")
	}
	if len(program) != ed25519.PublicKeySize {
		return nil, errors.New("program id is not configured")
	}

	asset, err := conf.asset.GetSafe(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "invalid asset")
	}
	if len(asset) != ed25519.PublicKeySize {
		return nil, errors.New("asset is not configured")
	}

	commitment, err := solana.CommitmentFromString(conf.commitment.Get(ctx))
	if err != nil {
		return nil, err
	}

	if rpc == nil {
		rpc = solana.New(conf.rpcEndpoint.Get(ctx))
	}
	if submitter == nil {
		submitter = NewRPCSubmitter(rpc, commitment, conf.confirmationTimeout.Get(ctx))
	}

	deriver := NewDeriver(program, nil, int(conf.derivationCacheSize.Get(ctx)))

	var limiter rate.Limiter = &rate.NoLimiter{}
	if limit := conf.submissionRateLimit.Get(ctx); limit > 0 {
		limiter = rate.NewLocalRateLimiter(xrate.Limit(limit), int(limit))
	}

	return &Client{
		log:         logrus.StandardLogger().WithField("type", "auction/client"),
		conf:        conf,
		rpc:         rpc,
		commitment:  commitment,
		program:     program,
		asset:       asset,
		deriver:     deriver,
		encoder:     NewEncoder(deriver, asset),
		submitter:   submitter,
		tracker:     NewTracker(asset),
		signerLocks: sync.NewStripedLock(signerLockStripes),
		limiter:     limiter,
	}, nil
}

// Program returns the escrow program identity.
func (c *Client) Program() ed25519.PublicKey {
	return c.program
}

// Asset returns the asset identity actions are executed against.
func (c *Client) Asset() ed25519.PublicKey {
	return c.asset
}

// Tracker returns the local sequence tracker. It is only consulted when
// sequence enforcement is enabled.
func (c *Client) Tracker() *Tracker {
	return c.tracker
}

// Encode returns the escrow instruction for an action.
func (c *Client) Encode(action Action) (solana.Instruction, error) {
	if action == nil {
		return solana.Instruction{}, newPhaseError(PhaseEncoding, nil, ErrUnknownAction)
	}
	return c.encoder.Encode(action)
}

// Build returns every instruction submitted for an action, in order: compute
// budget settings, token account creation, the escrow instruction and a memo.
// Only the escrow instruction is always present.
func (c *Client) Build(ctx context.Context, action Action) ([]solana.Instruction, error) {
	ix, err := c.Encode(action)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction

	if limit := c.conf.computeUnitLimit.Get(ctx); limit > 0 {
		instructions = append(instructions, compute_budget.SetComputeUnitLimit(uint32(limit)))
	}
	if price := c.conf.computeUnitPrice.Get(ctx); price > 0 {
		instructions = append(instructions, compute_budget.SetComputeUnitPrice(price))
	}

	if withdraw, ok := action.(*WithdrawOnSuccess); ok && len(withdraw.BidderTokenAccount) == 0 && c.conf.createTokenAccounts.Get(ctx) {
		create, _, err := token.CreateAssociatedTokenAccountIdempotent(withdraw.Bidder, withdraw.Bidder, c.asset)
		if err != nil {
			return nil, newPhaseError(PhaseDerivation, action, errors.Wrap(err, "failed to derive associated token account"))
		}
		instructions = append(instructions, create)
	}

	instructions = append(instructions, ix)

	if tag := c.conf.memo.Get(ctx); len(tag) > 0 {
		instructions = append(instructions, memo.Instruction(fmt.Sprintf("%s:%s", tag, action.Type())))
	}

	return instructions, nil
}

// Execute encodes an action and submits it, paid for by the action's signer.
// signers must include that account's private key.
//
// Every failure is a *PhaseError. Nothing is submitted unless derivation,
// encoding and, when enabled, sequence checks all succeed. Submission is
// attempted once.
func (c *Client) Execute(ctx context.Context, action Action, signers ...ed25519.PrivateKey) (sig solana.Signature, err error) {
	tracer := metrics.TraceMethodCall(ctx, metricsStructName, "Execute")
	defer func() {
		tracer.OnError(err)
		tracer.End()
	}()

	if action == nil {
		return sig, newPhaseError(PhaseEncoding, nil, ErrUnknownAction)
	}

	log := c.log.WithFields(logrus.Fields{
		"method": "Execute",
		"action": action.Type().String(),
	})
	tracer.AddAttributes(map[string]interface{}{
		"action": action.Type().String(),
		"opcode": int(action.Type()),
	})

	payer := action.Signer()
	if len(payer) != ed25519.PublicKeySize {
		return sig, newPhaseError(PhaseEncoding, action, errors.Wrap(ErrMissingAccount, "signer"))
	}
	log = log.WithField("signer", base58.Encode(payer))

	// Actions by the same signer are serialized so sequence checks observe
	// the outcome of the previous submission.
	lock := c.signerLocks.Get(payer)
	lock.Lock()
	defer lock.Unlock()

	enforceSequence := c.conf.enforceSequence.Get(ctx)
	if enforceSequence {
		if err := c.tracker.Check(action); err != nil {
			log.WithError(err).Info("action rejected by sequence check")
			return sig, newPhaseError(PhaseSequence, action, err)
		}
	}

	instructions, err := c.Build(ctx, action)
	if err != nil {
		log.WithError(err).Warn("failure building instructions")
		return sig, err
	}

	if err := c.limiter.Wait(ctx, base58.Encode(payer)); err != nil {
		log.WithError(err).Warn("submission rate limit not satisfied")
		return sig, newPhaseError(PhaseSubmission, action, errors.Wrap(err, "rate limited"))
	}

	start := time.Now()
	sig, err = c.submitter.Submit(ctx, payer, instructions, signers...)
	if err != nil {
		metrics.RecordCount(ctx, submissionFailureMetricName, 1)

		log = log.WithError(err)
		if programErr, ok := escrow.GetProgramError(err); ok {
			log = log.WithField("program_error", programErr.Error())
		}
		if sig != (solana.Signature{}) {
			log = log.WithField("signature", sig.ToBase58())
		}
		log.Warn("failure submitting transaction")
		return sig, newPhaseError(PhaseSubmission, action, err)
	}

	metrics.RecordDuration(ctx, submissionLatencyMetricName, time.Since(start))

	log = log.WithField("signature", sig.ToBase58())
	log.Debug("transaction confirmed")

	if enforceSequence {
		if err := c.tracker.Apply(action); err != nil {
			log.WithError(err).Warn("confirmed action could not be applied to tracker")
		}
	}

	metrics.RecordEvent(ctx, submittedEventName, map[string]interface{}{
		"action":    action.Type().String(),
		"signer":    base58.Encode(payer),
		"signature": sig.ToBase58(),
	})

	return sig, nil
}

// GetPlatformState returns the platform state recorded on the ledger.
func (c *Client) GetPlatformState(ctx context.Context) (*escrow.PlatformStateAccount, error) {
	addr, err := c.deriver.Derive(escrow.RolePlatform, escrow.SubkindState)
	if err != nil {
		return nil, newPhaseError(PhaseDerivation, nil, err)
	}

	var state escrow.PlatformStateAccount
	if err := c.getProgramAccount(addr.PublicKey, escrow.PlatformStateAccountSize, &state); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			c.tracker.SetPlatformStatus(PlatformUninitialized)
		}
		return nil, err
	}

	if state.IsInitialized {
		c.tracker.SetPlatformStatus(PlatformInitialized)
	}
	return &state, nil
}

// GetListing returns the lister's listing state recorded on the ledger.
func (c *Client) GetListing(ctx context.Context, lister ed25519.PublicKey) (*escrow.ListStateAccount, error) {
	addr, err := c.deriver.Derive(escrow.RoleList, escrow.SubkindState, c.asset, lister)
	if err != nil {
		return nil, newPhaseError(PhaseDerivation, nil, err)
	}

	var state escrow.ListStateAccount
	if err := c.getProgramAccount(addr.PublicKey, escrow.ListStateAccountSize, &state); err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			c.tracker.SetListingStatus(lister, ListingUnlisted)
		}
		return nil, err
	}

	if state.Success {
		c.tracker.SetListingStatus(lister, ListingSettled)
	} else {
		c.tracker.SetListingStatus(lister, ListingListed)
	}
	return &state, nil
}

// GetBid returns the bidder's bid state recorded on the ledger.
func (c *Client) GetBid(ctx context.Context, bidder ed25519.PublicKey) (*escrow.BidStateAccount, error) {
	addr, err := c.deriver.Derive(escrow.RoleBid, escrow.SubkindState, c.asset, bidder)
	if err != nil {
		return nil, newPhaseError(PhaseDerivation, nil, err)
	}

	var state escrow.BidStateAccount
	if err := c.getProgramAccount(addr.PublicKey, escrow.BidStateAccountSize, &state); err != nil {
		if errors.Is(err, ErrAccountNotFound) && c.tracker.BidStatus(bidder) == BidActive {
			c.tracker.SetBidStatus(bidder, BidNone)
		}
		return nil, err
	}

	// Acceptance is only visible on the listing, so it is not downgraded here.
	if c.tracker.BidStatus(bidder) != BidAccepted {
		c.tracker.SetBidStatus(bidder, BidActive)
	}
	return &state, nil
}

type unmarshaler interface {
	Unmarshal([]byte) error
}

func (c *Client) getProgramAccount(address ed25519.PublicKey, size int, out unmarshaler) error {
	info, err := c.rpc.GetAccountInfo(address, c.commitment)
	if err == solana.ErrNoAccountInfo {
		return errors.Wrap(ErrAccountNotFound, base58.Encode(address))
	} else if err != nil {
		return err
	}

	if !bytes.Equal(info.Owner, c.program) {
		return errors.Wrapf(escrow.ErrInvalidProgram, "account %s is owned by %s", base58.Encode(address), base58.Encode(info.Owner))
	}
	if len(info.Data) < size {
		return errors.Wrapf(escrow.ErrInvalidAccountData, "account %s has %d bytes", base58.Encode(address), len(info.Data))
	}

	return out.Unmarshal(info.Data)
}

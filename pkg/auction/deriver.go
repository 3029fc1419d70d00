package auction

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/code-payments/escrow-auction/pkg/cache"
	"github.com/code-payments/escrow-auction/pkg/solana"
	"github.com/code-payments/escrow-auction/pkg/solana/escrow"
)

// Address is a program derived address along with the bump that proves it.
type Address struct {
	PublicKey ed25519.PublicKey
	Bump      uint8
}

// ProgramAddressFinder searches for a valid program address for the seeds.
// It must be deterministic.
type ProgramAddressFinder func(program ed25519.PublicKey, seeds ...[]byte) (ed25519.PublicKey, uint8, error)

// Deriver maps a (role, subkind, identities) tuple to the address the escrow
// program recognizes for it.
type Deriver interface {
	// Derive returns the address for the tuple. Platform addresses take no
	// identities; List and Bid addresses take the asset followed by the
	// participant.
	Derive(role escrow.Role, subkind escrow.Subkind, identities ...ed25519.PublicKey) (Address, error)

	// Program returns the program identity addresses are derived under.
	Program() ed25519.PublicKey
}

type deriver struct {
	program ed25519.PublicKey
	finder  ProgramAddressFinder
	cache   cache.Cache
}

// NewDeriver returns a Deriver for program. A nil finder uses
// solana.FindProgramAddressAndBump. Results are memoized in an LRU holding up
// to cacheBudget addresses; a non-positive budget disables memoization.
func NewDeriver(program ed25519.PublicKey, finder ProgramAddressFinder, cacheBudget int) Deriver {
	if finder == nil {
		finder = solana.FindProgramAddressAndBump
	}

	d := &deriver{
		program: program,
		finder:  finder,
	}
	if cacheBudget > 0 {
		d.cache = cache.NewCache(cacheBudget)
	}
	return d
}

func (d *deriver) Program() ed25519.PublicKey {
	return d.program
}

func (d *deriver) Derive(role escrow.Role, subkind escrow.Subkind, identities ...ed25519.PublicKey) (Address, error) {
	seeds, err := escrow.Seeds(role, subkind, identities...)
	if err != nil {
		return Address{}, errors.Wrapf(ErrInvalidRole, "%v", err)
	}

	key := cacheKey(seeds)
	if d.cache != nil {
		if cached, ok := d.cache.Retrieve(key); ok {
			return cached.(Address), nil
		}
	}

	pub, bump, err := d.finder(d.program, seeds...)
	if err != nil {
		return Address{}, errors.Wrapf(err, "failed to derive %s %s address", role, subkind)
	}

	addr := Address{PublicKey: pub, Bump: bump}
	if d.cache != nil {
		// A concurrent derivation of the same tuple may have won the insert.
		_ = d.cache.Insert(key, addr, 1)
	}
	return addr, nil
}

// Identities are fixed width and the tags trail them, so the joined seeds are
// unique per tuple.
func cacheKey(seeds [][]byte) string {
	return base58.Encode(bytes.Join(seeds, []byte{0}))
}

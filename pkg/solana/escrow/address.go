package escrow

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/escrow-auction/pkg/solana"
)

// Role is the first tag seed of a program derived address.
type Role string

const (
	RolePlatform Role = "Platform"
	RoleList     Role = "List"
	RoleBid      Role = "Bid"
)

// Subkind is the second tag seed of a program derived address.
type Subkind string

const (
	SubkindState Subkind = "State"
	SubkindVault Subkind = "Vault"
)

var ErrInvalidAddressSeeds = errors.New("invalid address seeds")

// Seeds returns the ordered seed tuple for an address:
//
//	[asset, participant, role, subkind]
//
// Platform addresses carry no identities. List and Bid addresses require the
// asset followed by the lister or bidder.
func Seeds(role Role, subkind Subkind, identities ...ed25519.PublicKey) ([][]byte, error) {
	switch subkind {
	case SubkindState, SubkindVault:
	default:
		return nil, errors.Wrapf(ErrInvalidAddressSeeds, "unknown subkind %q", subkind)
	}

	var expected int
	switch role {
	case RolePlatform:
		expected = 0
	case RoleList, RoleBid:
		expected = 2
	default:
		return nil, errors.Wrapf(ErrInvalidAddressSeeds, "unknown role %q", role)
	}

	if len(identities) != expected {
		return nil, errors.Wrapf(ErrInvalidAddressSeeds, "%s address requires %d identities, got %d", role, expected, len(identities))
	}

	seeds := make([][]byte, 0, expected+2)
	for i, identity := range identities {
		if len(identity) != ed25519.PublicKeySize {
			return nil, errors.Wrapf(ErrInvalidAddressSeeds, "identity %d has length %d", i, len(identity))
		}
		seeds = append(seeds, identity)
	}
	seeds = append(seeds, []byte(role), []byte(subkind))

	return seeds, nil
}

// DeriveAddress returns the program derived address and bump for the tuple.
func DeriveAddress(program ed25519.PublicKey, role Role, subkind Subkind, identities ...ed25519.PublicKey) (ed25519.PublicKey, uint8, error) {
	seeds, err := Seeds(role, subkind, identities...)
	if err != nil {
		return nil, 0, err
	}

	return solana.FindProgramAddressAndBump(program, seeds...)
}

type GetPlatformStateAddressArgs struct {
	Program ed25519.PublicKey
}

func GetPlatformStateAddress(args *GetPlatformStateAddressArgs) (ed25519.PublicKey, uint8, error) {
	return DeriveAddress(args.Program, RolePlatform, SubkindState)
}

type GetListAddressArgs struct {
	Program ed25519.PublicKey
	Asset   ed25519.PublicKey
	Lister  ed25519.PublicKey
}

func GetListStateAddress(args *GetListAddressArgs) (ed25519.PublicKey, uint8, error) {
	return DeriveAddress(args.Program, RoleList, SubkindState, args.Asset, args.Lister)
}

func GetListVaultAddress(args *GetListAddressArgs) (ed25519.PublicKey, uint8, error) {
	return DeriveAddress(args.Program, RoleList, SubkindVault, args.Asset, args.Lister)
}

type GetBidAddressArgs struct {
	Program ed25519.PublicKey
	Asset   ed25519.PublicKey
	Bidder  ed25519.PublicKey
}

func GetBidStateAddress(args *GetBidAddressArgs) (ed25519.PublicKey, uint8, error) {
	return DeriveAddress(args.Program, RoleBid, SubkindState, args.Asset, args.Bidder)
}

func GetBidVaultAddress(args *GetBidAddressArgs) (ed25519.PublicKey, uint8, error) {
	return DeriveAddress(args.Program, RoleBid, SubkindVault, args.Asset, args.Bidder)
}

package escrow

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	ListStateAccountSize = (32 + // lister
		32 + // mint
		8 + // amount
		1 + // success
		32) // successful_buyer
)

// ListStateAccount is the escrow record of an open or settled listing.
// SuccessfulBuyer is only meaningful once Success is set by accept bid.
type ListStateAccount struct {
	Lister          ed25519.PublicKey
	Mint            ed25519.PublicKey
	Amount          uint64
	Success         bool
	SuccessfulBuyer ed25519.PublicKey
}

func (obj *ListStateAccount) Unmarshal(data []byte) error {
	if len(data) < ListStateAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	getKey(data, &obj.Lister, &offset)
	getKey(data, &obj.Mint, &offset)
	getStateUint64(data, &obj.Amount, &offset)
	if err := getBool(data, &obj.Success, &offset); err != nil {
		return err
	}
	getKey(data, &obj.SuccessfulBuyer, &offset)

	return nil
}

func (obj *ListStateAccount) Marshal() []byte {
	data := make([]byte, ListStateAccountSize)

	var offset int

	putKey(data, obj.Lister, &offset)
	putKey(data, obj.Mint, &offset)
	putStateUint64(data, obj.Amount, &offset)
	putBool(data, obj.Success, &offset)
	putKey(data, obj.SuccessfulBuyer, &offset)

	return data
}

func (obj *ListStateAccount) String() string {
	return fmt.Sprintf(
		"ListState{lister=%s,mint=%s,amount=%d,success=%t,successful_buyer=%s}",
		base58.Encode(obj.Lister),
		base58.Encode(obj.Mint),
		obj.Amount,
		obj.Success,
		base58.Encode(obj.SuccessfulBuyer),
	)
}

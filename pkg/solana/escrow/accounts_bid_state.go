package escrow

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	BidStateAccountSize = (32 + // bidder
		32 + // mint
		8) // amount
)

type BidStateAccount struct {
	Bidder ed25519.PublicKey
	Mint   ed25519.PublicKey
	Amount uint64
}

func (obj *BidStateAccount) Unmarshal(data []byte) error {
	if len(data) < BidStateAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	getKey(data, &obj.Bidder, &offset)
	getKey(data, &obj.Mint, &offset)
	getStateUint64(data, &obj.Amount, &offset)

	return nil
}

func (obj *BidStateAccount) Marshal() []byte {
	data := make([]byte, BidStateAccountSize)

	var offset int

	putKey(data, obj.Bidder, &offset)
	putKey(data, obj.Mint, &offset)
	putStateUint64(data, obj.Amount, &offset)

	return data
}

func (obj *BidStateAccount) String() string {
	return fmt.Sprintf(
		"BidState{bidder=%s,mint=%s,amount=%d}",
		base58.Encode(obj.Bidder),
		base58.Encode(obj.Mint),
		obj.Amount,
	)
}

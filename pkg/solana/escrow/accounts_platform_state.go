package escrow

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	PlatformStateAccountSize = (1 + // is_initialized
		32 + // authority
		8 + // platform_fee
		8) // nonce
)

type PlatformStateAccount struct {
	IsInitialized bool
	Authority     ed25519.PublicKey
	Fee           uint64
	Nonce         uint64
}

func (obj *PlatformStateAccount) Unmarshal(data []byte) error {
	if len(data) < PlatformStateAccountSize {
		return ErrInvalidAccountData
	}

	var offset int

	if err := getBool(data, &obj.IsInitialized, &offset); err != nil {
		return err
	}
	getKey(data, &obj.Authority, &offset)
	getStateUint64(data, &obj.Fee, &offset)
	getStateUint64(data, &obj.Nonce, &offset)

	return nil
}

func (obj *PlatformStateAccount) Marshal() []byte {
	data := make([]byte, PlatformStateAccountSize)

	var offset int

	putBool(data, obj.IsInitialized, &offset)
	putKey(data, obj.Authority, &offset)
	putStateUint64(data, obj.Fee, &offset)
	putStateUint64(data, obj.Nonce, &offset)

	return data
}

func (obj *PlatformStateAccount) String() string {
	return fmt.Sprintf(
		"PlatformState{is_initialized=%t,authority=%s,fee=%d,nonce=%d}",
		obj.IsInitialized,
		base58.Encode(obj.Authority),
		obj.Fee,
		obj.Nonce,
	)
}

package escrow

import (
	"crypto/ed25519"
	"encoding/binary"
)

func putKey(dst []byte, v ed25519.PublicKey, offset *int) {
	copy(dst[*offset:], v)
	*offset += ed25519.PublicKeySize
}
func getKey(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
}

func putBool(dst []byte, v bool, offset *int) {
	if v {
		dst[*offset] = 1
	} else {
		dst[*offset] = 0
	}
	*offset += 1
}
func getBool(src []byte, dst *bool, offset *int) error {
	switch src[*offset] {
	case 0:
		*dst = false
	case 1:
		*dst = true
	default:
		return ErrInvalidAccountData
	}
	*offset += 1
	return nil
}

// Instruction payload integers are little endian.
func putUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}
func getUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
}

// State account integers are packed big endian by the program.
func putStateUint64(dst []byte, v uint64, offset *int) {
	binary.BigEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}
func getStateUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.BigEndian.Uint64(src[*offset:])
	*offset += 8
}

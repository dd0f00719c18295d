package common

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const shareCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// ShareCodeLength is the number of characters in a generated share code.
const ShareCodeLength = 12

// MakeRandHexString generates a random hexadecimal string from size random
// bytes. The resulting string is twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MakeShareCode draws ShareCodeLength characters uniformly from a 62-symbol
// alphanumeric alphabet using crypto/rand. Uniqueness is not checked here;
// the share_links table enforces it with a unique constraint.
func MakeShareCode() (string, error) {
	max := big.NewInt(int64(len(shareCodeAlphabet)))
	b := make([]byte, ShareCodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = shareCodeAlphabet[n.Int64()]
	}
	return string(b), nil
}

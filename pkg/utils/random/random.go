package random

import (
	"crypto/rand"
	"math/big"
)

// Room codes avoid visually confusable characters (no I/O/0/1).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Code returns a random room code of the given length drawn from the
// unambiguous alphabet.
func Code(length int) string {
	return pickFromSet(codeAlphabet, length)
}

// Alphabet exposes the code character set so callers can validate input.
func Alphabet() string {
	return codeAlphabet
}

func pickFromSet(set string, length int) string {
	if length <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(set)))
	runes := make([]byte, length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			runes[i] = set[0]
			continue
		}
		runes[i] = set[n.Int64()]
	}
	return string(runes)
}

// Package utils holds small helpers shared across the CLI.
package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns n random bytes hex-encoded, giving a 2n-character id.
// Used for throwaway player identities when no chain id is configured.
func RandomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails when the platform source is broken.
		panic(err)
	}
	return hex.EncodeToString(b)
}

package bookings

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	pnrPrefix   = "PNR"
	pnrAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	pnrLength   = 6
)

// PNRGenerator produces candidate PNRs; the ledger checks uniqueness
type PNRGenerator func() (string, error)

// RandomPNR returns "PNR" followed by six random uppercase letters or digits
func RandomPNR() (string, error) {
	b := make([]byte, pnrLength)
	size := big.NewInt(int64(len(pnrAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to generate PNR: %w", err)
		}
		b[i] = pnrAlphabet[n.Int64()]
	}
	return pnrPrefix + string(b), nil
}

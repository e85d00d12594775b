package portfolio

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const idRandLen = 9

var base36Max = new(big.Int).Exp(big.NewInt(36), big.NewInt(idRandLen), nil)

// newID builds a time-and-random composite id such as
// "contact_1735689600123_k3j9x0q2m". Collisions are negligible for this
// workload; the suffix is not a cryptographic guarantee.
func newID(prefix string) string {
	n, err := rand.Int(rand.Reader, base36Max)
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// fall back to the clock so id generation never blocks a request.
		n = big.NewInt(time.Now().UnixNano())
	}
	suffix := n.Text(36)
	for len(suffix) < idRandLen {
		suffix = "0" + suffix
	}
	return fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), suffix[:idRandLen])
}

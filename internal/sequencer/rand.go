package sequencer

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"
)

// Rand is the part of *rand.Rand the phrase generator draws from
type Rand interface {
	Intn(n int) int
}

// NewRand returns a generator seeded from an unpredictable source
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(Seed()))
}

// Seed reads a seed from the kernel's entropy pool,
// falling back to the clock if that is unavailable
func Seed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		logger.Debugf("crypto/rand unavailable, seeding from clock: %v", err)
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

package grid

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"

	"golang.org/x/crypto/blake2b"
)

// FingerprintSize is the length of a grid fingerprint in bytes.
const FingerprintSize = 16

// Fingerprint identifies a grid snapshot by content. Two grids with equal
// layout, costs and threshold have equal fingerprints.
type Fingerprint [FingerprintSize]byte

// String returns the hex encoding.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Fingerprint returns the content hash of g.
func (g *Grid) Fingerprint() Fingerprint {
	return g.sum
}

func fingerprint(l Layout, costs []int32, threshold int32) Fingerprint {
	h, err := blake2b.New(FingerprintSize, nil)
	if err != nil {
		// Only fails for size > 64 or key > 64 bytes.
		panic(err)
	}

	var buf [8]byte
	putU32 := func(v uint32) {
		binary.LittleEndian.PutUint32(buf[:4], v)
		h.Write(buf[:4])
	}
	putF64 := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	putU32(uint32(l.width))
	putU32(uint32(l.height))
	putF64(l.cellW)
	putF64(l.cellH)
	for _, v := range l.transform {
		putF64(v)
	}
	putU32(uint32(threshold))
	for _, c := range costs {
		putU32(uint32(c))
	}

	var out Fingerprint
	copy(out[:], h.Sum(nil))
	return out
}

// ParseFingerprint decodes a hex fingerprint.
func ParseFingerprint(s string) (Fingerprint, error) {
	var f Fingerprint
	b, err := hex.DecodeString(s)
	if err != nil {
		return f, fmt.Errorf("decoding fingerprint %q: %w", s, err)
	}
	if len(b) != FingerprintSize {
		return f, fmt.Errorf("fingerprint %q: want %d bytes, got %d", s, FingerprintSize, len(b))
	}
	copy(f[:], b)
	return f, nil
}

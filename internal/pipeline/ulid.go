package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job ids are ULIDs: 26 Crockford Base32 characters with a millisecond
// timestamp prefix, so ids sort by creation time.

var (
	ulidMu  sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewID returns a fresh ULID.
func NewID() string {
	ulidMu.Lock()
	defer ulidMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	// Timestamp in the first 6 bytes (big-endian 48-bit).
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	// Random in the remaining 10 bytes, with a sequence counter in bytes
	// 6-7 so ids stay unique within one millisecond.
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeBase32(b)
}

// encodeBase32 packs 128 bits into 26 characters, MSB first. The first
// character carries only the top 3 bits.
func encodeBase32(b [16]byte) string {
	var out [26]byte
	bitpos := -2
	for i := range out {
		var v byte
		for j := 0; j < 5; j++ {
			v <<= 1
			idx := bitpos + j
			if idx >= 0 && b[idx/8]&(1<<(7-idx%8)) != 0 {
				v |= 1
			}
		}
		out[i] = crockford[v]
		bitpos += 5
	}
	return string(out[:])
}

package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	googleuuid "github.com/google/uuid"
)

// Generator produces UUIDv7 strings that are unique and strictly increasing
// for the lifetime of the generator, even when many are drawn within the
// same millisecond.
//
// Format (RFC 9562, method 1 "fixed-length dedicated counter"):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111 = 7)
// - 12 bits: sequence counter (rand_a)
// - 2 bits: variant (10)
// - 62 bits: random data
type Generator struct {
	mu     sync.Mutex
	now    func() time.Time
	lastMS uint64
	seq    uint16
}

// NewGenerator returns a generator backed by the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// NewGeneratorWithClock returns a generator reading time from now.
func NewGeneratorWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

const maxSeq = 0x0fff

// Next returns the next identifier.
func (g *Generator) Next() string {
	g.mu.Lock()
	ms := uint64(g.now().UnixMilli())
	switch {
	case ms > g.lastMS:
		g.lastMS = ms
		g.seq = 0
	case g.seq < maxSeq:
		// Same millisecond, or the clock went backwards: stay on lastMS.
		g.seq++
	default:
		// Counter exhausted: borrow the next millisecond.
		g.lastMS++
		g.seq = 0
	}
	ms, seq := g.lastMS, g.seq
	g.mu.Unlock()

	var id [16]byte
	binary.BigEndian.PutUint64(id[0:8], ms<<16)
	if _, err := rand.Read(id[8:]); err != nil {
		// Fallback to standard UUIDv4 if random generation fails
		return googleuuid.New().String()
	}
	binary.BigEndian.PutUint16(id[6:8], 0x7000|seq)

	// Set variant (2 bits) to 10
	id[8] = (id[8] & 0x3f) | 0x80

	return formatUUID(id)
}

var defaultGenerator = NewGenerator()

// New generates a new UUIDv7 from the process-wide generator.
func New() string {
	return defaultGenerator.Next()
}

// formatUUID formats a 16-byte array as a UUID string
func formatUUID(id [16]byte) string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}

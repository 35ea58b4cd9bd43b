package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Source hands out transaction identifiers.
type Source interface {
	New() string
}

// Generator produces monotonic ULIDs. IDs generated within the same
// millisecond stay lexicographically increasing, so sorting transaction IDs
// sorts them by creation time.
type Generator struct {
	mu   sync.Mutex
	mono io.Reader
	now  func() time.Time
}

// NewGenerator returns a Generator seeded from crypto/rand.
func NewGenerator() *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return NewSeeded(seed, time.Now)
}

// NewSeeded returns a Generator with a fixed seed and clock. Tests use it to
// get reproducible IDs.
func NewSeeded(seed int64, now func() time.Time) *Generator {
	return &Generator{
		mono: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:  now,
	}
}

// New returns a ULID string.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.mono)
	if err != nil {
		// Only happens if the clock goes backwards past the monotonic window
		// or entropy is exhausted.
		panic(err)
	}
	return id.String()
}

var std = NewGenerator()

// New returns a ULID from the package-level generator.
func New() string {
	return std.New()
}

// Valid reports whether s parses as a ULID.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

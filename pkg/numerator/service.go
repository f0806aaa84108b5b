// Package numerator generates business numbers of the form
// PREFIX-<unix-millis>-<random base36 suffix>.
package numerator

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"boxfactory/internal/core/numerator"
)

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Service implements numerator.Generator.
type Service struct {
	now func() time.Time

	// rng is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSeed makes the random suffix deterministic.
func WithSeed(seed uint64) Option {
	return func(s *Service) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// New creates a numbering service seeded from the runtime's random source.
func New(opts ...Option) *Service {
	s := &Service{
		now: time.Now,
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next implements numerator.Generator.
func (s *Service) Next(prefix numerator.Prefix) string {
	var b strings.Builder
	b.Grow(len(prefix) + 2 + 13 + numerator.SuffixLength)

	b.WriteString(string(prefix))
	b.WriteByte('-')
	b.WriteString(strconv.FormatInt(s.now().UnixMilli(), 10))
	b.WriteByte('-')

	s.mu.Lock()
	for i := 0; i < numerator.SuffixLength; i++ {
		b.WriteByte(alphabet[s.rng.IntN(len(alphabet))])
	}
	s.mu.Unlock()

	return b.String()
}

var _ numerator.Generator = (*Service)(nil)

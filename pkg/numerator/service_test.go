package numerator

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/numerator"
)

var numberPattern = regexp.MustCompile(`^(INV|PAY|SHIP)-\d{13}-[0-9a-z]{9}$`)

func TestNext_Format(t *testing.T) {
	fixed := time.UnixMilli(1718000000000)
	svc := New(WithClock(func() time.Time { return fixed }), WithSeed(42))

	for _, prefix := range []numerator.Prefix{numerator.PrefixInvoice, numerator.PrefixPayment, numerator.PrefixShipment} {
		t.Run(string(prefix), func(t *testing.T) {
			got := svc.Next(prefix)
			assert.Regexp(t, numberPattern, got)
			assert.Contains(t, got, "-1718000000000-")
		})
	}
}

func TestNext_DistinctWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1718000000000)
	svc := New(WithClock(func() time.Time { return fixed }))

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		n := svc.Next(numerator.PrefixInvoice)
		_, dup := seen[n]
		require.False(t, dup, "duplicate number %s", n)
		seen[n] = struct{}{}
	}
}

func TestNext_ConcurrentUse(t *testing.T) {
	svc := New()

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		out = make(map[string]struct{})
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				n := svc.Next(numerator.PrefixPayment)
				mu.Lock()
				out[n] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, out, 800)
}

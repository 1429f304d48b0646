package domain_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/metacatalog/timefmt/internal/domain"
	"github.com/metacatalog/timefmt/internal/domain/domaintest"
)

func TestRealClock(t *testing.T) {
	before := time.Now()
	got := domain.RealClock{}.Now()

	assert.False(t, got.Before(before))
	assert.False(t, got.After(time.Now()))
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2024, 1, 5, 15, 45, 0, 0, time.UTC)

	t.Run("stays stopped", func(t *testing.T) {
		clock := domaintest.NewFakeClock(start)

		assert.True(t, clock.Now().Equal(start))
		assert.True(t, clock.Now().Equal(start))
	})

	t.Run("advance", func(t *testing.T) {
		clock := domaintest.NewFakeClock(start)

		clock.Advance(36 * time.Hour)
		assert.True(t, clock.Now().Equal(start.Add(36*time.Hour)))

		clock.Advance(-36 * time.Hour)
		assert.True(t, clock.Now().Equal(start))
	})

	t.Run("advance days keeps wall clock across DST", func(t *testing.T) {
		ny, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skip("tzdata unavailable")
		}
		// 2024-03-10 is the spring-forward day in New York.
		clock := domaintest.NewFakeClock(time.Date(2024, 3, 9, 12, 0, 0, 0, ny))

		clock.AdvanceDays(1)

		got := clock.Now()
		assert.Equal(t, 10, got.Day())
		assert.Equal(t, 12, got.Hour())
		assert.Equal(t, 23*time.Hour, got.Sub(time.Date(2024, 3, 9, 12, 0, 0, 0, ny)))
	})

	t.Run("concurrent use", func(t *testing.T) {
		clock := domaintest.NewFakeClock(start)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				clock.Advance(time.Second)
			}()
			go func() {
				defer wg.Done()
				_ = clock.Now()
			}()
		}
		wg.Wait()

		assert.True(t, clock.Now().Equal(start.Add(8*time.Second)))
	})
}

func TestValidMillis(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want bool
	}{
		{"epoch", 0, true},
		{"upper bound", domain.MaxEpochMillis, true},
		{"lower bound", -domain.MaxEpochMillis, true},
		{"above range", domain.MaxEpochMillis + 1, false},
		{"below range", -domain.MaxEpochMillis - 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ValidMillis(tt.ms))
		})
	}
}

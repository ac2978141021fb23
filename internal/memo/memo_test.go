package memo

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrComputeStoresFirstValue(t *testing.T) {
	m := New[string, int]()
	first := m.GetOrCompute("a", func() int { return 1 })
	second := m.GetOrCompute("a", func() int { return 2 })
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, m.Count())
}

func TestGetOrComputeConvergesUnderContention(t *testing.T) {
	m := New[string, int]()
	var calls atomic.Int32
	var wg sync.WaitGroup
	results := make([]int, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = m.GetOrCompute("key", func() int {
				return int(calls.Add(1))
			})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, results[0], got)
	}
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	assert.Equal(t, 1, m.Count())

	again := m.GetOrCompute("key", func() int { return -1 })
	assert.Equal(t, results[0], again)
}

func TestGetOrComputeRunsFactoryOutsideLock(t *testing.T) {
	m := New[string, int]()
	m.GetOrCompute("warm", func() int { return 1 })

	done := make(chan int, 1)
	go func() {
		done <- m.GetOrCompute("cold", func() int {
			inner, ok := m.Get("warm")
			if !ok {
				return -1
			}
			return inner + m.GetOrCompute("nested", func() int { return 10 })
		})
	}()

	select {
	case got := <-done:
		assert.Equal(t, 11, got)
	case <-time.After(5 * time.Second):
		t.Fatal("factory blocked on the memo lock")
	}
	assert.Equal(t, 3, m.Count())
}

func TestGetOrComputeKeepsFirstStoredValueOnRace(t *testing.T) {
	m := New[string, int]()
	release := make(chan struct{})
	slow := make(chan int, 1)
	go func() {
		slow <- m.GetOrCompute("key", func() int {
			<-release
			return 2
		})
	}()

	assert.Equal(t, 1, m.GetOrCompute("key", func() int { return 1 }))
	close(release)
	assert.Equal(t, 1, <-slow)
}

func TestGetOrTryComputeDoesNotStoreFailures(t *testing.T) {
	m := New[string, string]()
	_, err := m.GetOrTryCompute("a", func() (string, error) {
		return "", errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, m.Count())

	value, err := m.GetOrTryCompute("a", func() (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", value)
}

func TestKeyFuncNormalizesKeys(t *testing.T) {
	m := New[string, int](WithKeyFunc[string, int](strings.ToLower))
	m.GetOrCompute("/Scripts/A.js", func() int { return 7 })
	value, ok := m.Get("/scripts/a.js")
	require.True(t, ok)
	assert.Equal(t, 7, value)
}

func TestPutHonorsReplacePredicate(t *testing.T) {
	m := New[string, int]()
	assert.Equal(t, 5, m.Put("a", 5, nil))
	assert.Equal(t, 5, m.Put("a", 3, nil))
	assert.Equal(t, 5, m.Put("a", 4, func(existing int) bool { return existing < 4 }))
	assert.Equal(t, 9, m.Put("a", 9, func(existing int) bool { return existing < 9 }))

	value, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 9, value)
}

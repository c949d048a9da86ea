package snapshot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Load())

	first := &Snapshot{RunID: "a"}
	assert.Nil(t, s.Swap(first))
	assert.Same(t, first, s.Load())

	second := &Snapshot{RunID: "b"}
	assert.Same(t, first, s.Swap(second))
	assert.Equal(t, "b", s.Load().RunID)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := NewStore()
	s.Swap(&Snapshot{RunID: "0"})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				assert.NotNil(t, s.Load())
			}
		}()
	}
	for j := 0; j < 100; j++ {
		s.Swap(&Snapshot{RunID: "next"})
	}
	wg.Wait()
}

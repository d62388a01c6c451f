package ring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(i int) Sample {
	return Sample{Rows: uint8(i), Cols: uint8(^i)}
}

func TestRing_Empty(t *testing.T) {
	var r Ring
	assert.True(t, r.Empty())
	assert.False(t, r.Full())
	assert.Zero(t, r.Available())
	assert.Equal(t, Capacity, r.Free())

	_, ok := r.Get()
	assert.False(t, ok)
	_, ok = r.Peek(0)
	assert.False(t, ok)
}

func TestRing_FIFO(t *testing.T) {
	var r Ring
	for i := 0; i < 5; i++ {
		require.True(t, r.Put(sample(i)))
	}
	assert.Equal(t, 5, r.Available())
	assert.Equal(t, Capacity-5, r.Free())

	for i := 0; i < 5; i++ {
		s, ok := r.Get()
		require.True(t, ok)
		assert.Equal(t, sample(i), s)
	}
	assert.True(t, r.Empty())
}

func TestRing_Overflow(t *testing.T) {
	var r Ring
	accepted := 0
	for i := 0; i < 40; i++ {
		ok := r.Put(sample(i))
		if i < Capacity {
			assert.True(t, ok, "put %d", i)
		} else {
			assert.False(t, ok, "put %d into full ring", i)
		}
		if ok {
			accepted++
		}
	}

	assert.Equal(t, Capacity, accepted)
	assert.Equal(t, Capacity, r.Available())
	assert.Zero(t, r.Free())
	assert.True(t, r.Full())
	assert.Equal(t, uint32(8), r.Dropped())

	for i := 0; i < Capacity; i++ {
		s, ok := r.Get()
		require.True(t, ok)
		assert.Equal(t, sample(i), s, "retained samples keep FIFO order")
	}
	_, ok := r.Get()
	assert.False(t, ok)
}

func TestRing_Wraparound(t *testing.T) {
	var r Ring
	next := 0
	want := 0
	// Walk the indices well past the slot count in uneven steps.
	for round := 0; round < 50; round++ {
		for i := 0; i < 7; i++ {
			require.True(t, r.Put(sample(next)))
			next++
		}
		for i := 0; i < 7; i++ {
			s, ok := r.Get()
			require.True(t, ok)
			assert.Equal(t, sample(want), s)
			want++
		}
	}
	assert.True(t, r.Empty())
	assert.Zero(t, r.Dropped())
}

func TestRing_Peek(t *testing.T) {
	var r Ring
	for i := 0; i < 3; i++ {
		r.Put(sample(i))
	}

	s, ok := r.Peek(2)
	require.True(t, ok)
	assert.Equal(t, sample(2), s)

	_, ok = r.Peek(3)
	assert.False(t, ok)
	_, ok = r.Peek(-1)
	assert.False(t, ok)

	assert.Equal(t, 3, r.Available(), "peek must not consume")
}

func TestRing_DiscardAndReset(t *testing.T) {
	var r Ring
	for i := 0; i < 40; i++ {
		r.Put(sample(i))
	}
	assert.Equal(t, Capacity, r.Discard())
	assert.True(t, r.Empty())
	assert.Equal(t, uint32(8), r.Dropped())

	r.Reset()
	assert.Zero(t, r.Dropped())
	assert.True(t, r.Put(sample(1)))
}

func TestRing_ConcurrentProducerConsumer(t *testing.T) {
	const total = 10000

	var r Ring
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < total; i++ {
			for !r.Put(sample(i)) {
				// Spin until the consumer frees a slot.
			}
		}
	}()

	for want := 0; want < total; {
		s, ok := r.Get()
		if !ok {
			continue
		}
		require.Equal(t, sample(want), s)
		want++
	}
	wg.Wait()

	assert.True(t, r.Empty())
}

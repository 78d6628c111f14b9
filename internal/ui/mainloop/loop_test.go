package mainloop

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunPendingOrderAndNestedPosts(t *testing.T) {
	l := New()

	var order []int
	l.Post(func() {
		order = append(order, 1)
		l.Post(func() { order = append(order, 3) })
	})
	l.Post(func() { order = append(order, 2) })

	assert.Equal(t, 3, l.RunPending())
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Zero(t, l.RunPending())
}

func TestLoopRunStopsOnQuit(t *testing.T) {
	l := New()

	var ran atomic.Int32
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	l.Post(func() { ran.Add(1) })
	l.Post(func() {
		ran.Add(1)
		l.Quit()
	})

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after Quit")
	}
	assert.Equal(t, int32(2), ran.Load())

	l.Post(func() { ran.Add(1) })
	assert.Zero(t, l.RunPending(), "posts after Quit are dropped")
	l.Quit()
}

func TestLoopRunStopsOnContext(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}

func TestLoopWaker(t *testing.T) {
	l := New()
	woken := 0
	l.SetWaker(func() { woken++ })

	l.Post(func() {})
	l.Post(func() {})
	l.Post(nil)

	assert.Equal(t, 2, woken)
	assert.Equal(t, 2, l.RunPending())
}

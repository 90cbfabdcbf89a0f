package view

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubmitStateBlocksDoubleSubmit(t *testing.T) {
	var s SubmitState

	require.True(t, s.Begin())
	require.True(t, s.InFlight())
	require.False(t, s.Begin(), "second submit must be disabled while in flight")

	s.Done()
	require.False(t, s.InFlight())
	require.True(t, s.Begin(), "submits re-enable after the call resolves")
}

func TestSubmitStateSingleWinnerUnderContention(t *testing.T) {
	var s SubmitState
	var wins atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.Begin() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
}

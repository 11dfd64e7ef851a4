package command

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelClampsAtBounds(t *testing.T) {
	g := NewGate()
	require.Equal(t, 0, g.Level())
	require.Equal(t, 0, g.Decrease())

	for i := 0; i < maxLevel+5; i++ {
		g.Increase()
	}
	assert.Equal(t, maxLevel, g.Level())

	for i := 0; i < maxLevel+5; i++ {
		g.Decrease()
	}
	assert.Equal(t, 0, g.Level())
}

func TestWaitIfGatedReturnsImmediatelyAboveThreshold(t *testing.T) {
	g := NewGate()
	g.Increase()
	g.Increase()
	g.Increase() // level 3

	done := make(chan struct{})
	go func() {
		g.WaitIfGated(PhaseAstarFrontierOrUpdatePosterior) // threshold 0, level 3 > 0
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitIfGated blocked despite level above the phase threshold")
	}
}

func TestWaitIfGatedBlocksUntilNotifyAll(t *testing.T) {
	g := NewGate()

	var wg sync.WaitGroup
	wg.Add(1)
	unblocked := make(chan struct{})
	go func() {
		defer wg.Done()
		g.WaitIfGated(PhaseAstarInOut)
		close(unblocked)
	}()

	select {
	case <-unblocked:
		t.Fatal("WaitIfGated returned before any notification")
	case <-time.After(50 * time.Millisecond):
	}

	g.NotifyAll()
	select {
	case <-unblocked:
	case <-time.After(time.Second):
		t.Fatal("WaitIfGated never woke after NotifyAll")
	}
	wg.Wait()
}

func TestRunStdinLoopHandlesAllTokens(t *testing.T) {
	g := NewGate()
	g.Increase()
	require.Equal(t, 1, g.Level())

	input := strings.NewReader("o\no\no\ni\ngarbage\n")
	RunStdinLoop(input, g, zerolog.Nop())

	assert.Equal(t, 2, g.Level())
}

package logging

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFanOutSink_WritesToEverySink(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	fan := NewFanOutSink(a, b)

	require.NoError(t, fan.Write(testEvent("fanout")))
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

func TestFanOutSink_StopsAtFirstError(t *testing.T) {
	ok := &captureSink{}
	failing := &errorSink{err: errors.New("boom")}
	never := &captureSink{}
	fan := NewFanOutSink(ok, failing, never)

	err := fan.Write(testEvent("x"))
	assert.Error(t, err)
	assert.Len(t, ok.events, 1)
	assert.Empty(t, never.events, "a sink after the failing one must never see the event")
}

func TestFanOutSink_CloseCollectsFirstError(t *testing.T) {
	a := &errorSink{err: errors.New("close-a")}
	b := &errorSink{err: errors.New("close-b")}
	fan := NewFanOutSink(a, b)

	err := fan.Close()
	assert.EqualError(t, err, "close-a")
}

// TestFanOutSink_ConcurrentRoundEmission has several goroutines each
// report rounds through the same fanned-out sink at once.
func TestFanOutSink_ConcurrentRoundEmission(t *testing.T) {
	capture := &captureSink{}
	fan := NewFanOutSink(capture)

	const threads = 8
	const roundsPerThread = 25

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func(thread int) {
			defer wg.Done()
			for r := 0; r < roundsPerThread; r++ {
				_ = fan.Write(testEvent("round reported"))
			}
		}(i)
	}
	wg.Wait()

	capture.mu.Lock()
	defer capture.mu.Unlock()
	assert.Len(t, capture.events, threads*roundsPerThread)
}

func TestNewEmitter_ComposesMultipleSinksWithFanOut(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	emitter := NewEmitter(EmitterConfig{RunID: "r", Strategy: "greedy"}, a, b)

	require.NoError(t, emitter.Emit(EventRoundReported, "test", nil, nil))
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

// Copyright (c) 2026 Inkshelf. All rights reserved.

package debounce_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inkshelf/inkshelf/pkg/debounce"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var calls atomic.Int32
	d := debounce.New(30*time.Millisecond, func() { calls.Add(1) })

	// A burst of triggers inside the quiet period must collapse to one call.
	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		500*time.Millisecond, 5*time.Millisecond)

	// No stray second invocation after the quiet period.
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_SeparateBurstsFireSeparately(t *testing.T) {
	var calls atomic.Int32
	d := debounce.New(10*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		500*time.Millisecond, 2*time.Millisecond)

	d.Trigger()
	assert.Eventually(t, func() bool { return calls.Load() == 2 },
		500*time.Millisecond, 2*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var calls atomic.Int32
	d := debounce.New(20*time.Millisecond, func() { calls.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_FlushRunsImmediately(t *testing.T) {
	var calls atomic.Int32
	d := debounce.New(time.Hour, func() { calls.Add(1) })

	d.Trigger()
	d.Flush()
	assert.Equal(t, int32(1), calls.Load())

	// Flush with nothing pending is a no-op.
	d.Flush()
	assert.Equal(t, int32(1), calls.Load())
}

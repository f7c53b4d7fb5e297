// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Oleg Katev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spySyncService counts Sync calls.
type spySyncService struct {
	calls atomic.Int64
	err   error
}

func (s *spySyncService) Sync(_ context.Context) error {
	s.calls.Add(1)
	return s.err
}

func TestNewSyncJob_ReturnsInterface(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy)
	require.NotNil(t, job)

	var _ SyncJob = job
}

func TestSyncJob_Start_CallsSync(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy)
	ctx := context.Background()

	// 10ms interval, ~5 ticks in 55ms
	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Sync should have been called several times, got: %d", got)
}

func TestSyncJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)
	callsLater := spy.calls.Load()

	assert.Equal(t, callsAfterStop, callsLater, "no new calls after Stop")
}

func TestSyncJob_Stop_BeforeStart_NoPanic(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy)

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_DoubleStop_NoPanic(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	job.Stop()

	assert.NotPanics(t, func() { job.Stop() })
}

func TestSyncJob_Start_DefaultInterval(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	// interval <= 0 defaults to 5 minutes, so no calls within 20ms
	job.Start(ctx, 0)
	time.Sleep(20 * time.Millisecond)
	cancel()
	job.Stop()

	assert.Equal(t, int64(0), spy.calls.Load())
}

func TestSyncJob_ContextCancel_StopsJob(t *testing.T) {
	spy := &spySyncService{}
	job := NewSyncJob(spy)
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
		// ok
	case <-time.After(1 * time.Second):
		t.Fatal("Stop hung after context cancellation")
	}
}

func TestSyncJob_SyncError_DoesNotStopJob(t *testing.T) {
	spy := &spySyncService{err: assert.AnError}
	job := NewSyncJob(spy)
	ctx := context.Background()

	job.Start(ctx, 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	got := spy.calls.Load()
	assert.GreaterOrEqual(t, got, int64(3), "Sync keeps being called despite errors: %d", got)
}

package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccgrid/bank"
)

// countingRepo records every SaveBanks call.
type countingRepo struct {
	mu    sync.Mutex
	saves int
	last  map[string]bank.Bank
}

func (r *countingRepo) LoadBanks() (map[string]bank.Bank, error) { return nil, nil }
func (r *countingRepo) PreferredPort() (string, error)           { return "", nil }
func (r *countingRepo) SetPreferredPort(string) error            { return nil }

func (r *countingRepo) SaveBanks(banks map[string]bank.Bank) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.last = banks
	return nil
}

func (r *countingRepo) snapshot() (int, map[string]bank.Bank) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves, r.last
}

func banksWithValue(t *testing.T, v int) map[string]bank.Bank {
	t.Helper()
	b, err := bank.New("XXX").UpdateValue(0, v)
	require.NoError(t, err)
	return map[string]bank.Bank{"XXX": b}
}

func TestDebounceCollapsesBurstIntoOneWrite(t *testing.T) {
	repo := &countingRepo{}
	saver := NewSaver(repo, 30*time.Millisecond)

	for v := 1; v <= 5; v++ {
		saver.Schedule(banksWithValue(t, v))
	}

	assert.Eventually(t, func() bool {
		saves, _ := repo.snapshot()
		return saves == 1
	}, time.Second, 5*time.Millisecond)

	// Quiet period: no further writes.
	time.Sleep(60 * time.Millisecond)
	saves, last := repo.snapshot()
	assert.Equal(t, 1, saves)
	assert.Equal(t, 5, last["XXX"].Params[0].Value, "only the newest snapshot is written")
}

func TestFlushWritesPendingImmediately(t *testing.T) {
	repo := &countingRepo{}
	saver := NewSaver(repo, time.Hour)

	saver.Schedule(banksWithValue(t, 7))
	saver.Flush()

	saves, last := repo.snapshot()
	assert.Equal(t, 1, saves)
	assert.Equal(t, 7, last["XXX"].Params[0].Value)
}

func TestFlushWithoutPendingIsNoop(t *testing.T) {
	repo := &countingRepo{}
	saver := NewSaver(repo, time.Hour)

	saver.Flush()
	saver.Flush()

	saves, _ := repo.snapshot()
	assert.Zero(t, saves)
}

func TestFlushCancelsTimer(t *testing.T) {
	repo := &countingRepo{}
	saver := NewSaver(repo, 20*time.Millisecond)

	saver.Schedule(banksWithValue(t, 3))
	saver.Flush()
	time.Sleep(50 * time.Millisecond)

	saves, _ := repo.snapshot()
	assert.Equal(t, 1, saves, "the cancelled timer must not write again")
}

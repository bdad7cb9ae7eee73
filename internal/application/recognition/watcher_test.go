package recognition

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

type countingReloader struct {
	calls atomic.Int32
}

func (r *countingReloader) Reload(context.Context) (*ptypes.VocabularyStats, error) {
	n := r.calls.Add(1)
	return &ptypes.VocabularyStats{Version: uint64(n)}, nil
}

func TestFileWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.json")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(rules, []byte(`{}`), 0o644))

	r := &countingReloader{}
	w := NewFileWatcher(r, logging.NewNopLogger(), 20*time.Millisecond, rules, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(rules, []byte(`{"carriers": ["pX-1"]}`), 0o644))
	}

	assert.Eventually(t, func() bool { return w.Reloads() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, r.calls.Load(), int32(2), "writes are debounced")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileWatcher_NoPaths(t *testing.T) {
	w := NewFileWatcher(&countingReloader{}, nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, w.Run(ctx))
	assert.Zero(t, w.Reloads())
}

//Personal.AI order the ending

package inbox

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanReadsDocumentsInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"id":"B"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"id":"A"}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.variant"), []byte("standard\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	w := New(dir, "apparel", nil)
	got, err := w.Scan()
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, filepath.Join(dir, "a.json"), got[0].Path)
	assert.Equal(t, "standard", got[0].Variant)
	assert.JSONEq(t, `{"id":"A"}`, string(got[0].Payload))
	assert.Equal(t, "apparel", got[1].Variant)
}

func TestScanMissingDirectory(t *testing.T) {
	w := New(filepath.Join(t.TempDir(), "nope"), "", nil)
	_, err := w.Scan()
	assert.Error(t, err)
}

func TestWatchEmitsWrittenDocument(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(dir, "apparel", nil)
	w.Delay = 20 * time.Millisecond
	events, err := w.Watch(ctx)
	require.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	path := filepath.Join(dir, "po.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"PO-1"}`), 0o644))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			require.True(t, ok, "channel closed early")
			if ev.Path != path || len(ev.Payload) == 0 {
				continue
			}
			require.NoError(t, ev.Err)
			assert.Equal(t, "apparel", ev.Variant)
			assert.JSONEq(t, `{"id":"PO-1"}`, string(ev.Payload))
			return
		case <-deadline:
			t.Fatal("timed out waiting for inbox event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	events, err := New(t.TempDir(), "", nil).Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestDocumentFor(t *testing.T) {
	assert.Equal(t, filepath.Join("in", "po.json"), documentFor(filepath.Join("in", "po.json")))
	assert.Equal(t, filepath.Join("in", "po.json"), documentFor(filepath.Join("in", "po.variant")))
	assert.Equal(t, "", documentFor(filepath.Join("in", "po.txt")))
}

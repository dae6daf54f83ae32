package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// OutboxBridge queues calls on disk for a host that polls for them.
type OutboxBridge struct {
	d   *diskv.Diskv
	mu  sync.Mutex
	seq int
	now func() time.Time
}

// NewOutboxBridge opens (or creates) an outbox under basePath.
func NewOutboxBridge(basePath string) *OutboxBridge {
	return &OutboxBridge{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      1024 * 1024,
		}),
		now: time.Now,
	}
}

// PerformScript implements Bridge.
func (o *OutboxBridge) PerformScript(script, parameter string) error {
	b, err := json.Marshal(Call{Script: script, Parameter: parameter})
	if err != nil {
		return err
	}
	o.mu.Lock()
	o.seq++
	t := o.now().UTC()
	key := fmt.Sprintf("%s-%020d-%06d", t.Format("20060102"), t.UnixNano(), o.seq)
	o.mu.Unlock()

	if err := o.d.Write(key, b); err != nil {
		return fmt.Errorf("dispatch: write outbox %s: %w", key, err)
	}
	return nil
}

// Pending lists queued calls oldest first.
func (o *OutboxBridge) Pending(ctx context.Context) ([]Call, error) {
	keys := o.keys(ctx)
	calls := make([]Call, 0, len(keys))
	for _, k := range keys {
		c, err := o.read(k)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	return calls, nil
}

// Drain hands every queued call to fn oldest first, erasing each one fn
// accepts. It stops at the first error.
func (o *OutboxBridge) Drain(ctx context.Context, fn func(Call) error) (int, error) {
	n := 0
	for _, k := range o.keys(ctx) {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		c, err := o.read(k)
		if err != nil {
			return n, err
		}
		if err := fn(c); err != nil {
			return n, err
		}
		if err := o.d.Erase(k); err != nil {
			return n, fmt.Errorf("dispatch: erase outbox %s: %w", k, err)
		}
		n++
	}
	return n, nil
}

func (o *OutboxBridge) read(key string) (Call, error) {
	var c Call
	val, err := o.d.Read(key)
	if err != nil {
		return c, fmt.Errorf("dispatch: read outbox %s: %w", key, err)
	}
	if err := json.Unmarshal(val, &c); err != nil {
		return c, fmt.Errorf("dispatch: decode outbox %s: %w", key, err)
	}
	return c, nil
}

func (o *OutboxBridge) keys(ctx context.Context) []string {
	keys := []string{}
	for k := range o.d.Keys(ctx.Done()) {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// day-nanos-seq is stored as day/nanos/seq.
func keyToPath(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKey(pk *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pk.Path, "-"), pk.FileName)
}

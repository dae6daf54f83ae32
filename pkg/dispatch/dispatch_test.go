package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func TestEncodeRowChanges(t *testing.T) {
	b, err := Encode(NewRow{ID: "a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"newRow","id":"a"}`, string(b))

	b, err = Encode(DeleteRow{ID: "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"deleteRow","id":"b"}`, string(b))
}

func TestEncodeFieldChange(t *testing.T) {
	b, err := Encode(FieldChange{ID: "a", Field: "description", OldValue: "old", NewValue: "new"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"updateLines","type":"object","id":"a","field":"description",
		"value":"new","newValue":"new","oldValue":"old"}`, string(b))

	on := true
	b, err = Encode(FieldChange{ID: "a", Field: "received", OldValue: "", NewValue: "1", Checked: &on})
	require.NoError(t, err)
	assert.Equal(t, true, decode(t, string(b))["checked"])

	b, err = Encode(FieldChange{ID: "a", Field: "status", OldValue: "APPR", NewValue: "", CheckedItems: []string{}})
	require.NoError(t, err)
	out := decode(t, string(b))
	assert.Equal(t, []any{}, out["checkedItems"])
	assert.NotContains(t, out, "checked")
}

func TestEncodeBatch(t *testing.T) {
	b, err := Encode(Batch{PoID: "po-1", Updates: []Update{
		{ID: "a", Field: "order", Value: "2", OldValue: "1"},
	}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"mode":"updateLines","type":"array","poId":"po-1",
		"updates":[{"id":"a","field":"order","value":"2","oldValue":"1"}]}`, string(b))

	b, err = Encode(Batch{PoID: "po-1"})
	require.NoError(t, err)
	assert.Equal(t, []any{}, decode(t, string(b))["updates"])
}

func TestNotifyDeliversToBridge(t *testing.T) {
	rec := &Recorder{}
	d := New(rec, "", nil)

	d.Notify(NewRow{ID: "x"})

	calls := rec.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, DefaultScript, calls[0].Script)
	assert.Equal(t, "x", decode(t, calls[0].Parameter)["id"])
}

func TestNotifySwallowsFailures(t *testing.T) {
	log, hook := test.NewNullLogger()

	tests := map[string]Bridge{
		"nil bridge": nil,
		"error": BridgeFunc(func(string, string) error {
			return errors.New("host gone")
		}),
		"panic": BridgeFunc(func(string, string) error {
			panic("boom")
		}),
	}
	for name, bridge := range tests {
		t.Run(name, func(t *testing.T) {
			hook.Reset()
			d := New(bridge, "Custom", log)
			assert.NotPanics(t, func() { d.Notify(DeleteRow{ID: "x"}) })
			require.NotNil(t, hook.LastEntry())
			assert.Equal(t, "Custom", hook.LastEntry().Data["script"])
		})
	}
}

func TestLogBridge(t *testing.T) {
	log, hook := test.NewNullLogger()
	d := New(LogBridge{Log: log}, "", log)
	d.Notify(NewRow{ID: "x"})

	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, logrus.InfoLevel, hook.AllEntries()[0].Level)
}

func TestWriterBridge(t *testing.T) {
	var buf bytes.Buffer
	d := New(NewWriterBridge(&buf), "S", nil)
	d.Notify(NewRow{ID: "1"})
	d.Notify(DeleteRow{ID: "1"})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	var c Call
	require.NoError(t, json.Unmarshal(lines[1], &c))
	assert.Equal(t, "S", c.Script)
	assert.JSONEq(t, `{"mode":"deleteRow","id":"1"}`, c.Parameter)
}

func TestOutboxPendingAndDrain(t *testing.T) {
	o := NewOutboxBridge(t.TempDir())
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	o.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	d := New(o, "", nil)
	d.Notify(NewRow{ID: "1"})
	d.Notify(NewRow{ID: "2"})
	d.Notify(DeleteRow{ID: "1"})

	ctx := context.Background()
	pending, err := o.Pending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.JSONEq(t, `{"mode":"newRow","id":"1"}`, pending[0].Parameter)
	assert.JSONEq(t, `{"mode":"deleteRow","id":"1"}`, pending[2].Parameter)

	// A failing consumer keeps the rest queued.
	seen := 0
	n, err := o.Drain(ctx, func(Call) error {
		seen++
		if seen == 2 {
			return errors.New("stop")
		}
		return nil
	})
	require.Error(t, err)
	assert.Equal(t, 1, n)

	pending, err = o.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	n, err = o.Drain(ctx, func(Call) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	pending, err = o.Pending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

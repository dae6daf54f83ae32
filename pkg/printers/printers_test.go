package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"tableflip.dev/polines/pkg/app"
	"tableflip.dev/polines/pkg/dispatch"
)

const doc = `{"id":"PO-5","lineitems":[
 {"id":"a","order":"1","itemNumber":"TS-1","quantity":"2","unitPrice":"$3.00","status":"APPR","received":"1"},
 {"id":"b","order":"2","itemNumber":"CAP-2","quantity":"1","unitPrice":"$10.00"}
]}`

func view(t *testing.T) *app.Editor {
	t.Helper()
	e := app.New()
	require.NoError(t, e.Load(doc, "standard"))
	return e
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTable, "JSON": FormatJSON, "yml": FormatYAML, "table": FormatTable} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, FormatTable)
	require.False(t, p.Color)
	require.NoError(t, p.View(view(t).View()))

	out := buf.String()
	for _, want := range []string{"PO-5 standard", "Item Number", "TS-1", "CAP-2", "APPR", "yes", "$6.00", "2 items · Total $16.00"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "\x1b[")
}

func TestJSONAndYAML(t *testing.T) {
	e := view(t)

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatJSON).View(e.View()))
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "content", decoded["state"])
	assert.Equal(t, "$16.00", decoded["total"])

	buf.Reset()
	require.NoError(t, New(&buf, FormatYAML).View(e.View()))
	decoded = map[string]interface{}{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "standard", decoded["variant"])
	assert.Len(t, decoded["rows"], 2)
}

func TestErrorState(t *testing.T) {
	e := view(t)
	require.Error(t, e.Load("{", ""))

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable).View(e.View()))
	assert.True(t, strings.HasPrefix(buf.String(), "Failed to load line items: "))
}

func TestCalls(t *testing.T) {
	calls := []dispatch.Call{{Script: dispatch.DefaultScript, Parameter: `{"mode":"newRow","id":"a"}`}}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, FormatTable).Calls(calls))
	assert.Contains(t, buf.String(), "Manage: PO Lines")

	buf.Reset()
	require.NoError(t, New(&buf, FormatTable).Calls(nil))
	assert.Contains(t, buf.String(), "outbox empty")

	buf.Reset()
	require.NoError(t, New(&buf, FormatJSON).Calls(calls))
	var back []dispatch.Call
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, calls, back)
}

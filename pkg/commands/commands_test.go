package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tableflip.dev/polines/pkg/dispatch"
)

const poDoc = `{
  "id": "PO-1001",
  "lineitems": [
    {"id": "x1", "order": "2", "itemNumber": "TS-100", "description": "Tee", "department": "Screen Print",
     "quantityXS": 2, "quantityS": "3", "unitPrice": "$5.00"},
    {"id": "x2", "order": "1", "itemNumber": "HD-200", "description": "Hoodie", "department": "Embroidery",
     "quantityM": "1", "unitPrice": "$30.00", "received": true}
  ]
}`

// isolate keeps the developer's own config and environment out of the run.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("POLINES_CONFIG_PATH", "")
	t.Setenv("POLINES_OUTBOX", filepath.Join(home, "outbox"))
	logLevel = ""
	return home
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderJSONFromStdin(t *testing.T) {
	isolate(t)
	out, err := run(t, poDoc, "render", "-o", "json")
	require.NoError(t, err)

	var view struct {
		State      string `json:"state"`
		DocumentID string `json:"documentId"`
		Total      string `json:"total"`
		Rows       []struct {
			ID string `json:"id"`
		} `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "PO-1001", view.DocumentID)
	assert.Equal(t, "$55.00", view.Total)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, "x2", view.Rows[0].ID)
}

func TestRenderTableWithFilters(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "po.json")
	require.NoError(t, os.WriteFile(path, []byte(poDoc), 0o644))

	out, err := run(t, "", "render", path, "--search", "tee")
	require.NoError(t, err)
	assert.Contains(t, out, "TS-100")
	assert.NotContains(t, out, "HD-200")
	assert.Contains(t, out, "1 item")
	assert.Contains(t, out, `search "tee"`)
}

func TestRenderBadDocumentAsJSONError(t *testing.T) {
	isolate(t)
	out, err := run(t, `{"id":"PO-1"}`, "render", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"error"`)
	assert.Contains(t, out, "lineitems")
}

func TestRenderUnknownVariant(t *testing.T) {
	isolate(t)
	_, err := run(t, poDoc, "render", "--variant", "bespoke")
	assert.Error(t, err)
}

func TestExportWorkbook(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "po.xlsx")
	_, err := run(t, poDoc, "export", "--out", out)
	require.NoError(t, err)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Line Items")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestExportNeedsOut(t *testing.T) {
	isolate(t)
	_, err := run(t, poDoc, "export")
	assert.ErrorContains(t, err, "--out")
}

func TestWatchOnce(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(poDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"id":"bad"}`), 0o644))

	out, err := run(t, "", "watch", "--once", "--inbox", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 items · Total $55.00")
	assert.Contains(t, out, "Failed to load line items: ")
}

func TestWatchNeedsInbox(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "watch", "--once")
	assert.ErrorContains(t, err, "no inbox")
}

func TestOutboxListAndDrain(t *testing.T) {
	home := isolate(t)
	box := dispatch.NewOutboxBridge(filepath.Join(home, "outbox"))
	require.NoError(t, box.PerformScript("Manage: PO Lines", `{"mode":"newRow","id":"n1"}`))

	out, err := run(t, "", "outbox", "-o", "json")
	require.NoError(t, err)
	var calls []dispatch.Call
	require.NoError(t, json.Unmarshal([]byte(out), &calls))
	require.Len(t, calls, 1)
	assert.Equal(t, "Manage: PO Lines", calls[0].Script)

	out, err = run(t, "", "outbox", "--drain")
	require.NoError(t, err)
	assert.Contains(t, out, `newRow`)

	out, err = run(t, "", "outbox")
	require.NoError(t, err)
	assert.Contains(t, out, "outbox empty")
}

func TestConfigShowsOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("POLINES_SCRIPT", "Manage: Other")
	out, err := run(t, "", "config", "-o", "json")
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "Manage: Other", cfg["script"])
	assert.Equal(t, "log", cfg["bridge"])
}

func TestUIRejectsStdoutBridge(t *testing.T) {
	isolate(t)
	_, err := run(t, "", "ui", "--bridge", "stdout")
	assert.ErrorContains(t, err, "stdout bridge")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}

package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tableflip.dev/polines/pkg/app"
)

func TestWriteApparel(t *testing.T) {
	e := app.New()
	require.NoError(t, e.Load(`{"id":"PO-3","lineitems":[
		{"id":"a","order":"2","itemNumber":"TS","quantityXS":"2","quantityS":"3","unitPrice":"$5.00","received":"1"},
		{"id":"b","order":"1","itemNumber":"HD","quantityM":"1","unitPrice":"$30.00","status":"APPR"}
	]}`, "apparel"))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, e.View()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Order", rows[0][0])
	assert.Equal(t, "Item Number", rows[0][4])
	assert.Equal(t, "HD", rows[1][4])
	assert.Equal(t, "APPR", rows[1][1])
	assert.Equal(t, "TS", rows[2][4])
	assert.Equal(t, "Yes", rows[2][2])

	last := rows[3]
	assert.Equal(t, "Total", last[len(last)-2])
	cell, err := excelize.CoordinatesToCellName(len(last), 4)
	require.NoError(t, err)
	total, err := f.GetCellValue(SheetName, cell, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "55", total)
}

func TestWriteEmptyView(t *testing.T) {
	e := app.New()
	require.NoError(t, e.Load(`{"id":"PO-0","lineitems":[]}`, "standard"))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, e.View()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

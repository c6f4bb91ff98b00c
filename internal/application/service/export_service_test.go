package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func TestWriteXLSX_RefusesDemoData(t *testing.T) {
	svc := NewExportService(zap.NewNop())
	demo := demoSaleDetail()
	view := &SaleDetailView{Detail: demo, Groups: GroupItems(demo.Items), Demo: true}

	var buf bytes.Buffer
	err := svc.WriteXLSX(view, &buf)
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestWriteXLSX_WritesGroupedWorkbook(t *testing.T) {
	svc := NewExportService(zap.NewNop())
	detail := demoSaleDetail()
	view := &SaleDetailView{Detail: detail, Groups: GroupItems(detail.Items)}

	var buf bytes.Buffer
	require.NoError(t, svc.WriteXLSX(view, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sale")
	require.NoError(t, err)

	var cells []string
	for _, row := range rows {
		cells = append(cells, row...)
	}

	assert.Contains(t, cells, "John Doe")
	assert.Contains(t, cells, "Sofa & Curtains")
	assert.Contains(t, cells, "Living Room")
	assert.Contains(t, cells, "Modern Sofa Set")
	assert.Contains(t, cells, "Grand Total")
	assert.Contains(t, cells, "42775")
}

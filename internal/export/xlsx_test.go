package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/bharat-properties/intake-cli/internal/model"
)

func TestWriteXLSX(t *testing.T) {
	price := "1.5 Cr"
	size := "300 Gaz"
	remarks := "urgent sale"

	deals := []model.StoredDeal{
		{
			ID:     "d1",
			Source: "paste",
			Deal: model.ParsedDeal{
				Intent:          model.IntentSeller,
				Category:        model.CategoryResidential,
				Type:            "Plot",
				Location:        "Sector 82",
				Specs:           model.Specs{Size: &size, Price: &price},
				Remarks:         &remarks,
				Contacts:        []model.Contact{{Mobile: "9876543210"}, {Mobile: "9988776655"}},
				Tags:            []string{"URGENT"},
				Raw:             "Sector 82 Plot No 245",
				Confidence:      model.ConfidenceHigh,
				ConfidenceScore: 100,
			},
		},
		{
			ID:     "d2",
			Source: "archive",
			Deal: model.ParsedDeal{
				Intent:          model.IntentBuyer,
				Category:        model.CategoryCommercial,
				Type:            "Showroom",
				Location:        "Unspecified",
				Raw:             "need showroom",
				Confidence:      model.ConfidenceLow,
				ConfidenceScore: 10,
			},
		},
	}

	path := filepath.Join(t.TempDir(), "deals.xlsx")
	require.NoError(t, WriteXLSX(path, deals))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Deals", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "Intent", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Raw", sheet.Rows[0].Cells[13].Value)

	first := sheet.Rows[1]
	assert.Equal(t, "SELLER", first.Cells[0].Value)
	assert.Equal(t, "Residential", first.Cells[1].Value)
	assert.Equal(t, "Plot", first.Cells[2].Value)
	assert.Equal(t, "Sector 82", first.Cells[3].Value)
	assert.Equal(t, "300 Gaz", first.Cells[5].Value)
	assert.Equal(t, "1.5 Cr", first.Cells[6].Value)
	assert.Equal(t, "9876543210, 9988776655", first.Cells[7].Value)
	assert.Equal(t, "URGENT", first.Cells[8].Value)
	score, err := first.Cells[9].Int()
	require.NoError(t, err)
	assert.Equal(t, 100, score)
	assert.Equal(t, "High", first.Cells[10].Value)
	assert.Equal(t, "urgent sale", first.Cells[11].Value)
	assert.Equal(t, "paste", first.Cells[12].Value)

	second := sheet.Rows[2]
	assert.Equal(t, "BUYER", second.Cells[0].Value)
	// Optional fields come out empty, not "nil".
	assert.Equal(t, "", second.Cells[4].Value)
	assert.Equal(t, "", second.Cells[11].Value)
}

func TestWriteXLSX_NoDeals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, WriteXLSX(path, nil))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	assert.Len(t, file.Sheets[0].Rows, 1)
}

func TestWriteXLSX_BadPath(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "missing-dir", "deals.xlsx"), nil)
	assert.Error(t, err)
}

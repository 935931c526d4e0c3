// Package export writes parsed deals to shareable spreadsheet files.
package export

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/bharat-properties/intake-cli/internal/model"
)

var xlsxHeader = []string{
	"Intent", "Category", "Type", "Location", "Unit", "Size", "Price",
	"Contacts", "Tags", "Score", "Confidence", "Remarks", "Source", "Raw",
}

// WriteXLSX writes the deals to an XLSX workbook at the given path.
func WriteXLSX(path string, deals []model.StoredDeal) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Deals")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range xlsxHeader {
		header.AddCell().Value = h
	}

	for _, sd := range deals {
		row := sheet.AddRow()
		deal := sd.Deal

		row.AddCell().Value = string(deal.Intent)
		row.AddCell().Value = string(deal.Category)
		row.AddCell().Value = deal.Type
		row.AddCell().Value = deal.Location
		row.AddCell().Value = deref(deal.Address.UnitNumber)
		row.AddCell().Value = deref(deal.Specs.Size)
		row.AddCell().Value = deref(deal.Specs.Price)
		row.AddCell().Value = joinContacts(deal.Contacts)
		row.AddCell().Value = strings.Join(deal.Tags, ", ")
		row.AddCell().SetInt(deal.ConfidenceScore)
		row.AddCell().Value = string(deal.Confidence)
		row.AddCell().Value = deref(deal.Remarks)
		row.AddCell().Value = sd.Source
		row.AddCell().Value = deal.Raw
	}

	return eris.Wrapf(file.Save(path), "export: save %s", path)
}

func joinContacts(contacts []model.Contact) string {
	mobiles := make([]string, 0, len(contacts))
	for _, c := range contacts {
		mobiles = append(mobiles, c.Mobile)
	}
	return strings.Join(mobiles, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

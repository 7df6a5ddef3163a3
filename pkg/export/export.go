// Package export writes site soil data as an XLSX workbook.
package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"soilsync/entities"
)

const truncatedSuffix = "[TRUNCATED]"

// SiteSoilData is one site with its soil data, which may be nil.
type SiteSoilData struct {
	Site     entities.Site
	SoilData *entities.SoilData
}

var header = []string{
	"Site ID", "Site name", "Latitude", "Longitude", "Depth preset",
	"Depth start (cm)", "Depth end (cm)", "Texture", "Clay (%)", "Rock fragment volume",
	"Color hue", "Color value", "Color chroma", "Structure", "pH",
	"Conductivity", "Conductivity unit", "Soil organic carbon (%)", "Soil organic matter (%)",
	"Sodium absorption ratio", "Carbonates",
}

// WriteSites writes one row per (site, depth measurement). A site without
// measurements still gets one row carrying its site columns.
func WriteSites(w io.Writer, sheet string, sites []SiteSoilData) error {
	f := excelize.NewFile()
	defer f.Close()
	if sheet == "" {
		sheet = "Soil Data"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	rows := [][]any{toAny(header)}
	for _, s := range sites {
		rows = append(rows, siteRows(s)...)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func siteRows(s SiteSoilData) [][]any {
	head := []any{
		cellText(s.Site.ID), cellText(s.Site.Name), s.Site.Latitude, s.Site.Longitude,
	}
	if s.SoilData == nil {
		return [][]any{append(head, "")}
	}
	head = append(head, cellText(s.SoilData.DepthIntervalPreset))
	if len(s.SoilData.DepthDependentData) == 0 {
		return [][]any{head}
	}
	out := make([][]any, 0, len(s.SoilData.DepthDependentData))
	for _, d := range s.SoilData.DepthDependentData {
		row := append(append([]any{}, head...),
			d.DepthIntervalStart, d.DepthIntervalEnd,
			str(d.Texture), intCell(d.ClayPercent), str(d.RockFragmentVolume),
			num(d.ColorHue), num(d.ColorValue), num(d.ColorChroma), str(d.Structure), num(d.Ph),
			num(d.Conductivity), str(d.ConductivityUnit), num(d.SoilOrganicCarbon), num(d.SoilOrganicMatter),
			num(d.SodiumAbsorptionRatio), str(d.Carbonates),
		)
		out = append(out, row)
	}
	return out
}

// cellText cuts text that would exceed the XLSX cell limit, marking the cut.
func cellText(s string) string {
	if utf8.RuneCountInString(s) <= excelize.TotalCellChars {
		return s
	}
	keep := excelize.TotalCellChars - utf8.RuneCountInString(truncatedSuffix)
	runes := []rune(s)
	return string(runes[:keep]) + truncatedSuffix
}

func str(p *string) any {
	if p == nil {
		return nil
	}
	return cellText(*p)
}

func num(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func intCell(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

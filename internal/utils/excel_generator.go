package utils

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"skypass/internal/models"
)

const (
	passSheet = "Passes"
	infoSheet = "Info"
)

var passHeaders = []string{
	"#", "Start", "End", "Max Elevation (°)", "Duration (min)", "Azimuth Start (°)", "Azimuth End (°)",
}

// PassExport is what goes into a workbook: the passes currently on screen
// and the inputs that produced them.
type PassExport struct {
	SatelliteID string
	Coordinate  models.Coordinate
	Passes      []models.PassRecord
	Location    *time.Location
	GeneratedAt time.Time
}

// WritePassWorkbook renders the export as XLSX into w. Times are written in
// the export's location, the same way they are displayed.
func WritePassWorkbook(w io.Writer, export PassExport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", passSheet); err != nil {
		return err
	}

	for i, header := range passHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(passSheet, cell, header)
	}

	for i, p := range export.Passes {
		row := []interface{}{
			i + 1,
			models.FormatLocalTime(p.StartTime, export.Location),
			models.FormatLocalTime(p.EndTime, export.Location),
			int(math.Round(p.MaxElevation)),
			int(math.Round(p.DurationSeconds / 60)),
			p.AzimuthStart,
			p.AzimuthEnd,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(passSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	for i := 1; i <= len(passHeaders); i++ {
		colName, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(passSheet, colName, colName, 22)
	}

	if len(export.Passes) > 0 {
		// High passes are the ones worth going outside for.
		last := len(export.Passes) + 1
		highPass := []excelize.ConditionalFormatOptions{
			{
				Type:     "cell",
				Criteria: ">=",
				Value:    "60",
				Format:   conditionalStyle(f, "#CCFFCC"),
			},
		}
		if err := f.SetConditionalFormat(passSheet, fmt.Sprintf("D2:D%d", last), highPass); err != nil {
			return err
		}
	}

	if len(export.Passes) > 1 {
		addElevationChart(f, len(export.Passes))
	}

	if err := writeInfoSheet(f, export); err != nil {
		return err
	}

	return f.Write(w)
}

func addElevationChart(f *excelize.File, n int) {
	last := n + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       "Max Elevation",
				Categories: fmt.Sprintf("%s!$B$2:$B$%d", passSheet, last),
				Values:     fmt.Sprintf("%s!$D$2:$D$%d", passSheet, last),
			},
		},
		Title: []excelize.RichTextRun{
			{Text: "Max Elevation per Pass"},
		},
		YAxis: excelize.ChartAxis{
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{
			Width:  600,
			Height: 400,
		},
	}

	f.AddChart(passSheet, "I2", chart)
}

func writeInfoSheet(f *excelize.File, export PassExport) error {
	if _, err := f.NewSheet(infoSheet); err != nil {
		return err
	}

	generated := export.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	rows := [][]interface{}{
		{"Satellite", export.SatelliteID},
		{"Latitude", export.Coordinate.Latitude},
		{"Longitude", export.Coordinate.Longitude},
		{"Total Passes", len(export.Passes)},
		{"Report Generated", models.FormatLocalTime(generated, export.Location)},
	}
	if len(export.Passes) > 0 {
		rows = append(rows, []interface{}{"Highest Elevation", models.FormatDegrees(maxElevation(export.Passes))})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(infoSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func maxElevation(passes []models.PassRecord) float64 {
	max := passes[0].MaxElevation
	for _, p := range passes {
		if p.MaxElevation > max {
			max = p.MaxElevation
		}
	}
	return max
}

func conditionalStyle(f *excelize.File, color string) *int {
	style, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{color},
			Pattern: 1,
		},
	})
	if err != nil {
		return nil
	}
	return &style
}

package utils

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"skypass/internal/models"
)

func TestWritePassWorkbook(t *testing.T) {
	start := time.Date(2025, 2, 14, 18, 0, 0, 0, time.UTC)
	export := PassExport{
		SatelliteID: "25544",
		Coordinate:  models.Coordinate{Latitude: "37.7749", Longitude: "-122.4194"},
		Passes: []models.PassRecord{
			{StartTime: start, EndTime: start.Add(7 * time.Minute), MaxElevation: 77, DurationSeconds: 420, AzimuthStart: 310, AzimuthEnd: 120},
			{StartTime: start.Add(95 * time.Minute), EndTime: start.Add(100 * time.Minute), MaxElevation: 23.4, DurationSeconds: 300, AzimuthStart: 250, AzimuthEnd: 170},
		},
		Location:    time.UTC,
		GeneratedAt: start,
	}

	var buf bytes.Buffer
	if err := WritePassWorkbook(&buf, export); err != nil {
		t.Fatalf("WritePassWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(passSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}

	tests := []struct {
		cell string
		want string
	}{
		{"B2", "Feb 14, 2025 6:00:00 PM UTC"},
		{"D2", "77"},
		{"E2", "7"},
		{"D3", "23"},
		{"E3", "5"},
	}
	for _, tt := range tests {
		got, err := f.GetCellValue(passSheet, tt.cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", tt.cell, err)
		}
		if got != tt.want {
			t.Errorf("%s = %q, want %q", tt.cell, got, tt.want)
		}
	}

	sat, _ := f.GetCellValue(infoSheet, "B1")
	if sat != "25544" {
		t.Errorf("satellite = %q, want 25544", sat)
	}
	highest, _ := f.GetCellValue(infoSheet, "B6")
	if highest != "77°" {
		t.Errorf("highest elevation = %q, want 77°", highest)
	}
}

func TestWritePassWorkbookEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePassWorkbook(&buf, PassExport{SatelliteID: "25544", Location: time.UTC}); err != nil {
		t.Fatalf("WritePassWorkbook: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(passSheet)
	if len(rows) != 1 {
		t.Errorf("got %d rows, want only the header", len(rows))
	}
}

package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/obstacle/config"
	"p9e.in/obstacle/models"
)

var exportHeader = []interface{}{
	"ID", "Name", "Type", "Height (m)", "Description",
	"Latitude", "Longitude", "Line length (m)", "Line vertices",
	"Organization", "Status", "Submitted by", "Submitted date",
	"Approved by", "Declined by", "Decline reason",
}

func exportRow(o *models.ObstacleReport) []interface{} {
	var lat, lng, length interface{}
	if o.Latitude != nil {
		lat = *o.Latitude
	}
	if o.Longitude != nil {
		lng = *o.Longitude
	}
	if l := o.LineLengthMeters(); l != nil {
		length = *l
	}
	var reason string
	if o.DeclineReason != nil {
		reason = *o.DeclineReason
	}
	return []interface{}{
		o.ID, o.Name, o.Type, o.HeightMeters, o.Description,
		lat, lng, length, o.LineVertexCount(),
		o.Organization, string(o.Status), o.SubmittedBy,
		o.SubmittedDate.Format(time.RFC3339),
		o.ApprovedBy, o.DeclinedBy, reason,
	}
}

func loadExportReports(r *http.Request) ([]models.ObstacleReport, error) {
	filter, err := models.ParseObstacleFilter(r)
	if err != nil {
		return nil, err
	}
	var reports []models.ObstacleReport
	if err := config.DB.Scopes(filter.Scope).Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// ExportObstaclesExcel downloads the filtered obstacle list as an xlsx file.
// Takes the same query parameters as the list endpoint.
func ExportObstaclesExcel(w http.ResponseWriter, r *http.Request) {
	reports, err := loadExportReports(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Obstacles"
	f.SetSheetName("Sheet1", sheet)
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	for i := range reports {
		row := exportRow(&reports[i])
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			http.Error(w, "failed to generate Excel file", http.StatusInternalServerError)
			return
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "failed to write Excel file", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("obstacles_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}

// ExportObstaclesCSV is the CSV variant of the Excel export.
func ExportObstaclesCSV(w http.ResponseWriter, r *http.Request) {
	reports, err := loadExportReports(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filename := fmt.Sprintf("obstacles_%s.csv", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	cw := csv.NewWriter(w)
	header := make([]string, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = fmt.Sprint(h)
	}
	cw.Write(header)

	for i := range reports {
		row := exportRow(&reports[i])
		record := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			record[j] = fmt.Sprint(v)
		}
		cw.Write(record)
	}
	cw.Flush()
}

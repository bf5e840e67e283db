package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"p9e.in/obstacle/config"
	"p9e.in/obstacle/middleware"
	"p9e.in/obstacle/models"
)

// validationResp echoes the rejected values back with the field-tagged
// failures so the client can re-render the form unchanged.
type validationResp struct {
	Errors    []models.ValidationFailure `json:"errors"`
	Submitted *models.ObstacleReport     `json:"submitted"`
}

func respondValidation(w http.ResponseWriter, failures []models.ValidationFailure, submitted *models.ObstacleReport) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(validationResp{Errors: failures, Submitted: submitted})
}

// saveExisting writes every field of item to the row with the given id.
// Unlike gorm's Save, it can never insert: Save falls back to Create when the
// update touches zero rows, which would resurrect a row deleted after the
// handler loaded it. Returns false when the row no longer exists.
func saveExisting(id uint, item *models.ObstacleReport) (bool, error) {
	res := config.DB.Model(&models.ObstacleReport{}).
		Where("id = ?", id).
		Select("*").Omit("id").
		Updates(item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func obstacleID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// ListObstacles returns the filtered obstacle collection, newest first.
func ListObstacles(w http.ResponseWriter, r *http.Request) {
	filter, err := models.ParseObstacleFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var reports []models.ObstacleReport
	if err := config.DB.Scopes(filter.Scope).Find(&reports).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reports)
}

// CreateObstacle submits a new report. Whatever status or audit fields the
// client sent are discarded; a submission always enters as Pending with the
// caller stamped as submitter.
func CreateObstacle(w http.ResponseWriter, r *http.Request) {
	var item models.ObstacleReport
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = 0

	if failures := item.Validate(); len(failures) > 0 {
		respondValidation(w, failures, &item)
		return
	}

	user := middleware.GetUser(r)
	item.StampSubmission(user.Name, time.Now().UTC())
	item.Organization = user.Organization

	if err := config.DB.Create(&item).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

func GetObstacle(w http.ResponseWriter, r *http.Request) {
	id, ok := obstacleID(r)
	if !ok {
		http.Error(w, "invalid obstacle id", http.StatusBadRequest)
		return
	}

	var item models.ObstacleReport
	if err := config.DB.First(&item, id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

type editObstacleReq struct {
	Name         *string         `json:"name"`
	Type         *string         `json:"type"`
	HeightMeters *float64        `json:"heightMeters"`
	Description  *string         `json:"description"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	LineGeoJSON  *string         `json:"lineGeoJson"`
	Photos       *datatypes.JSON `json:"photos"`
}

// UpdateObstacle edits the display fields of an existing report. Status and
// the approval/decline trail stay as they are; only the modification stamp
// moves.
func UpdateObstacle(w http.ResponseWriter, r *http.Request) {
	id, ok := obstacleID(r)
	if !ok {
		http.Error(w, "invalid obstacle id", http.StatusBadRequest)
		return
	}

	var item models.ObstacleReport
	if err := config.DB.First(&item, id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	var req editObstacleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Type != nil {
		item.Type = *req.Type
	}
	if req.HeightMeters != nil {
		item.HeightMeters = *req.HeightMeters
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Latitude != nil {
		item.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		item.Longitude = req.Longitude
	}
	if req.LineGeoJSON != nil {
		item.LineGeoJSON = *req.LineGeoJSON
	}
	if req.Photos != nil {
		item.Photos = *req.Photos
	}

	if failures := item.Validate(); len(failures) > 0 {
		respondValidation(w, failures, &item)
		return
	}

	user := middleware.GetUser(r)
	item.StampModified(user.Name, time.Now().UTC())

	found, err := saveExisting(id, &item)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		// Deleted between load and write.
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// DeleteObstacle hard-removes a report.
func DeleteObstacle(w http.ResponseWriter, r *http.Request) {
	id, ok := obstacleID(r)
	if !ok {
		http.Error(w, "invalid obstacle id", http.StatusBadRequest)
		return
	}

	result := config.DB.Delete(&models.ObstacleReport{}, id)
	if result.Error != nil {
		http.Error(w, "failed to delete record", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ApproveObstacle moves a report to Approved and stamps the reviewer.
func ApproveObstacle(w http.ResponseWriter, r *http.Request) {
	id, ok := obstacleID(r)
	if !ok {
		http.Error(w, "invalid obstacle id", http.StatusBadRequest)
		return
	}

	var item models.ObstacleReport
	if err := config.DB.First(&item, id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	user := middleware.GetUser(r)
	item.Approve(user.Name, time.Now().UTC())

	found, err := saveExisting(id, &item)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

type declineReq struct {
	Reason *string `json:"reason"`
}

// DeclineObstacle moves a report to Declined with an optional reason.
func DeclineObstacle(w http.ResponseWriter, r *http.Request) {
	id, ok := obstacleID(r)
	if !ok {
		http.Error(w, "invalid obstacle id", http.StatusBadRequest)
		return
	}

	var req declineReq
	if r.Body != nil {
		// A missing body means declining without a reason.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	var item models.ObstacleReport
	if err := config.DB.First(&item, id).Error; err != nil {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	user := middleware.GetUser(r)
	item.Decline(user.Name, req.Reason, time.Now().UTC())

	found, err := saveExisting(id, &item)
	if err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// ListObstacleTypes serves the static type lookup table.
func ListObstacleTypes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.ObstacleTypes)
}

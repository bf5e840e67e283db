package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"p9e.in/obstacle/config"
	"p9e.in/obstacle/models"
)

// mapObstacle is the JSON contract the map front-end consumes.
type mapObstacle struct {
	ID             uint                  `json:"id"`
	ObstacleName   string                `json:"obstacleName"`
	ObstacleHeight float64               `json:"obstacleHeight"`
	Latitude       *float64              `json:"latitude"`
	Longitude      *float64              `json:"longitude"`
	LineGeoJSON    string                `json:"lineGeoJson,omitempty"`
	Status         models.ObstacleStatus `json:"status"`
	ApprovedBy     string                `json:"approvedBy,omitempty"`
}

func toMapObstacle(o *models.ObstacleReport, withApprover bool) mapObstacle {
	m := mapObstacle{
		ID:             o.ID,
		ObstacleName:   o.Name,
		ObstacleHeight: o.HeightMeters,
		Latitude:       o.Latitude,
		Longitude:      o.Longitude,
		LineGeoJSON:    o.LineGeoJSON,
		Status:         o.Status,
	}
	if withApprover {
		m.ApprovedBy = o.ApprovedBy
	}
	return m
}

// MapObstacles serves approved and pending obstacles for the pilot map.
// Declined reports never reach this surface.
func MapObstacles(w http.ResponseWriter, r *http.Request) {
	var reports []models.ObstacleReport
	if err := config.DB.
		Where("status IN ?", []models.ObstacleStatus{models.StatusApproved, models.StatusPending}).
		Order("submitted_date DESC").
		Find(&reports).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]mapObstacle, 0, len(reports))
	for i := range reports {
		out = append(out, toMapObstacle(&reports[i], false))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// ApprovedObstacles serves only approved obstacles and includes the approver.
func ApprovedObstacles(w http.ResponseWriter, r *http.Request) {
	var reports []models.ObstacleReport
	if err := config.DB.
		Where("status = ?", models.StatusApproved).
		Order("submitted_date DESC").
		Find(&reports).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]mapObstacle, 0, len(reports))
	for i := range reports {
		out = append(out, toMapObstacle(&reports[i], true))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// MapObstaclesGeoJSON serves the same approved+pending set as a strict
// GeoJSON FeatureCollection: LineString geometry when the report carries a
// parseable line, Point geometry otherwise. Wire order stays longitude-first.
func MapObstaclesGeoJSON(w http.ResponseWriter, r *http.Request) {
	var reports []models.ObstacleReport
	if err := config.DB.
		Where("status IN ?", []models.ObstacleStatus{models.StatusApproved, models.StatusPending}).
		Order("submitted_date DESC").
		Find(&reports).Error; err != nil {
		http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	fc := geojson.NewFeatureCollection()
	for i := range reports {
		o := &reports[i]

		var feature *geojson.Feature
		if o.HasLine() {
			line := make(orb.LineString, 0, o.LineVertexCount())
			for _, c := range o.LineCoordinates() {
				line = append(line, orb.Point{c.Longitude, c.Latitude})
			}
			feature = geojson.NewFeature(line)
			if length := o.LineLengthMeters(); length != nil {
				feature.Properties["lengthMeters"] = *length
			}
		} else if o.HasPoint() {
			feature = geojson.NewFeature(orb.Point{*o.Longitude, *o.Latitude})
		} else {
			continue
		}

		feature.ID = o.ID
		feature.Properties["obstacleName"] = o.Name
		feature.Properties["obstacleHeight"] = o.HeightMeters
		feature.Properties["status"] = string(o.Status)
		if o.Type != "" {
			feature.Properties["type"] = o.Type
			if info, ok := models.ObstacleTypeByValue(o.Type); ok {
				feature.Properties["icon"] = info.Icon
			}
		}
		fc.Append(feature)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		http.Error(w, "failed to encode GeoJSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Write(data)
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type ObstacleStatus string

const (
	StatusPending  ObstacleStatus = "Pending"
	StatusApproved ObstacleStatus = "Approved"
	StatusDeclined ObstacleStatus = "Declined"
)

const (
	MinObstacleHeightMeters = 15.0
	MaxObstacleHeightMeters = 300.0
)

// ObstacleReport is one reported aviation obstacle. Geometry is either a single
// point (latitude+longitude) or a polyline carried verbatim in LineGeoJSON and
// re-parsed on demand; the raw payload is the source of truth for the line.
type ObstacleReport struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Type         string         `gorm:"size:50" json:"type,omitempty"`
	HeightMeters float64        `gorm:"column:height_meters;not null" json:"heightMeters"`
	Description  string         `gorm:"size:1000;not null" json:"description"`
	Latitude     *float64       `gorm:"column:latitude" json:"latitude,omitempty"`
	Longitude    *float64       `gorm:"column:longitude" json:"longitude,omitempty"`
	LineGeoJSON  string         `gorm:"column:line_geo_json;type:text" json:"lineGeoJson,omitempty"`
	Organization string         `gorm:"size:100" json:"organization,omitempty"`
	Status       ObstacleStatus `gorm:"size:20;default:'Pending';index" json:"status"`
	Photos       datatypes.JSON `gorm:"type:jsonb" json:"photos,omitempty"`

	SubmittedBy      string     `gorm:"size:255" json:"submittedBy,omitempty"`
	SubmittedDate    time.Time  `gorm:"index" json:"submittedDate"`
	LastModifiedBy   string     `gorm:"size:255" json:"lastModifiedBy,omitempty"`
	LastModifiedDate *time.Time `json:"lastModifiedDate,omitempty"`
	ApprovedBy       string     `gorm:"size:255" json:"approvedBy,omitempty"`
	ApprovedDate     *time.Time `json:"approvedDate,omitempty"`
	DeclinedBy       string     `gorm:"size:255" json:"declinedBy,omitempty"`
	DeclinedDate     *time.Time `json:"declinedDate,omitempty"`
	DeclineReason    *string    `gorm:"size:1000" json:"declineReason,omitempty"`

	line lineCache
}

func (ObstacleReport) TableName() string {
	return "obstacle_reports"
}

// LineCoordinates returns the parsed vertices of LineGeoJSON, memoized per
// loaded instance. Repeated reads with an unchanged source return the same
// slice; changing LineGeoJSON invalidates the memo on the next read.
func (o *ObstacleReport) LineCoordinates() []Coordinate {
	coords, _ := o.line.getOrCompute(o.LineGeoJSON)
	return coords
}

// LineParseFailed reports whether LineGeoJSON is non-blank but unreadable.
func (o *ObstacleReport) LineParseFailed() bool {
	_, failed := o.line.getOrCompute(o.LineGeoJSON)
	return failed
}

// HasLine is true when the parsed line has at least two vertices. A single
// parsed point does not count as a line.
func (o *ObstacleReport) HasLine() bool {
	return len(o.LineCoordinates()) >= 2
}

// HasPoint is true when both point coordinates are set.
func (o *ObstacleReport) HasPoint() bool {
	return o.Latitude != nil && o.Longitude != nil
}

func (o *ObstacleReport) LineVertexCount() int {
	return len(o.LineCoordinates())
}

// LineLengthMeters is the great-circle length of the line, nil unless HasLine.
func (o *ObstacleReport) LineLengthMeters() *float64 {
	if !o.HasLine() {
		return nil
	}
	return LineLengthMeters(o.LineCoordinates())
}

func (o *ObstacleReport) StartCoordinate() *Coordinate {
	coords := o.LineCoordinates()
	if len(coords) == 0 {
		return nil
	}
	c := coords[0]
	return &c
}

func (o *ObstacleReport) EndCoordinate() *Coordinate {
	coords := o.LineCoordinates()
	if len(coords) == 0 {
		return nil
	}
	c := coords[len(coords)-1]
	return &c
}

// StampSubmission forces the initial workflow state. Whatever the client sent,
// a new report always enters the queue as Pending with a fresh audit stamp.
func (o *ObstacleReport) StampSubmission(actor string, now time.Time) {
	o.Status = StatusPending
	o.SubmittedBy = actor
	o.SubmittedDate = now
	o.LastModifiedBy = ""
	o.LastModifiedDate = nil
	o.ApprovedBy = ""
	o.ApprovedDate = nil
	o.DeclinedBy = ""
	o.DeclinedDate = nil
	o.DeclineReason = nil
}

// Approve overwrites unconditionally; a previously declined report can be
// re-approved and gets a fresh approval stamp. Earlier decline fields are left
// in place so the trail survives; Status is authoritative.
func (o *ObstacleReport) Approve(actor string, now time.Time) {
	o.Status = StatusApproved
	o.ApprovedBy = actor
	o.ApprovedDate = &now
}

// Decline overwrites unconditionally, same as Approve. Reason is optional.
func (o *ObstacleReport) Decline(actor string, reason *string, now time.Time) {
	o.Status = StatusDeclined
	o.DeclinedBy = actor
	o.DeclinedDate = &now
	o.DeclineReason = reason
}

// StampModified marks an edit. Status and the approval/decline trail are
// deliberately untouched.
func (o *ObstacleReport) StampModified(actor string, now time.Time) {
	o.LastModifiedBy = actor
	o.LastModifiedDate = &now
}

// ObstacleTypeInfo is display metadata for one obstacle type value.
type ObstacleTypeInfo struct {
	Value       string `json:"value"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// ObstacleTypes is the closed set of obstacle type values with their map icons.
var ObstacleTypes = []ObstacleTypeInfo{
	{Value: "Crane", Icon: "crane.png", Description: "Construction or harbour crane"},
	{Value: "Tower", Icon: "tower.png", Description: "Radio, telecom or observation tower"},
	{Value: "Building", Icon: "building.png", Description: "High-rise building"},
	{Value: "Mast", Icon: "mast.png", Description: "Guyed mast or antenna"},
	{Value: "Windmill", Icon: "windmill.png", Description: "Wind turbine"},
	{Value: "Other", Icon: "other.png", Description: "Other obstacle type"},
}

// ObstacleTypeByValue looks up display metadata for a type value.
func ObstacleTypeByValue(value string) (ObstacleTypeInfo, bool) {
	for _, t := range ObstacleTypes {
		if t.Value == value {
			return t, true
		}
	}
	return ObstacleTypeInfo{}, false
}

package models

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ObstacleFilter is the optional filter set for obstacle list queries. Every
// supplied field is an independent AND'ed predicate; a zero filter matches all.
// String matches (type, organization, status) are case-sensitive exact matches.
type ObstacleFilter struct {
	MinHeight    *float64
	MaxHeight    *float64
	Type         string
	Organization string
	Status       ObstacleStatus
	SearchTerm   string
	StartDate    *time.Time
	EndDate      *time.Time
}

// ParseObstacleFilter reads the filter set from list query parameters.
func ParseObstacleFilter(r *http.Request) (ObstacleFilter, error) {
	var f ObstacleFilter
	q := r.URL.Query()

	if v := q.Get("minHeight"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("invalid minHeight %q", v)
		}
		f.MinHeight = &h
	}
	if v := q.Get("maxHeight"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, fmt.Errorf("invalid maxHeight %q", v)
		}
		f.MaxHeight = &h
	}
	f.Type = q.Get("type")
	f.Organization = q.Get("organization")
	f.SearchTerm = q.Get("search")

	if v := q.Get("status"); v != "" {
		switch ObstacleStatus(v) {
		case StatusPending, StatusApproved, StatusDeclined:
			f.Status = ObstacleStatus(v)
		default:
			return f, fmt.Errorf("invalid status %q", v)
		}
	}
	if v := q.Get("startDate"); v != "" {
		t, err := ParseFlexibleTime(v)
		if err != nil {
			return f, err
		}
		f.StartDate = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := ParseFlexibleTime(v)
		if err != nil {
			return f, err
		}
		f.EndDate = &t
	}
	return f, nil
}

// Scope applies the filter to a GORM query, ordered by submission date
// descending. Meant for db.Scopes(f.Scope).
func (f ObstacleFilter) Scope(db *gorm.DB) *gorm.DB {
	if f.MinHeight != nil {
		db = db.Where("height_meters >= ?", *f.MinHeight)
	}
	if f.MaxHeight != nil {
		db = db.Where("height_meters <= ?", *f.MaxHeight)
	}
	if f.Type != "" {
		db = db.Where("type = ?", f.Type)
	}
	if f.Organization != "" {
		db = db.Where("organization = ?", f.Organization)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.SearchTerm != "" {
		term := "%" + strings.ToLower(f.SearchTerm) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	if f.StartDate != nil {
		db = db.Where("submitted_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		db = db.Where("submitted_date <= ?", *f.EndDate)
	}
	return db.Order("submitted_date DESC")
}

// Matches is the in-memory equivalent of Scope for a single record.
func (f ObstacleFilter) Matches(o *ObstacleReport) bool {
	if f.MinHeight != nil && o.HeightMeters < *f.MinHeight {
		return false
	}
	if f.MaxHeight != nil && o.HeightMeters > *f.MaxHeight {
		return false
	}
	if f.Type != "" && o.Type != f.Type {
		return false
	}
	if f.Organization != "" && o.Organization != f.Organization {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(o.Name), term) &&
			!strings.Contains(strings.ToLower(o.Description), term) {
			return false
		}
	}
	if f.StartDate != nil && o.SubmittedDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && o.SubmittedDate.After(*f.EndDate) {
		return false
	}
	return true
}

// FilterObstacles returns the subset of reports matching the filter, most
// recently submitted first.
func FilterObstacles(reports []ObstacleReport, f ObstacleFilter) []ObstacleReport {
	out := make([]ObstacleReport, 0, len(reports))
	for i := range reports {
		if f.Matches(&reports[i]) {
			out = append(out, reports[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedDate.After(out[j].SubmittedDate)
	})
	return out
}

package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationFailure tags a message with the offending field name(s).
type ValidationFailure struct {
	Fields  []string `json:"fields"`
	Message string   `json:"message"`
}

// geometryRule is one branch of the geometry validation sequence. Rules are
// evaluated top to bottom; the first rule whose applies() is true decides the
// outcome and stops the chain, which is what gives point mode priority over
// the line-too-short check.
type geometryRule struct {
	applies func(o *ObstacleReport) bool
	check   func(o *ObstacleReport) *ValidationFailure
}

var geometryRules = []geometryRule{
	{
		// Point mode: no line payload and nothing failed to parse.
		applies: func(o *ObstacleReport) bool {
			return !o.LineParseFailed() && strings.TrimSpace(o.LineGeoJSON) == ""
		},
		check: func(o *ObstacleReport) *ValidationFailure {
			if !o.HasPoint() {
				return &ValidationFailure{
					Fields:  []string{"latitude", "longitude"},
					Message: "No location given. Choose a location on the map, or draw the obstacle as a line.",
				}
			}
			return nil
		},
	},
	{
		applies: func(o *ObstacleReport) bool { return o.LineParseFailed() },
		check: func(o *ObstacleReport) *ValidationFailure {
			return &ValidationFailure{
				Fields:  []string{"lineGeoJson"},
				Message: "The obstacle line could not be read. Draw it again on the map.",
			}
		},
	},
	{
		applies: func(o *ObstacleReport) bool { return true },
		check: func(o *ObstacleReport) *ValidationFailure {
			if !o.HasLine() {
				return &ValidationFailure{
					Fields:  []string{"lineGeoJson"},
					Message: "An obstacle line needs at least two points.",
				}
			}
			return nil
		},
	},
}

// Validate runs the field-level checks followed by the geometry rule chain and
// returns every failure found. Field failures are additive with the geometry
// outcome; only the geometry rules short-circuit among themselves.
func (o *ObstacleReport) Validate() []ValidationFailure {
	var failures []ValidationFailure

	if strings.TrimSpace(o.Name) == "" {
		failures = append(failures, ValidationFailure{
			Fields:  []string{"name"},
			Message: "Name is required.",
		})
	} else if utf8.RuneCountInString(o.Name) > 100 {
		failures = append(failures, ValidationFailure{
			Fields:  []string{"name"},
			Message: "Name must be 100 characters or fewer.",
		})
	}

	if strings.TrimSpace(o.Description) == "" {
		failures = append(failures, ValidationFailure{
			Fields:  []string{"description"},
			Message: "Description is required.",
		})
	} else if utf8.RuneCountInString(o.Description) > 1000 {
		failures = append(failures, ValidationFailure{
			Fields:  []string{"description"},
			Message: "Description must be 1000 characters or fewer.",
		})
	}

	if o.HeightMeters < MinObstacleHeightMeters || o.HeightMeters > MaxObstacleHeightMeters {
		failures = append(failures, ValidationFailure{
			Fields: []string{"heightMeters"},
			Message: fmt.Sprintf("Height must be between %.0f and %.0f meters.",
				MinObstacleHeightMeters, MaxObstacleHeightMeters),
		})
	}

	if o.Type != "" {
		if _, ok := ObstacleTypeByValue(o.Type); !ok {
			failures = append(failures, ValidationFailure{
				Fields:  []string{"type"},
				Message: "Unknown obstacle type.",
			})
		}
	}

	// Forces the parse before any geometry branch looks at the result.
	o.LineCoordinates()

	for _, rule := range geometryRules {
		if !rule.applies(o) {
			continue
		}
		if f := rule.check(o); f != nil {
			failures = append(failures, *f)
		}
		break
	}

	return failures
}

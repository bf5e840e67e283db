package models

import (
	"testing"
	"time"
)

func testReports() []ObstacleReport {
	day := func(d int) time.Time {
		return time.Date(2025, 5, d, 12, 0, 0, 0, time.UTC)
	}
	return []ObstacleReport{
		{ID: 1, Name: "Quay crane", Type: "Crane", HeightMeters: 20,
			Organization: "Port Authority", Status: StatusPending,
			Description: "Mobile crane", SubmittedDate: day(1)},
		{ID: 2, Name: "Broadcast tower", Type: "Tower", HeightMeters: 100,
			Organization: "TeleNord", Status: StatusApproved,
			Description: "Lattice tower with guy wires", SubmittedDate: day(10)},
		{ID: 3, Name: "Turbine W3", Type: "Windmill", HeightMeters: 250,
			Organization: "TeleNord", Status: StatusDeclined,
			Description: "Offshore wind turbine", SubmittedDate: day(20)},
	}
}

func ptrF(v float64) *float64 { return &v }

func TestFilterHeightRange(t *testing.T) {
	got := FilterObstacles(testReports(), ObstacleFilter{
		MinHeight: ptrF(50),
		MaxHeight: ptrF(150),
	})
	if len(got) != 1 || got[0].HeightMeters != 100 {
		t.Fatalf("got %+v, want only the 100m record", got)
	}
}

func TestFilterNoFiltersReturnsAll(t *testing.T) {
	got := FilterObstacles(testReports(), ObstacleFilter{})
	if len(got) != 3 {
		t.Fatalf("got %d records, want all 3", len(got))
	}
	// Descending submission date
	for i := 1; i < len(got); i++ {
		if got[i].SubmittedDate.After(got[i-1].SubmittedDate) {
			t.Fatal("results not ordered by submission date descending")
		}
	}
}

func TestFilterPredicates(t *testing.T) {
	tests := []struct {
		name    string
		filter  ObstacleFilter
		wantIDs []uint
	}{
		{"type exact", ObstacleFilter{Type: "Tower"}, []uint{2}},
		{"type is case sensitive", ObstacleFilter{Type: "tower"}, nil},
		{"organization", ObstacleFilter{Organization: "TeleNord"}, []uint{3, 2}},
		{"status", ObstacleFilter{Status: StatusDeclined}, []uint{3}},
		{"search matches name", ObstacleFilter{SearchTerm: "crane"}, []uint{1}},
		{"search matches description", ObstacleFilter{SearchTerm: "guy wires"}, []uint{2}},
		{"search is case insensitive", ObstacleFilter{SearchTerm: "TURBINE"}, []uint{3}},
		{"start date inclusive", ObstacleFilter{
			StartDate: timePtr(time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)),
		}, []uint{3, 2}},
		{"end date inclusive", ObstacleFilter{
			EndDate: timePtr(time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)),
		}, []uint{2, 1}},
		{"combined filters AND", ObstacleFilter{
			Organization: "TeleNord",
			MaxHeight:    ptrF(150),
		}, []uint{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterObstacles(testReports(), tt.filter)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantIDs))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("record %d has ID %d, want %d", i, got[i].ID, want)
				}
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/emisense/ldarsim/core/model"
)

func TestClockWindow(t *testing.T) {
	c := NewClock(time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC))
	if c.Hour() != 0 {
		t.Fatalf("clock not at midnight: %v", c.Current)
	}
	c.SetHour(8)
	if c.Hour() != 8 || c.Current.Day() != 1 {
		t.Fatalf("SetHour moved the date: %v", c.Current)
	}
	c.Advance(90)
	if c.Hour() != 9 || c.Current.Minute() != 30 {
		t.Fatalf("advance wrong: %v", c.Current)
	}
}

func TestClockStepDay(t *testing.T) {
	c := NewClock(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	c.SetHour(17)
	c.StepDay()
	if c.Timestep != 1 {
		t.Fatalf("timestep = %d", c.Timestep)
	}
	want := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !c.Current.Equal(want) {
		t.Fatalf("expected %v got %v", want, c.Current)
	}
}

func TestActiveLeaksFilters(t *testing.T) {
	ctx := NewContext(time.Now(), 1, 1)
	ctx.Leaks = []*model.Leak{
		{ID: "a", FacilityID: "F1", Status: model.StatusActive},
		{ID: "b", FacilityID: "F1", Status: model.StatusInactive},
		{ID: "c", FacilityID: "F2", Status: model.StatusActive},
	}
	got := ctx.ActiveLeaks("F1")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("unexpected leaks: %#v", got)
	}
}

func TestDrawOffsiteMinutes(t *testing.T) {
	ctx := NewContext(time.Now(), 1, 42)
	if _, err := ctx.DrawOffsiteMinutes(); !errors.Is(err, ErrEmptyOffsitePool) {
		t.Fatalf("expected ErrEmptyOffsitePool, got %v", err)
	}
	ctx.OffsiteTimes = []float64{5, 10, 15}
	for i := 0; i < 50; i++ {
		m, err := ctx.DrawOffsiteMinutes()
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		if m != 5 && m != 10 && m != 15 {
			t.Fatalf("draw outside pool: %v", m)
		}
	}
}

func TestTimeseriesGrowAndAdd(t *testing.T) {
	ts := NewTimeseries(2)
	ts.AddCost(0, 1500)
	ts.AddCost(0, 1500)
	ts.IncSitesVisited(5) // beyond the preallocated range
	ts.IncRedundantTags(5)
	if ts.Cost[0] != 3000 {
		t.Fatalf("cost not additive: %v", ts.Cost)
	}
	if ts.SitesVisited[5] != 1 || ts.RedundantTags[5] != 1 {
		t.Fatalf("series did not grow: %#v", ts)
	}
}

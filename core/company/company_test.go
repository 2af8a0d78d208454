package company

import (
	"errors"
	"testing"
	"time"

	"github.com/emisense/ldarsim/core/crew"
	"github.com/emisense/ldarsim/core/environment"
	"github.com/emisense/ldarsim/core/model"
	"github.com/emisense/ldarsim/core/sim"
)

type nopLog struct{}

func (nopLog) Debugf(string, ...any)         {}
func (nopLog) Debugw(string, map[string]any) {}
func (nopLog) Infof(string, ...any)          {}
func (nopLog) Warnf(string, ...any)          {}
func (nopLog) Errorf(string, ...any)         {}

var (
	allClear = environment.GridFunc(func(_, _, _ int) bool { return true })
	noon     = environment.DaylightFunc(func(int) float64 { return 12 })
)

func newCompany(t *testing.T, ctx *sim.Context, method crew.MethodParams) *Company {
	t.Helper()
	method.SetDefaults()
	co, err := New("acme", ctx, method, crew.InstrumentParams{MDLMean: 0.47, MDLSigma: 0.1},
		noon, allClear, nil, nil, nopLog{})
	if err != nil {
		t.Fatalf("new company: %v", err)
	}
	return co
}

func TestNewValidatesMethod(t *testing.T) {
	ctx := sim.NewContext(time.Now(), 1, 1)
	_, err := New("acme", ctx, crew.MethodParams{MaxWorkdayHours: 24, Crews: 1},
		crew.InstrumentParams{}, noon, allClear, nil, nil, nopLog{})
	if err == nil {
		t.Fatalf("24h workday accepted")
	}
}

func TestDailyResetAgesSites(t *testing.T) {
	ctx := sim.NewContext(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), 1, 1)
	s := &model.Site{FacilityID: "F1", SinceLastSurvey: 10, SurveysThisYear: 2, AttemptedToday: true, SurveyMinutes: 60, RequiredSurveys: 4}
	ctx.Sites = []*model.Site{s}
	co := newCompany(t, ctx, crew.MethodParams{MaxWorkdayHours: 8, Crews: 1})
	co.DailyReset()
	if s.SinceLastSurvey != 11 || s.AttemptedToday || s.SurveysThisYear != 2 {
		t.Fatalf("daily reset wrong: %#v", s)
	}
}

func TestDailyResetNewYearRollover(t *testing.T) {
	ctx := sim.NewContext(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 1, 1)
	s := &model.Site{FacilityID: "F1", SurveysThisYear: 4, SurveyMinutes: 60, RequiredSurveys: 4}
	ctx.Sites = []*model.Site{s}
	co := newCompany(t, ctx, crew.MethodParams{MaxWorkdayHours: 8, Crews: 1})
	co.DailyReset()
	if s.SurveysThisYear != 0 {
		t.Fatalf("yearly quota not rolled over: %#v", s)
	}
}

func TestSurveyDayRunsCrewsInTurn(t *testing.T) {
	ctx := sim.NewContext(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 5, 3)
	ctx.OffsiteTimes = []float64{15}
	for _, id := range []string{"F1", "F2", "F3"} {
		ctx.Sites = append(ctx.Sites, &model.Site{FacilityID: id, SinceLastSurvey: 99, RequiredSurveys: 12, SurveyMinutes: 120})
	}
	co := newCompany(t, ctx, crew.MethodParams{MaxWorkdayHours: 8, Crews: 2, CostPerDay: 1000})
	if len(co.Crews()) != 2 {
		t.Fatalf("crews = %d", len(co.Crews()))
	}
	if err := co.SurveyDay(); err != nil {
		t.Fatalf("survey day: %v", err)
	}
	// Both crews worked, so both daily costs land on the same timestep.
	if ctx.Timeseries.Cost[0] != 2000 {
		t.Fatalf("cost = %v", ctx.Timeseries.Cost[0])
	}
	if ctx.Timeseries.SitesVisited[0] == 0 {
		t.Fatalf("no visits recorded")
	}
}

func TestSurveyDayPropagatesCrewError(t *testing.T) {
	ctx := sim.NewContext(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 1, 1)
	ctx.Sites = []*model.Site{{FacilityID: "F1", SinceLastSurvey: 99, RequiredSurveys: 4, SurveyMinutes: 60}}
	// Empty offsite pool makes the first visit fail fast.
	co := newCompany(t, ctx, crew.MethodParams{MaxWorkdayHours: 8, Crews: 1})
	if err := co.SurveyDay(); !errors.Is(err, sim.ErrEmptyOffsitePool) {
		t.Fatalf("expected ErrEmptyOffsitePool, got %v", err)
	}
}

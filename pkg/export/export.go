// Package export writes simulation results in CSV and JSON form.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/emisense/ldarsim/core/model"
	"github.com/emisense/ldarsim/core/sim"
)

// Row is one exported timestep.
type Row struct {
	Timestep      int       `json:"timestep"`
	Date          time.Time `json:"date"`
	Cost          float64   `json:"cost"`
	RedundantTags int       `json:"redundant_tags"`
	SitesVisited  int       `json:"sites_visited"`
}

// Rows flattens the timeseries into exportable rows, one per timestep.
func Rows(ts *sim.Timeseries, start time.Time) []Row {
	rows := make([]Row, len(ts.Cost))
	for i := range ts.Cost {
		rows[i] = Row{
			Timestep:      i,
			Date:          start.AddDate(0, 0, i),
			Cost:          ts.Cost[i],
			RedundantTags: ts.RedundantTags[i],
			SitesVisited:  ts.SitesVisited[i],
		}
	}
	return rows
}

// WriteJSON writes the timeseries to w in JSON form.
func WriteJSON(w io.Writer, ts *sim.Timeseries, start time.Time) error {
	enc := json.NewEncoder(w)
	return enc.Encode(Rows(ts, start))
}

// WriteCSV writes the timeseries to w as CSV.
func WriteCSV(w io.Writer, ts *sim.Timeseries, start time.Time) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestep", "date", "cost", "redundant_tags", "sites_visited"}); err != nil {
		return err
	}
	for _, r := range Rows(ts, start) {
		rec := []string{
			strconv.Itoa(r.Timestep),
			r.Date.Format("2006-01-02"),
			strconv.FormatFloat(r.Cost, 'f', -1, 64),
			strconv.Itoa(r.RedundantTags),
			strconv.Itoa(r.SitesVisited),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTagsCSV writes the tag pool to w as CSV, in discovery order.
func WriteTagsCSV(w io.Writer, tags []*model.Leak) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"leak_id", "facility_id", "rate_kg_per_day", "date_found", "company", "crew_id"}); err != nil {
		return err
	}
	for _, l := range tags {
		rec := []string{
			l.ID,
			l.FacilityID,
			strconv.FormatFloat(l.RateKgPerDay, 'f', -1, 64),
			l.DateFound.Format(time.RFC3339),
			l.FoundByCompany,
			l.FoundByCrew,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/emisense/ldarsim/core/metrics"
	"github.com/emisense/ldarsim/infra/logger"
)

// InfluxSink writes survey events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so an unreachable database degrades
// to a silent run instead of failing it.
func NewInfluxSinkWithFallback(url, token, org, bucket string) metrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return metrics.NopSink{}
	}
	return sink
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordDayCost writes the daily cost as a point.
func (s *InfluxSink) RecordDayCost(ev metrics.DayCostEvent) error {
	p := write.NewPointWithMeasurement("survey_day_cost").
		AddTag("company", ev.Company).
		AddTag("crew_id", ev.CrewID).
		AddField("cost", ev.Cost).
		AddField("timestep", ev.Timestep).
		SetTime(ev.Date)
	return s.write(p)
}

// RecordSiteVisit writes the visit as a point.
func (s *InfluxSink) RecordSiteVisit(ev metrics.SiteVisitEvent) error {
	p := write.NewPointWithMeasurement("survey_site_visit").
		AddTag("crew_id", ev.CrewID).
		AddTag("facility_id", ev.FacilityID).
		AddField("leaks_found", ev.LeaksFound).
		AddField("leaks_missed", ev.LeaksMissed).
		AddField("minutes_on_site", ev.MinutesOnSite).
		AddField("timestep", ev.Timestep).
		SetTime(ev.Date)
	return s.write(p)
}

// RecordTag writes the detection as a point.
func (s *InfluxSink) RecordTag(ev metrics.TagEvent) error {
	p := write.NewPointWithMeasurement("survey_tag").
		AddTag("crew_id", ev.CrewID).
		AddTag("facility_id", ev.FacilityID).
		AddTag("redundant", strconv.FormatBool(ev.Redundant)).
		AddField("leak_id", ev.LeakID).
		AddField("rate_kg_per_day", ev.RateKgPerDay).
		AddField("timestep", ev.Timestep).
		SetTime(ev.Date)
	return s.write(p)
}

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

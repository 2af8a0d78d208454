package metrics

import (
	"errors"
	"testing"

	"github.com/emisense/ldarsim/core/factory"
)

type countSink struct {
	costs, visits, tags int
	fail                bool
}

func (c *countSink) RecordDayCost(DayCostEvent) error {
	if c.fail {
		return errors.New("sink down")
	}
	c.costs++
	return nil
}

func (c *countSink) RecordSiteVisit(SiteVisitEvent) error {
	c.visits++
	return nil
}

func (c *countSink) RecordTag(TagEvent) error {
	c.tags++
	return nil
}

func TestMultiSinkFanout(t *testing.T) {
	a, b := &countSink{}, &countSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordDayCost(DayCostEvent{}); err != nil {
		t.Fatalf("cost: %v", err)
	}
	if err := m.RecordSiteVisit(SiteVisitEvent{}); err != nil {
		t.Fatalf("visit: %v", err)
	}
	if err := m.RecordTag(TagEvent{}); err != nil {
		t.Fatalf("tag: %v", err)
	}
	if a.costs != 1 || b.costs != 1 || a.visits != 1 || b.visits != 1 || a.tags != 1 || b.tags != 1 {
		t.Fatalf("fanout incomplete: %#v %#v", a, b)
	}
}

func TestMultiSinkFirstError(t *testing.T) {
	a, b := &countSink{fail: true}, &countSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordDayCost(DayCostEvent{}); err == nil {
		t.Fatalf("expected error")
	}
	if b.costs != 0 {
		t.Fatalf("later sink recorded after error")
	}
}

func TestNewSinkDefaults(t *testing.T) {
	s, err := NewSink(nil)
	if err != nil {
		t.Fatalf("nop: %v", err)
	}
	if _, ok := s.(NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
	if _, err := NewSink([]factory.ModuleConfig{{Type: "bogus"}}); err == nil {
		t.Fatalf("unknown sink type accepted")
	}
}

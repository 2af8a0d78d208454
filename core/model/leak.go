package model

import (
	"fmt"
	"time"
)

// LeakStatus describes the lifecycle state of an emission source. The
// lifecycle itself (creation, natural repair, venting) is owned by external
// workflows; crews only read it.
type LeakStatus string

const (
	StatusActive   LeakStatus = "active"
	StatusInactive LeakStatus = "inactive"
)

// Leak represents one emission source at a facility.
type Leak struct {
	ID         string
	FacilityID string
	Status     LeakStatus

	// RateKgPerDay is the emission rate in kg/day, never negative.
	RateKgPerDay float64

	// Tagged is monotone: once a crew tags a leak it stays tagged until the
	// leak leaves the simulation through the repair workflow.
	Tagged bool

	// Discovery metadata, written exactly once, together with Tagged.
	DateFound      time.Time
	FoundByCompany string
	FoundByCrew    string
}

// Validate checks that the leak record is sound.
func (l Leak) Validate() error {
	if l.FacilityID == "" {
		return fmt.Errorf("leak %s without facility ID", l.ID)
	}
	if l.RateKgPerDay < 0 {
		return fmt.Errorf("leak %s: negative rate", l.ID)
	}
	return nil
}

// Active reports whether the leak is currently emitting.
func (l Leak) Active() bool {
	return l.Status == StatusActive
}

// Tag marks the leak as found. The tagged flag and all discovery metadata
// are written together so a detection event never leaves the record half
// updated. Tagging an already tagged leak is a no-op.
func (l *Leak) Tag(date time.Time, company, crewID string) {
	if l.Tagged {
		return
	}
	l.Tagged = true
	l.DateFound = date
	l.FoundByCompany = company
	l.FoundByCrew = crewID
}

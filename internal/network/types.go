// Package network holds the charging-network domain model: stations, demand
// areas, candidate build sites, and the coverage targets the planner works
// against. These types form the input document schema and are read-only for
// the rest of the pipeline.
package network

import (
	"fmt"

	"github.com/pkg/errors"
)

// ChargerType is the power tier of a charging station.
type ChargerType int

const (
	Level2 ChargerType = iota
	Level3
)

// Wire strings used by the input and output documents.
const (
	level2Wire = "Level 2"
	level3Wire = "Level 3"
)

func (t ChargerType) String() string {
	if t == Level3 {
		return level3Wire
	}
	return level2Wire
}

// MarshalJSON writes the wire string ("Level 2" / "Level 3").
func (t ChargerType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON accepts the wire strings and rejects anything else so a typo
// in an input file fails at load time, not inside the model build.
func (t *ChargerType) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"` + level2Wire + `"`:
		*t = Level2
	case `"` + level3Wire + `"`:
		*t = Level3
	default:
		return errors.Errorf("unknown charger type %s", string(b))
	}
	return nil
}

// Station is an existing charging station.
type Station struct {
	StationID      string      `json:"stationId"`
	Lat            float64     `json:"lat"`
	Lon            float64     `json:"lon"`
	Type           ChargerType `json:"type"`
	Ports          int         `json:"ports"`
	Upgradeable    bool        `json:"upgradeable"`
	GridCapacityKW float64     `json:"gridCapacityKw"`
}

// ID is implemented to fulfill the model.Identifier interface.
func (s Station) ID() string {
	return s.StationID
}

// Area is a demand unit: a population cell with EV adoption figures and a
// minimum port requirement.
type Area struct {
	AreaID      string  `json:"areaId"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Population  float64 `json:"population"`
	EVOwnership float64 `json:"evOwnership"`
	GrowthRate  float64 `json:"growthRate"`
	MinPorts    int     `json:"minPorts"`
}

// ID is implemented to fulfill the model.Identifier interface.
func (a Area) ID() string {
	return a.AreaID
}

// CandidateSite is a location where a new station may be built.
type CandidateSite struct {
	SiteID         string  `json:"siteId"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	GridCapacityKW float64 `json:"gridCapacityKw"`
}

// ID is implemented to fulfill the model.Identifier interface.
func (c CandidateSite) ID() string {
	return c.SiteID
}

// CoverageTargets are the network-wide coverage goals.
type CoverageTargets struct {
	TargetL3      float64 `json:"target_l3"`
	MaxDistanceKM float64 `json:"max_distance"`
	CurrentL3     float64 `json:"current_l3"`
}

// Input is the document the planner consumes.
type Input struct {
	Stations   []Station       `json:"stations"`
	Areas      []Area          `json:"areas"`
	Candidates []CandidateSite `json:"candidates,omitempty"`
	Coverage   CoverageTargets `json:"coverage"`
}

// DistanceFunc returns the distance in kilometers between two coordinates.
// Geospatial math lives with the caller; the planner only consumes distances.
type DistanceFunc func(lat1, lon1, lat2, lon2 float64) float64

// DataValidationError reports a malformed or inconsistent input record.
type DataValidationError struct {
	Field  string
	Reason string
}

func (e *DataValidationError) Error() string {
	return fmt.Sprintf("invalid input data: %s: %s", e.Field, e.Reason)
}

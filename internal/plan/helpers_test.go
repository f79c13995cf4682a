package plan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridvolt/chargeplan/internal/config"
	"github.com/gridvolt/chargeplan/internal/network"
	"github.com/gridvolt/chargeplan/internal/params"
)

// planar treats lat/lon as plane coordinates so tests control distances
// exactly.
func planar(lat1, lon1, lat2, lon2 float64) float64 {
	return math.Hypot(lat1-lat2, lon1-lon2)
}

// prepare builds a bundle or fails the test.
func prepare(t *testing.T, in network.Input, cfg config.Config) *params.Bundle {
	t.Helper()
	b, err := params.Prepare(in, cfg, planar)
	require.NoError(t, err)
	return b
}

// clusterInput is a compact network: two upgradeable Level-2 stations and one
// Level-3 station close together, one area in reach.
func clusterInput() network.Input {
	return network.Input{
		Stations: []network.Station{
			{StationID: "s1", Lat: 0, Lon: 0, Type: network.Level2, Ports: 4, Upgradeable: true, GridCapacityKW: 500},
			{StationID: "s2", Lat: 0, Lon: 1, Type: network.Level2, Ports: 4, Upgradeable: true, GridCapacityKW: 500},
			{StationID: "s3", Lat: 1, Lon: 0, Type: network.Level3, Ports: 2, GridCapacityKW: 500},
		},
		Areas: []network.Area{
			{AreaID: "a1", Lat: 0.5, Lon: 0.5, Population: 10000, EVOwnership: 0.15, GrowthRate: 0.2},
		},
		Coverage: network.CoverageTargets{TargetL3: 0.3, MaxDistanceKM: 5, CurrentL3: 0.1},
	}
}

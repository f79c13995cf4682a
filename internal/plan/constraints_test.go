package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridvolt/chargeplan/internal/config"
	"github.com/gridvolt/chargeplan/internal/network"
)

// TestL3DistancePairsRows places two upgradeable stations 10 apart with a
// fixed Level-3 station 7 away from the first, against a 5 distance limit.
func TestL3DistancePairsRows(t *testing.T) {
	in := network.Input{
		Stations: []network.Station{
			{StationID: "u1", Lat: 0, Lon: 0, Type: network.Level2, Ports: 2, Upgradeable: true, GridCapacityKW: 500},
			{StationID: "u2", Lat: 0, Lon: 10, Type: network.Level2, Ports: 2, Upgradeable: true, GridCapacityKW: 500},
			{StationID: "f1", Lat: 7, Lon: 0, Type: network.Level3, Ports: 2, GridCapacityKW: 500},
		},
		Areas: []network.Area{
			{AreaID: "a1", Lat: 0, Lon: 1, Population: 100, EVOwnership: 0.1},
		},
		Coverage: network.CoverageTargets{MaxDistanceKM: 5},
	}
	b := prepare(t, in, config.Default())

	rows := l3DistancePairs(b)

	byKey := map[string]l3PairRow{}
	for _, r := range rows {
		key := ""
		for _, v := range r.Vars {
			if key != "" {
				key += "+"
			}
			key += v
		}
		byKey[key] = r
	}

	// u1-u2: both decisions, d=10 > 5: d*y1 + d*y2 <= maxD + d.
	pair, ok := byKey["u1+u2"]
	require.True(t, ok, "expected a row for the u1/u2 pair, got %v", rows)
	assert.InDelta(t, 10.0, pair.KM, 1e-9)
	assert.InDelta(t, 15.0, pair.RHS, 1e-9)

	// f1-u1: fixed Level 3 folds in, d=7 > 5: d*y <= maxD (forces y=0).
	single, ok := byKey["u1"]
	require.True(t, ok)
	assert.InDelta(t, 7.0, single.KM, 1e-9)
	assert.InDelta(t, 5.0, single.RHS, 1e-9)

	// f1-u2: d = hypot(7,10) ~ 12.2 > 5, so u2 gets a single row too.
	_, ok = byKey["u2"]
	assert.True(t, ok)

	assert.Len(t, rows, 3)
}

// TestL3PairLinearizationTruthTable checks the conjunction reading: the row
// binds exactly when both indicators are 1.
func TestL3PairLinearizationTruthTable(t *testing.T) {
	const d, maxD = 10.0, 5.0
	row := l3PairRow{Vars: []string{"i", "j"}, KM: d, RHS: maxD + d}

	eval := func(yi, yj float64) bool {
		return row.KM*yi+row.KM*yj <= row.RHS
	}
	assert.True(t, eval(0, 0))
	assert.True(t, eval(0, 1))
	assert.True(t, eval(1, 0))
	assert.False(t, eval(1, 1), "both Level 3 at distance %v must violate the limit %v", d, maxD)
}

func TestL3PairsSkipVacuousAndFixedPairs(t *testing.T) {
	in := network.Input{
		Stations: []network.Station{
			// Two fixed Level-3 stations far apart: pre-existing, no row.
			{StationID: "f1", Lat: 0, Lon: 0, Type: network.Level3, Ports: 2, GridCapacityKW: 500},
			{StationID: "f2", Lat: 0, Lon: 50, Type: network.Level3, Ports: 2, GridCapacityKW: 500},
			// Upgradeable within the limit of both: vacuous against f1.
			{StationID: "u1", Lat: 0, Lon: 1, Type: network.Level2, Ports: 2, Upgradeable: true, GridCapacityKW: 500},
		},
		Areas: []network.Area{
			{AreaID: "a1", Lat: 0, Lon: 1, Population: 100, EVOwnership: 0.1},
		},
		Coverage: network.CoverageTargets{MaxDistanceKM: 5},
	}
	b := prepare(t, in, config.Default())

	rows := l3DistancePairs(b)
	// Only u1 vs f2 (d=49 > 5) survives.
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"u1"}, rows[0].Vars)
	assert.InDelta(t, 49.0, rows[0].KM, 1e-9)
}

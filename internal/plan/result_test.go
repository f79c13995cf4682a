package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridvolt/chargeplan/internal/config"
	"github.com/gridvolt/chargeplan/internal/network"
)

func TestResultSpendRecomputesCapitalCost(t *testing.T) {
	in := clusterInput()
	in.Candidates = []network.CandidateSite{
		{SiteID: "c1", Lat: 2, Lon: 2, GridCapacityKW: 500},
	}
	cfg := config.Default()
	cfg.Costs.Upgrade = 50000
	cfg.Costs.PortL2 = 2000
	cfg.Costs.PortL3 = 30000
	cfg.Costs.NewStation = 100000
	b := prepare(t, in, cfg)

	r := &Result{
		Upgrades:    []string{"s1"},
		NewStations: []string{"c1"},
		NewPorts:    map[string]int{"s2": 3, "s3": 1},
	}
	// 50000 + 100000 + 3*2000 (s2 is Level 2) + 1*30000 (s3 is Level 3)
	assert.InDelta(t, 186000.0, r.Spend(b), 1e-9)
}

func TestResultMembershipHelpers(t *testing.T) {
	r := &Result{Upgrades: []string{"s1"}, Removals: []string{"s2"}}
	assert.True(t, r.Active("s1"))
	assert.False(t, r.Active("s2"))
	assert.True(t, r.Removed("s2"))
	assert.False(t, r.Removed("s1"))
}

package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridvolt/chargeplan/internal/config"
	"github.com/gridvolt/chargeplan/internal/network"
)

func TestPreDiagnoseCleanNetwork(t *testing.T) {
	cfg := config.Default()
	cfg.MinCoverageFraction = 0.5
	b := prepare(t, clusterInput(), cfg)

	_, _, ok := preDiagnose(b)
	assert.True(t, ok)
}

func TestPreDiagnoseCoverageUnreachable(t *testing.T) {
	in := clusterInput()
	// Second area far outside every station's reach.
	in.Areas = append(in.Areas, network.Area{
		AreaID: "a2", Lat: 100, Lon: 100, Population: 10000, EVOwnership: 0.1,
	})
	cfg := config.Default()
	cfg.MinCoverageFraction = 1.0
	b := prepare(t, in, cfg)

	family, detail, ok := preDiagnose(b)
	require.False(t, ok)
	assert.Equal(t, "coverage", family)
	assert.NotEmpty(t, detail)
}

func TestPreDiagnoseGridOverload(t *testing.T) {
	in := clusterInput()
	// Existing Level-3 draw already over capacity.
	in.Stations[2].GridCapacityKW = 10
	cfg := config.Default()
	cfg.MinCoverageFraction = 0
	b := prepare(t, in, cfg)

	family, detail, ok := preDiagnose(b)
	require.False(t, ok)
	assert.Equal(t, "infrastructure", family)
	assert.True(t, strings.Contains(detail, "s3"))
}

func TestPreDiagnosePortFloorUnreachable(t *testing.T) {
	in := clusterInput()
	in.Areas[0].MinPorts = 1000
	cfg := config.Default()
	cfg.MinCoverageFraction = 0
	b := prepare(t, in, cfg)

	family, _, ok := preDiagnose(b)
	require.False(t, ok)
	assert.Equal(t, "infrastructure", family)
}

// Package main is the chargeplan CLI: it reads a charging-network document,
// solves the enhancement MILP, optionally sweeps a list of scenario
// overrides, and writes the solution document.
package main

import (
	"context"
	"log"
	"math"
	"time"

	"github.com/nextmv-io/sdk/run"
	"go.uber.org/zap"

	"github.com/gridvolt/chargeplan/internal/config"
	"github.com/gridvolt/chargeplan/internal/network"
	"github.com/gridvolt/chargeplan/internal/params"
	"github.com/gridvolt/chargeplan/internal/plan"
	"github.com/gridvolt/chargeplan/internal/scenario"
)

func main() {
	err := run.CLI(solver).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// input is the network document plus an optional ordered scenario list.
type input struct {
	network.Input
	Scenarios []params.Override `json:"scenarios,omitempty"`
}

// Option is the CLI option surface.
type Option struct {
	// Config is a path to a YAML/JSON configuration file. Environment
	// variables (CHARGEPLAN_*) override the file; defaults fill the rest.
	Config string `json:"config" default:""`
	Limits struct {
		Duration time.Duration `json:"duration" default:"10s"`
	} `json:"limits"`
}

// Output is the solution document.
type Output struct {
	Status      plan.Status        `json:"status"`
	Runtime     string             `json:"runtime,omitempty"`
	Objective   float64            `json:"objective,omitempty"`
	Upgrades    []string           `json:"upgrades"`
	NewStations []string           `json:"newStations,omitempty"`
	Removals    []string           `json:"removals,omitempty"`
	NewPorts    map[string]int     `json:"new_ports"`
	Underserved []string           `json:"underserved,omitempty"`
	Diagnosis   string             `json:"diagnosis,omitempty"`
	Phasing     *scenario.Phasing  `json:"phasing,omitempty"`
	Scenarios   []scenario.Outcome `json:"scenarios,omitempty"`
	Summary     *scenario.Summary  `json:"summary,omitempty"`
}

func solver(in input, opts Option) ([]Output, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, err
	}
	if opts.Limits.Duration > 0 {
		cfg.Solver.MaxDuration = opts.Limits.Duration
	}

	bundle, err := params.Prepare(in.Input, cfg, haversineKM)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	result, err := plan.Solve(ctx, bundle, logger)
	if err != nil {
		return nil, err
	}

	out := Output{
		Status:      result.Status,
		Runtime:     result.RunTime.String(),
		Objective:   result.ObjectiveValue,
		Upgrades:    result.Upgrades,
		NewStations: result.NewStations,
		Removals:    result.Removals,
		NewPorts:    result.NewPorts,
		Underserved: result.Underserved,
		Diagnosis:   result.Diagnosis,
		Phasing:     scenario.BuildPhasing(bundle, result),
	}

	if len(in.Scenarios) > 0 {
		runner := scenario.NewRunner(bundle, logger, cfg.SweepWorkers)
		outcomes, err := runner.Run(ctx, in.Scenarios)
		if err != nil {
			return nil, err
		}
		summary := scenario.Summarize(outcomes)
		out.Scenarios = outcomes
		out.Summary = &summary
	}

	return []Output{out}, nil
}

const earthRadiusKM = 6371.0

// haversineKM is the great-circle distance between two coordinates.
// Geospatial math stays on this side of the pipeline; the planner only
// consumes a distance function.
func haversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

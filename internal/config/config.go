// Package config loads the planner's parameter surface. Every knob has a
// default, can be overridden from a YAML/JSON file, and again from the
// environment (CHARGEPLAN_* variables), so scenario scripts never need to
// patch code to move the budget or reweight the objective.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "CHARGEPLAN"

// Costs are the scalar cost constants of the model. All values are currency
// units except the power figures, which are kW per port.
type Costs struct {
	Upgrade        float64 `mapstructure:"upgrade"`
	PortL2         float64 `mapstructure:"port_l2"`
	PortL3         float64 `mapstructure:"port_l3"`
	OperatingL2    float64 `mapstructure:"operating_l2"`
	OperatingL3    float64 `mapstructure:"operating_l3"`
	NewStation     float64 `mapstructure:"new_station"`
	PowerPerPortL2 float64 `mapstructure:"power_per_port_l2"`
	PowerPerPortL3 float64 `mapstructure:"power_per_port_l3"`
	RemovalSavings float64 `mapstructure:"removal_savings"`
}

// Weights are the objective weights w1..w4.
type Weights struct {
	Coverage    float64 `mapstructure:"coverage"`
	Operating   float64 `mapstructure:"operating"`
	Upgrade     float64 `mapstructure:"upgrade"`
	Underserved float64 `mapstructure:"underserved"`
}

// Solver configures the delegated MILP engine.
type Solver struct {
	Provider       string        `mapstructure:"provider"`
	MaxDuration    time.Duration `mapstructure:"max_duration"`
	MIPGapRelative float64       `mapstructure:"mip_gap_relative"`
	Verbose        bool          `mapstructure:"verbose"`
}

// Config is the full parameter surface of one planning run.
type Config struct {
	Budget                float64 `mapstructure:"budget"`
	MaxUpgradesPerPeriod  int     `mapstructure:"max_upgrades_per_period"`
	MinCoverageFraction   float64 `mapstructure:"min_coverage_fraction"`
	MaxNewPortsPerStation int     `mapstructure:"max_new_ports_per_station"`
	NewStationPorts       int     `mapstructure:"new_station_ports"`
	UnderservedPenalty    float64 `mapstructure:"underserved_penalty"`
	Weights               Weights `mapstructure:"weights"`
	Costs                 Costs   `mapstructure:"costs"`
	Solver                Solver  `mapstructure:"solver"`
	SweepWorkers          int     `mapstructure:"sweep_workers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("budget", 500000.0)
	v.SetDefault("max_upgrades_per_period", 5)
	v.SetDefault("min_coverage_fraction", 0.8)
	v.SetDefault("max_new_ports_per_station", 8)
	v.SetDefault("new_station_ports", 4)
	v.SetDefault("underserved_penalty", 1000.0)

	v.SetDefault("weights.coverage", 1.0)
	v.SetDefault("weights.operating", 0.1)
	v.SetDefault("weights.upgrade", 0.5)
	v.SetDefault("weights.underserved", 1.0)

	v.SetDefault("costs.upgrade", 50000.0)
	v.SetDefault("costs.port_l2", 2500.0)
	v.SetDefault("costs.port_l3", 40000.0)
	v.SetDefault("costs.operating_l2", 3000.0)
	v.SetDefault("costs.operating_l3", 12000.0)
	v.SetDefault("costs.new_station", 150000.0)
	v.SetDefault("costs.power_per_port_l2", 7.2)
	v.SetDefault("costs.power_per_port_l3", 50.0)
	v.SetDefault("costs.removal_savings", 3000.0)

	v.SetDefault("solver.provider", "highs")
	v.SetDefault("solver.max_duration", 10*time.Second)
	v.SetDefault("solver.mip_gap_relative", 0.0)
	v.SetDefault("solver.verbose", false)

	v.SetDefault("sweep_workers", 4)
}

// Load builds a Config from defaults, the optional file at path, and the
// environment, in increasing precedence.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "unmarshalling config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in configuration with no file or environment
// applied. Used as the base for programmatic scenario sweeps.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults are fully typed, this cannot fail.
	_ = v.Unmarshal(&cfg)
	return cfg
}

// Validate rejects configurations the model cannot express.
func (c Config) Validate() error {
	if c.Budget < 0 {
		return errors.New("budget must be non-negative")
	}
	if c.MaxUpgradesPerPeriod < 0 {
		return errors.New("max_upgrades_per_period must be non-negative")
	}
	if c.MinCoverageFraction < 0 || c.MinCoverageFraction > 1 {
		return errors.New("min_coverage_fraction must be within [0,1]")
	}
	if c.MaxNewPortsPerStation < 0 {
		return errors.New("max_new_ports_per_station must be non-negative")
	}
	if c.NewStationPorts < 0 {
		return errors.New("new_station_ports must be non-negative")
	}
	for name, w := range map[string]float64{
		"weights.coverage":    c.Weights.Coverage,
		"weights.operating":   c.Weights.Operating,
		"weights.upgrade":     c.Weights.Upgrade,
		"weights.underserved": c.Weights.Underserved,
	} {
		if w < 0 {
			return errors.Errorf("%s must be non-negative", name)
		}
	}
	for name, cost := range map[string]float64{
		"costs.upgrade":     c.Costs.Upgrade,
		"costs.port_l2":     c.Costs.PortL2,
		"costs.port_l3":     c.Costs.PortL3,
		"costs.new_station": c.Costs.NewStation,
	} {
		if cost < 0 {
			return errors.Errorf("%s must be non-negative", name)
		}
	}
	if c.Solver.Provider == "" {
		return errors.New("solver.provider must be set")
	}
	return nil
}

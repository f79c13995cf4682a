package params

import "github.com/gridvolt/chargeplan/internal/config"

// Override is one scenario's deviation from the base configuration. Nil
// fields keep the base value. CostMultiplier scales the capital costs
// (upgrade, ports, new builds) and composes with an explicit UpgradeCost.
type Override struct {
	Label                string          `json:"label"`
	Budget               *float64        `json:"budget,omitempty"`
	MinCoverageFraction  *float64        `json:"minCoverageFraction,omitempty"`
	MaxUpgradesPerPeriod *int            `json:"maxUpgradesPerPeriod,omitempty"`
	UpgradeCost          *float64        `json:"upgradeCost,omitempty"`
	CostMultiplier       *float64        `json:"costMultiplier,omitempty"`
	Weights              *config.Weights `json:"weights,omitempty"`
}

// Apply returns the configuration with the override folded in. The receiver
// and argument are both left untouched.
func (o Override) Apply(cfg config.Config) config.Config {
	if o.Budget != nil {
		cfg.Budget = *o.Budget
	}
	if o.MinCoverageFraction != nil {
		cfg.MinCoverageFraction = *o.MinCoverageFraction
	}
	if o.MaxUpgradesPerPeriod != nil {
		cfg.MaxUpgradesPerPeriod = *o.MaxUpgradesPerPeriod
	}
	if o.UpgradeCost != nil {
		cfg.Costs.Upgrade = *o.UpgradeCost
	}
	if o.CostMultiplier != nil {
		m := *o.CostMultiplier
		cfg.Costs.Upgrade *= m
		cfg.Costs.PortL2 *= m
		cfg.Costs.PortL3 *= m
		cfg.Costs.NewStation *= m
	}
	if o.Weights != nil {
		cfg.Weights = *o.Weights
	}
	return cfg
}

package network

// Validate checks the input document for the problems that would otherwise
// surface as nonsense inside the model: blank or duplicate identifiers,
// negative counts and capacities, and coverage targets outside their ranges.
func (in Input) Validate() error {
	if len(in.Stations) == 0 {
		return &DataValidationError{Field: "stations", Reason: "at least one station is required"}
	}

	seen := make(map[string]bool, len(in.Stations)+len(in.Areas)+len(in.Candidates))
	for _, s := range in.Stations {
		if s.StationID == "" {
			return &DataValidationError{Field: "stations.stationId", Reason: "missing identifier"}
		}
		if seen[s.StationID] {
			return &DataValidationError{Field: "stations.stationId", Reason: "duplicate identifier " + s.StationID}
		}
		seen[s.StationID] = true
		if s.Ports < 0 {
			return &DataValidationError{Field: "stations.ports", Reason: "negative port count at " + s.StationID}
		}
		if s.GridCapacityKW < 0 {
			return &DataValidationError{Field: "stations.gridCapacityKw", Reason: "negative capacity at " + s.StationID}
		}
	}

	for _, a := range in.Areas {
		if a.AreaID == "" {
			return &DataValidationError{Field: "areas.areaId", Reason: "missing identifier"}
		}
		if seen[a.AreaID] {
			return &DataValidationError{Field: "areas.areaId", Reason: "duplicate identifier " + a.AreaID}
		}
		seen[a.AreaID] = true
		if a.Population < 0 {
			return &DataValidationError{Field: "areas.population", Reason: "negative population at " + a.AreaID}
		}
		if a.EVOwnership < 0 || a.EVOwnership > 1 {
			return &DataValidationError{Field: "areas.evOwnership", Reason: "ownership rate outside [0,1] at " + a.AreaID}
		}
		if a.MinPorts < 0 {
			return &DataValidationError{Field: "areas.minPorts", Reason: "negative port requirement at " + a.AreaID}
		}
	}

	for _, c := range in.Candidates {
		if c.SiteID == "" {
			return &DataValidationError{Field: "candidates.siteId", Reason: "missing identifier"}
		}
		if seen[c.SiteID] {
			return &DataValidationError{Field: "candidates.siteId", Reason: "duplicate identifier " + c.SiteID}
		}
		seen[c.SiteID] = true
		if c.GridCapacityKW < 0 {
			return &DataValidationError{Field: "candidates.gridCapacityKw", Reason: "negative capacity at " + c.SiteID}
		}
	}

	if in.Coverage.MaxDistanceKM <= 0 {
		return &DataValidationError{Field: "coverage.max_distance", Reason: "must be positive"}
	}
	if in.Coverage.CurrentL3 < 0 || in.Coverage.CurrentL3 > 1 {
		return &DataValidationError{Field: "coverage.current_l3", Reason: "must be within [0,1]"}
	}
	return nil
}

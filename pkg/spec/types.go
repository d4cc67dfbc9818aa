package spec

// PlotSpec is the top-level configuration for one simulated survey plot.
type PlotSpec struct {
	Name            string        `yaml:"name" json:"name"`
	Boundary        string        `yaml:"boundary" json:"boundary"`
	Seed            uint64        `yaml:"seed" json:"seed"`
	MaxIterations   int           `yaml:"max_iterations" json:"max_iterations"`
	SampleAttempts  int           `yaml:"sample_attempts" json:"sample_attempts"`
	SpeciesPolicy   string        `yaml:"species_policy" json:"species_policy"`
	MemberSelection string        `yaml:"member_selection" json:"member_selection"`
	Projection      ProjectionDef `yaml:"projection" json:"projection"`
	Species         []string      `yaml:"species" json:"species"`
	Classes         []ClassSpec   `yaml:"classes" json:"classes"`
}

// ProjectionDef selects the planar system used for lane assignment.
// A zero Zone means the UTM zone is derived from the boundary centroid.
type ProjectionDef struct {
	Zone  int  `yaml:"utm_zone" json:"utm_zone"`
	South bool `yaml:"south" json:"south"`
}

// ClassSpec configures one diameter class.
type ClassSpec struct {
	Name         string         `yaml:"name" json:"name"`
	DMin         int            `yaml:"d_min" json:"d_min"`
	DMax         int            `yaml:"d_max" json:"d_max"`
	HMin         int            `yaml:"h_min" json:"h_min"`
	HMax         int            `yaml:"h_max" json:"h_max"`
	MeanVolume   float64        `yaml:"mean_volume" json:"mean_volume"`
	TargetVolume float64        `yaml:"target_volume" json:"target_volume"`
	Tolerance    float64        `yaml:"tolerance" json:"tolerance"`
	Species      map[string]int `yaml:"species" json:"species"`
}

// EstimatedTrees returns the expected tree count for the class target,
// floor(target / mean volume). Zero when the mean volume is unknown.
func (c ClassSpec) EstimatedTrees() int {
	if c.MeanVolume <= 0 || c.TargetVolume <= 0 {
		return 0
	}
	return int(c.TargetVolume / c.MeanVolume)
}

// ClassByName returns the class with the given name, or nil if not found.
func (p *PlotSpec) ClassByName(name string) *ClassSpec {
	for i := range p.Classes {
		if p.Classes[i].Name == name {
			return &p.Classes[i]
		}
	}
	return nil
}

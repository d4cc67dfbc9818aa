package spec

// Species policies.
const (
	PolicySplitRemainder = "split_remainder"
	PolicyExplicitOnly   = "explicit_only"
)

// Multi-polygon member selection modes.
const (
	MemberByCount = "count"
	MemberByArea  = "area"
)

const (
	DefaultMaxIterations  = 100000
	DefaultSampleAttempts = 5000
	DefaultTargetVolume   = 5.0
	DefaultTolerance      = 0.1
	DefaultPlotName       = "Petak-1"
)

// StandardSpecies is the species group catalog used by the survey forms.
var StandardSpecies = []string{"Merbau", "Kelompok Meranti", "Rimba Campuran", "Kayu Indah"}

// StandardClasses holds the fixed diameter/height bounds and mean tree
// volume of each standard diameter class.
var StandardClasses = []ClassSpec{
	{Name: "20-39", DMin: 20, DMax: 39, HMin: 9, HMax: 12, MeanVolume: 0.45},
	{Name: "40-49", DMin: 40, DMax: 49, HMin: 11, HMax: 15, MeanVolume: 1.38},
	{Name: "50-59", DMin: 50, DMax: 59, HMin: 12, HMax: 17, MeanVolume: 2.05},
	{Name: "60-99", DMin: 60, DMax: 99, HMin: 13, HMax: 19, MeanVolume: 3.00},
	{Name: "100UP", DMin: 100, DMax: 200, HMin: 17, HMax: 23, MeanVolume: 9.65},
}

// standardClass returns the standard bounds for name.
func standardClass(name string) (ClassSpec, bool) {
	for _, c := range StandardClasses {
		if c.Name == name {
			return c, true
		}
	}
	return ClassSpec{}, false
}

// Defaults returns a plot spec with every standard class at the default
// target and tolerance and every species at 0%.
func Defaults() *PlotSpec {
	p := &PlotSpec{Name: DefaultPlotName}
	p.Classes = make([]ClassSpec, 0, len(StandardClasses))
	for _, c := range StandardClasses {
		c.TargetVolume = DefaultTargetVolume
		c.Tolerance = DefaultTolerance
		p.Classes = append(p.Classes, c)
	}
	p.ApplyDefaults()
	return p
}

// ApplyDefaults fills unset fields. Classes naming a standard class inherit
// its bounds when the file gives none (fixed-bounds mode); explicit bounds
// are kept (variable-bounds mode). Every catalog species missing from a
// class map is added at 0%.
func (p *PlotSpec) ApplyDefaults() {
	if p.Name == "" {
		p.Name = DefaultPlotName
	}
	if p.MaxIterations == 0 {
		p.MaxIterations = DefaultMaxIterations
	}
	if p.SampleAttempts == 0 {
		p.SampleAttempts = DefaultSampleAttempts
	}
	if p.SpeciesPolicy == "" {
		p.SpeciesPolicy = PolicySplitRemainder
	}
	if p.MemberSelection == "" {
		p.MemberSelection = MemberByCount
	}
	if len(p.Species) == 0 {
		p.Species = append([]string(nil), StandardSpecies...)
	}

	for i := range p.Classes {
		c := &p.Classes[i]
		if std, ok := standardClass(c.Name); ok {
			if c.DMin == 0 && c.DMax == 0 {
				c.DMin, c.DMax = std.DMin, std.DMax
			}
			if c.HMin == 0 && c.HMax == 0 {
				c.HMin, c.HMax = std.HMin, std.HMax
			}
			if c.MeanVolume == 0 {
				c.MeanVolume = std.MeanVolume
			}
		}
		if c.Species == nil {
			c.Species = make(map[string]int, len(p.Species))
		}
		for _, name := range p.Species {
			if _, ok := c.Species[name]; !ok {
				c.Species[name] = 0
			}
		}
	}
}

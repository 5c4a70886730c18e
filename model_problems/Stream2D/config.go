package Stream2D

// Config collects the tunable constants of the panel model and its wake
type Config struct {
	WakeLength            float64 `yaml:"WakeLength"`            // Wake extent downstream of the trailing edge, in chords
	WakeProgressionFactor float64 `yaml:"WakeProgressionFactor"` // Growth of each wake panel over the previous one
	AdjustFirstWakePanel  bool    `yaml:"AdjustFirstWakePanel"`
	FirstWakePanelLength  float64 `yaml:"FirstWakePanelLength"`
	MaxWakeNodes          int     `yaml:"MaxWakeNodes"`
	WakeStartOffset       float64 `yaml:"WakeStartOffset"` // Distance of the first wake node from the trailing edge midpoint
	SurfaceOffset         float64 `yaml:"SurfaceOffset"`   // Sampling step off the sheet, a fraction of the mean adjacent panel length
	StagnationTolerance   float64 `yaml:"StagnationTolerance"`
	MaxConditionNumber    float64 `yaml:"MaxConditionNumber"`
	KinematicViscosity    float64 `yaml:"KinematicViscosity"` // Used by the Blasius estimate
}

func DefaultConfig() Config {
	return Config{
		WakeLength:            1.5,
		WakeProgressionFactor: 1.1,
		AdjustFirstWakePanel:  true,
		FirstWakePanelLength:  0.01,
		MaxWakeNodes:          100,
		WakeStartOffset:       0.001,
		SurfaceOffset:         0.1,
		StagnationTolerance:   0,
		MaxConditionNumber:    1.e14,
		KinematicViscosity:    1.e-5,
	}
}

// withDefaults fills zero values so a partially specified Config is usable
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WakeLength <= 0 {
		c.WakeLength = d.WakeLength
	}
	if c.WakeProgressionFactor <= 0 {
		c.WakeProgressionFactor = d.WakeProgressionFactor
	}
	if c.FirstWakePanelLength <= 0 {
		c.FirstWakePanelLength = d.FirstWakePanelLength
	}
	if c.MaxWakeNodes <= 0 {
		c.MaxWakeNodes = d.MaxWakeNodes
	}
	if c.WakeStartOffset <= 0 {
		c.WakeStartOffset = d.WakeStartOffset
	}
	if c.SurfaceOffset <= 0 {
		c.SurfaceOffset = d.SurfaceOffset
	}
	if c.StagnationTolerance < 0 {
		c.StagnationTolerance = d.StagnationTolerance
	}
	if c.MaxConditionNumber <= 0 {
		c.MaxConditionNumber = d.MaxConditionNumber
	}
	if c.KinematicViscosity <= 0 {
		c.KinematicViscosity = d.KinematicViscosity
	}
	return c
}

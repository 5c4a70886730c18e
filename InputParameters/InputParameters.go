package InputParameters

import (
	"fmt"
	"math"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/stream2d/model_problems/Stream2D"
)

// Parameters obtained from the YAML input file
type StreamParameters struct {
	Title        string         `yaml:"Title"`
	Foil         string         `yaml:"Foil"` // NACA 4 digit designation or a .dat coordinate file
	NodesPerSide int            `yaml:"NodesPerSide"`
	ClosedTE     bool           `yaml:"ClosedTE"`
	Alpha        []float64      `yaml:"Alpha"`      // Explicit list of incidences in degrees
	AlphaSweep   []float64      `yaml:"AlphaSweep"` // Start, end, step in degrees
	Qinf         float64        `yaml:"Qinf"`
	Viscous      bool           `yaml:"Viscous"`
	BlasiusCoef  float64        `yaml:"BlasiusCoef"`
	Viscosity    float64        `yaml:"Viscosity"`
	Wake         WakeParameters `yaml:"Wake"`
}

type WakeParameters struct {
	Length            float64 `yaml:"Length"`
	ProgressionFactor float64 `yaml:"ProgressionFactor"`
	FirstPanelLength  float64 `yaml:"FirstPanelLength"` // Zero matches the trailing edge panels
	MaxNodes          int     `yaml:"MaxNodes"`
	XMax              float64 `yaml:"XMax"`
}

func (ip *StreamParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if len(ip.Foil) == 0 {
		ip.Foil = "0012"
	}
	if ip.NodesPerSide == 0 {
		ip.NodesPerSide = 60
	}
	if ip.Qinf == 0 {
		ip.Qinf = 1
	}
	if ip.BlasiusCoef == 0 {
		ip.BlasiusCoef = 1
	}
	return ip.validate()
}

func (ip *StreamParameters) validate() (err error) {
	if ip.NodesPerSide < 2 {
		return fmt.Errorf("NodesPerSide must be at least 2, have %d", ip.NodesPerSide)
	}
	if n := len(ip.AlphaSweep); n != 0 {
		if n != 3 {
			return fmt.Errorf("AlphaSweep needs [start, end, step], have %v", ip.AlphaSweep)
		}
		if ip.AlphaSweep[2] == 0 || (ip.AlphaSweep[1]-ip.AlphaSweep[0])*ip.AlphaSweep[2] < 0 {
			return fmt.Errorf("AlphaSweep step %v never reaches %v", ip.AlphaSweep[2], ip.AlphaSweep[1])
		}
	}
	if ip.Wake.ProgressionFactor < 0 || ip.Wake.Length < 0 {
		return fmt.Errorf("wake length and progression factor must be positive")
	}
	return
}

// IsNACA is true when Foil names a generated section rather than a file
func (ip *StreamParameters) IsNACA() bool {
	name := strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(ip.Foil)), "NACA")
	name = strings.TrimSpace(name)
	if len(name) != 4 {
		return false
	}
	for _, c := range name {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// NACADesignation returns the four digits of a generated section
func (ip *StreamParameters) NACADesignation() string {
	return strings.TrimSpace(strings.TrimPrefix(strings.ToUpper(strings.TrimSpace(ip.Foil)), "NACA"))
}

// Alphas merges the explicit list with the sweep, in input order
func (ip *StreamParameters) Alphas() (alphas []float64) {
	alphas = append(alphas, ip.Alpha...)
	if len(ip.AlphaSweep) == 3 {
		start, end, step := ip.AlphaSweep[0], ip.AlphaSweep[1], ip.AlphaSweep[2]
		n := int(math.Floor((end-start)/step+1.e-9)) + 1
		for i := 0; i < n; i++ {
			alphas = append(alphas, start+float64(i)*step)
		}
	}
	if len(alphas) == 0 {
		alphas = []float64{0}
	}
	return
}

// SolverConfig overlays the wake and viscous settings on the solver defaults
func (ip *StreamParameters) SolverConfig() (cfg Stream2D.Config) {
	cfg = Stream2D.DefaultConfig()
	if ip.Wake.Length > 0 {
		cfg.WakeLength = ip.Wake.Length
	}
	if ip.Wake.ProgressionFactor > 0 {
		cfg.WakeProgressionFactor = ip.Wake.ProgressionFactor
	}
	if ip.Wake.FirstPanelLength > 0 {
		cfg.AdjustFirstWakePanel = false
		cfg.FirstWakePanelLength = ip.Wake.FirstPanelLength
	}
	if ip.Wake.MaxNodes > 0 {
		cfg.MaxWakeNodes = ip.Wake.MaxNodes
	}
	if ip.Viscosity > 0 {
		cfg.KinematicViscosity = ip.Viscosity
	}
	return
}

func (ip *StreamParameters) Print() {
	cfg := ip.SolverConfig()
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Foil\n", ip.Foil)
	fmt.Printf("[%d]\t\t\t= Nodes Per Side\n", ip.NodesPerSide)
	fmt.Printf("[%v]\t\t\t= Closed TE\n", ip.ClosedTE)
	fmt.Printf("%v\t= Alpha\n", ip.Alphas())
	fmt.Printf("%8.5f\t\t= Qinf\n", ip.Qinf)
	if ip.Viscous {
		fmt.Printf("%8.5f\t\t= Blasius Coefficient\n", ip.BlasiusCoef)
		fmt.Printf("%8.2e\t\t= Viscosity\n", cfg.KinematicViscosity)
	}
	fmt.Printf("%8.5f\t\t= Wake Length\n", cfg.WakeLength)
	fmt.Printf("%8.5f\t\t= Wake Progression Factor\n", cfg.WakeProgressionFactor)
	if ip.Wake.XMax > 0 {
		fmt.Printf("%8.5f\t\t= Wake XMax\n", ip.Wake.XMax)
	}
}

/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/notargets/stream2d/InputParameters"
	"github.com/notargets/stream2d/geometry2D"
	"github.com/notargets/stream2d/model_problems/Stream2D"
	"github.com/notargets/stream2d/readfiles"
	"github.com/notargets/stream2d/utils"
)

type AnalysisResult struct {
	Alpha         float64
	Coefficients  Stream2D.Coefficients
	NWakeNodes    int
	WakeTruncated bool
	X, Cp         []float64
}

// AnalyzeCmd represents the analyze command
var AnalyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Alpha sweep of a single airfoil",
	Long: `
Builds the panel model of a NACA 4 digit section or a Selig / Lednicer
coordinate file and reports the force coefficients for each incidence,

stream2d analyze -I input.yaml -p cp.png`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			ip       *InputParameters.StreamParameters
			icFile   string
			plotFile string
		)
		icFile, _ = cmd.Flags().GetString("inputConditionsFile")
		plotFile, _ = cmd.Flags().GetString("plotFile")
		if ip, err = processInput(icFile); err != nil {
			return
		}
		if foil, _ := cmd.Flags().GetString("foil"); len(foil) != 0 {
			ip.Foil = foil
		}
		if viper.GetBool("verbose") {
			ip.Print()
		}
		_, err = RunAnalysis(ip, os.Stdout, plotFile)
		return
	},
}

func init() {
	rootCmd.AddCommand(AnalyzeCmd)
	AnalyzeCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- Foil\n\t- AlphaSweep")
	AnalyzeCmd.Flags().StringP("foil", "f", "", "NACA designation or .dat file, overrides the input file")
	AnalyzeCmd.Flags().StringP("plotFile", "p", "", "write the Cp curves to this PNG file")
}

func processInput(icFile string) (ip *InputParameters.StreamParameters, err error) {
	var data []byte
	ip = &InputParameters.StreamParameters{}
	if len(icFile) != 0 {
		if data, err = os.ReadFile(icFile); err != nil {
			err = fmt.Errorf("unable to read input file: %w", err)
			return
		}
	}
	if err = ip.Parse(data); err != nil {
		err = fmt.Errorf("parsing %s: %w", icFile, err)
	}
	return
}

func loadFoil(ip *InputParameters.StreamParameters) (f *geometry2D.Foil, err error) {
	if ip.IsNACA() {
		return geometry2D.NACA4(ip.NACADesignation(), ip.NodesPerSide, ip.ClosedTE)
	}
	return readfiles.ReadAirfoil(ip.Foil, viper.GetBool("verbose"))
}

// RunAnalysis solves the model once and superposes each incidence of the run
func RunAnalysis(ip *InputParameters.StreamParameters, out io.Writer, plotFile string) (results []AnalysisResult, err error) {
	var (
		foil *geometry2D.Foil
		s    = Stream2D.NewStream2D(ip.SolverConfig())
	)
	if foil, err = loadFoil(ip); err != nil {
		return
	}
	if err = s.SetFoil(foil); err != nil {
		return
	}
	if err = s.Solve(); err != nil {
		return
	}
	log.WithField("mem", utils.GetMemUsage()).Debug("influence matrix inverted")
	if alpha0, err := s.ZeroLiftAngle(); err == nil {
		fmt.Fprintf(out, "%s: %d nodes, zero lift angle %8.4f deg\n", foil.Name, s.NNodes(), alpha0)
	}
	fmt.Fprintf(out, "%8s %9s %9s %9s %9s %6s\n", "alpha", "Cl", "Cd", "Cm", "XCP", "wake")
	for _, alpha := range ip.Alphas() {
		if err = s.CalcSolution(alpha, ip.Qinf); err != nil {
			return
		}
		if err = s.MakeWakePanels(alpha, ip.Qinf, ip.Wake.XMax); err != nil {
			return
		}
		if ip.Viscous {
			if _, err = s.MakeBlasiusSigma(alpha, ip.Qinf, ip.BlasiusCoef, false); err != nil {
				return
			}
		} else {
			s.ResetViscousSolution()
		}
		r := AnalysisResult{
			Alpha:         alpha,
			NWakeNodes:    s.NWakeNodes(),
			WakeTruncated: s.WakeTruncated(),
		}
		if r.Coefficients, err = s.Coefficients(alpha, ip.Qinf); err != nil {
			return
		}
		r.X, r.Cp = s.CpDistribution(alpha, ip.Qinf)
		if r.WakeTruncated {
			log.WithField("alpha", alpha).Warn("wake truncated at the node limit")
		}
		c := r.Coefficients
		fmt.Fprintf(out, "%8.3f %9.5f %9.5f %9.5f %9.5f %6d\n", alpha, c.Cl, c.Cd, c.Cm, c.XCP, r.NWakeNodes)
		results = append(results, r)
	}
	if len(plotFile) != 0 {
		err = PlotCp(foil.Name, results, plotFile)
	}
	return
}

// PlotCp draws -Cp against x for every incidence, upper surface on top
func PlotCp(title string, results []AnalysisResult, fileName string) (err error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "-Cp"
	var lines []interface{}
	for _, r := range results {
		pts := make(plotter.XYs, len(r.X))
		for i := range r.X {
			pts[i].X = r.X[i]
			pts[i].Y = -r.Cp[i]
		}
		lines = append(lines, fmt.Sprintf("alpha %g", r.Alpha), pts)
	}
	if err = plotutil.AddLines(p, lines...); err != nil {
		return fmt.Errorf("plotting Cp: %w", err)
	}
	return p.Save(8*vg.Inch, 5*vg.Inch, fileName)
}

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
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/stream2d/geometry2D"
	"github.com/notargets/stream2d/model_problems/Stream2D"
)

// CylinderCmd represents the cylinder command
var CylinderCmd = &cobra.Command{
	Use:   "cylinder",
	Short: "Compare the surface speed on a circle with the potential flow solution",
	Long: `
Solves the unit diameter circle at zero incidence and reports the largest
deviation of the surface speed from 2 sin(phi),

stream2d cylinder -n 241`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		n, _ := cmd.Flags().GetInt("nodes")
		_, err = RunCylinder(n, os.Stdout)
		return
	},
}

func init() {
	rootCmd.AddCommand(CylinderCmd)
	CylinderCmd.Flags().IntP("nodes", "n", 241, "number of nodes on the circle, the first and last coincide")
}

func RunCylinder(nNodes int, out io.Writer) (maxErr float64, err error) {
	var (
		f *geometry2D.Foil
		s = Stream2D.NewStream2D(Stream2D.DefaultConfig())
	)
	if f, err = geometry2D.Circle(nNodes); err != nil {
		return
	}
	if err = s.SetFoil(f); err != nil {
		return
	}
	if err = s.Solve(); err != nil {
		return
	}
	if err = s.CalcSolution(0, 1); err != nil {
		return
	}
	N := s.NNodes()
	iMax := 0
	for i := 1; i < N-1; i++ {
		phi := 2 * math.Pi * float64(i) / float64(N-1)
		if e := math.Abs(s.SurfaceVelocity(0, 1, i) - 2*math.Sin(phi)); e > maxErr {
			maxErr, iMax = e, i
		}
	}
	fmt.Fprintf(out, "circle, %d nodes: max |V - 2 sin(phi)| = %10.3e at node %d\n", N, maxErr, iMax)
	return
}

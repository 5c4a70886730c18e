package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/stream2d/geometry2D"
)

// ReadAirfoil reads a coordinate file in Selig or Lednicer format
func ReadAirfoil(filename string, verbose bool) (f *geometry2D.Foil, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading airfoil file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		err = fmt.Errorf("unable to open file %s: %w", filename, err)
		return
	}
	defer file.Close()
	if f, err = ParseAirfoil(file); err != nil {
		err = fmt.Errorf("reading %s: %w", filename, err)
		return
	}
	if verbose {
		fmt.Printf("%q: %d nodes, sharp trailing edge = %v\n", f.Name, f.N(), f.IsSharpTE())
	}
	return
}

// ParseAirfoil accepts the Selig layout, one contour from the upper trailing
// edge around the nose to the lower trailing edge, and the Lednicer layout
// with a point count line followed by both surfaces listed from the nose.
func ParseAirfoil(r io.Reader) (f *geometry2D.Foil, err error) {
	var (
		reader = bufio.NewReader(r)
		name   string
		pts    []r2.Vec
		blocks [][]r2.Vec
	)
	if name, err = readName(reader); err != nil {
		return
	}
	var cur []r2.Vec
	for {
		line, done := nextLine(reader)
		if isBlank(line) {
			if len(cur) != 0 {
				blocks = append(blocks, cur)
				cur = nil
			}
		} else {
			var p r2.Vec
			if _, err = fmt.Sscanf(strings.TrimSpace(line), "%g %g", &p.X, &p.Y); err != nil {
				err = fmt.Errorf("unable to read coordinates from line: [%s]", line)
				return
			}
			cur = append(cur, p)
		}
		if done {
			break
		}
	}
	if len(cur) != 0 {
		blocks = append(blocks, cur)
	}
	for _, b := range blocks {
		pts = append(pts, b...)
	}
	if len(pts) == 0 {
		err = fmt.Errorf("no coordinates found")
		return
	}
	if isLednicerHeader(pts[0]) {
		nu, nl := int(pts[0].X), int(pts[0].Y)
		body := pts[1:]
		if len(body) != nu+nl {
			err = fmt.Errorf("lednicer header announces %d+%d points, found %d", nu, nl, len(body))
			return
		}
		pts = lednicerToContour(body[:nu], body[nu:])
		log.WithFields(log.Fields{"upper": nu, "lower": nl}).Debug("lednicer airfoil")
	}
	return geometry2D.NewFoil(name, dedupe(pts))
}

func readName(reader *bufio.Reader) (name string, err error) {
	for {
		line, done := nextLine(reader)
		if !isBlank(line) {
			name = strings.TrimSpace(line)
			return
		}
		if done {
			err = fmt.Errorf("early end of file")
			return
		}
	}
}

func nextLine(reader *bufio.Reader) (line string, done bool) {
	var err error
	line, err = reader.ReadString('\n')
	done = err != nil
	line = strings.TrimRight(line, "\r\n")
	return
}

func isBlank(line string) bool { return len(strings.TrimSpace(line)) == 0 }

// Point counts are never valid unit chord coordinates
func isLednicerHeader(p r2.Vec) bool {
	return p.X > 1.5 && p.Y > 1.5 && p.X == float64(int(p.X)) && p.Y == float64(int(p.Y))
}

func lednicerToContour(upper, lower []r2.Vec) (pts []r2.Vec) {
	pts = make([]r2.Vec, 0, len(upper)+len(lower))
	for i := len(upper) - 1; i >= 0; i-- {
		pts = append(pts, upper[i])
	}
	start := 0
	if len(lower) > 0 && len(upper) > 0 && lower[0] == upper[0] {
		start = 1
	}
	return append(pts, lower[start:]...)
}

func dedupe(pts []r2.Vec) (out []r2.Vec) {
	out = make([]r2.Vec, 0, len(pts))
	for i, p := range pts {
		if i > 0 && p == pts[i-1] {
			continue
		}
		out = append(out, p)
	}
	return
}

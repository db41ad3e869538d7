// Package export writes finished layouts as plain text or YAML documents.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bmalloy0/MapGenerator/internal/world"
)

// Row returns one y-row of a floor as display characters, x ascending.
func Row(l world.Layout, floor, y int) string {
	var b strings.Builder
	b.Grow(l.Width())
	for x := 0; x < l.Width(); x++ {
		b.WriteRune(l.At(world.Point{Floor: floor, X: x, Y: y}).Rune())
	}
	return b.String()
}

// Rows returns every row of a floor.
func Rows(l world.Layout, floor int) []string {
	rows := make([]string, l.Depth())
	for y := range rows {
		rows[y] = Row(l, floor, y)
	}
	return rows
}

// Present lists the kinds that occur anywhere in the layout, in declaration
// order.
func Present(l world.Layout) []world.TileKind {
	seen := make([]bool, len(world.AllTileKinds()))
	for f := 0; f < l.Floors(); f++ {
		for x := 0; x < l.Width(); x++ {
			for y := 0; y < l.Depth(); y++ {
				seen[l.At(world.Point{Floor: f, X: x, Y: y})] = true
			}
		}
	}
	var kinds []world.TileKind
	for _, k := range world.AllTileKinds() {
		if seen[k] && k != world.Blank {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// WriteText renders every floor under a header, followed by a legend of the
// kinds in use.
func WriteText(w io.Writer, l world.Layout) error {
	bw := bufio.NewWriter(w)
	for f := 0; f < l.Floors(); f++ {
		if f > 0 {
			bw.WriteByte('\n')
		}
		fmt.Fprintf(bw, "Floor %d (%dx%d)\n", f+1, l.Width(), l.Depth())
		for y := 0; y < l.Depth(); y++ {
			bw.WriteString(strings.TrimRight(Row(l, f, y), " "))
			bw.WriteByte('\n')
		}
	}

	bw.WriteString("\nLegend\n")
	for _, k := range Present(l) {
		fmt.Fprintf(bw, "  %c  %s\n", k.Rune(), k)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write map: %w", err)
	}
	return nil
}

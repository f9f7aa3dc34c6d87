package main

import (
	"fmt"

	"github.com/philipparndt/arcademia/pkg/analysis"
	"github.com/philipparndt/arcademia/pkg/loader"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display measurements of a model file",
	Long:  "Show vertex and triangle counts, dimensions, surface area, volume and edge statistics of an STL, OBJ or OpenSCAD file.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	m, err := loader.Load(cmd.Context(), filename)
	if err != nil {
		return err
	}
	stats := analysis.Analyze(m)
	edges := analysis.AnalyzeEdges(m)
	bbox := m.BoundingBox()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Model Information")
	fmt.Fprintln(out, "=================")
	fmt.Fprintf(out, "Name: %s\n", m.Name)
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "Format: %s\n\n", stats.Format)

	fmt.Fprintln(out, "Mesh:")
	fmt.Fprintf(out, "  Vertices: %d\n", stats.VertexCount)
	fmt.Fprintf(out, "  Triangles: %d\n", stats.TriangleCount)
	fmt.Fprintf(out, "  Degenerate triangles: %d\n", stats.DegenerateCount)
	fmt.Fprintf(out, "  Watertight: %t\n\n", stats.Watertight)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(bbox.Min))
	fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(bbox.Max))
	fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(stats.Center))

	fmt.Fprintln(out, "Dimensions:")
	fmt.Fprintf(out, "  Width (X): %.6f units\n", stats.Width)
	fmt.Fprintf(out, "  Height (Y): %.6f units\n", stats.Height)
	fmt.Fprintf(out, "  Depth (Z): %.6f units\n", stats.Depth)
	fmt.Fprintf(out, "  Diagonal: %.6f units\n", bbox.Diagonal())
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n", stats.SurfaceArea)
	if stats.VolumeAvailable {
		fmt.Fprintf(out, "  Volume: %.6f cubic units\n\n", stats.Volume)
	} else {
		fmt.Fprintf(out, "  Volume: n/a (not a closed solid)\n\n")
	}

	fmt.Fprintln(out, "Edges:")
	fmt.Fprintf(out, "  Count: %d\n", edges.EdgeCount)
	fmt.Fprintf(out, "  Boundary: %d\n", edges.BoundaryEdges)
	fmt.Fprintf(out, "  Minimum: %.6f units\n", edges.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", edges.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n", edges.AvgEdgeLength)
	return nil
}

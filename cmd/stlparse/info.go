package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/philipparndt/stlparse/internal/output"
	"github.com/philipparndt/stlparse/pkg/analysis"
	"github.com/philipparndt/stlparse/pkg/stl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newInfoCmd(v *viper.Viper) *cobra.Command {
	var (
		edges  int
		asYAML bool
	)

	infoCmd := &cobra.Command{
		Use:   "info [file]",
		Short: "Display general information about an STL file",
		Long:  "Parse a whole STL file and show, per solid, its face count, bounding box, dimensions, surface area and edge statistics.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if asYAML {
				return runInfoYAML(cmd, args[0], cfg)
			}
			return runInfo(cmd, args[0], cfg, edges)
		},
	}
	infoCmd.Flags().IntVarP(&edges, "edges", "e", 0, "Number of longest edges to list")
	infoCmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the summary as YAML")
	return infoCmd
}

// infoReport is the YAML form of the info output.
type infoReport struct {
	File     string              `yaml:"file"`
	Format   stl.Format          `yaml:"format"`
	Warnings []string            `yaml:"warnings,omitempty"`
	Solids   []*analysis.Summary `yaml:"solids"`
}

func parseForInfo(cmd *cobra.Command, filename string, cfg *config) (*stl.Result, error) {
	diag := output.NewDiagnostics(cmd.ErrOrStderr(), cfg.NoColor)

	result, err := stl.ParseFile(cmd.Context(), filename,
		stl.WithFormat(cfg.Format),
		stl.WithDiscardExcessVertices(cfg.Discard))
	if result != nil {
		for _, w := range result.Warnings {
			diag.Warning(w)
		}
	}
	return result, err
}

func runInfoYAML(cmd *cobra.Command, filename string, cfg *config) error {
	result, err := parseForInfo(cmd, filename, cfg)
	if err != nil {
		return err
	}

	report := infoReport{
		File:     filename,
		Format:   result.Format,
		Warnings: result.Warnings,
	}
	for _, model := range result.Models {
		report.Solids = append(report.Solids, analysis.Summarize(model))
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runInfo(cmd *cobra.Command, filename string, cfg *config, edges int) error {
	result, err := parseForInfo(cmd, filename, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "STL File Information")
	fmt.Fprintln(out, "====================")
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "Format: %s\n", result.Format)
	fmt.Fprintf(out, "Solids: %d\n", len(result.Models))

	for _, model := range result.Models {
		s := analysis.Summarize(model)

		fmt.Fprintln(out)
		if s.Name != "" {
			fmt.Fprintf(out, "Solid: %s\n", s.Name)
		} else {
			fmt.Fprintln(out, "Solid: <no name>")
		}

		fmt.Fprintf(out, "  Faces: %d\n", s.FaceCount)
		if s.DeclaredFaces != nil {
			fmt.Fprintf(out, "  Declared Faces: %d\n", *s.DeclaredFaces)
		}
		fmt.Fprintf(out, "  Surface Area: %.6f square units\n", s.SurfaceArea)

		if s.FaceCount == 0 {
			continue
		}

		fmt.Fprintln(out, "  Bounding Box:")
		fmt.Fprintf(out, "    Min: %s\n", analysis.FormatVector(s.BoundingBox.Min))
		fmt.Fprintf(out, "    Max: %s\n", analysis.FormatVector(s.BoundingBox.Max))
		fmt.Fprintf(out, "    Center: %s\n", analysis.FormatVector(s.BoundingBox.Center()))

		fmt.Fprintln(out, "  Dimensions:")
		fmt.Fprintf(out, "    Width (X): %.6f units\n", s.Dimensions.X)
		fmt.Fprintf(out, "    Depth (Y): %.6f units\n", s.Dimensions.Y)
		fmt.Fprintf(out, "    Height (Z): %.6f units\n", s.Dimensions.Z)
		fmt.Fprintf(out, "    Diagonal: %.6f units\n", s.BoundingBox.Diagonal())

		fmt.Fprintln(out, "  Edge Lengths:")
		fmt.Fprintf(out, "    Minimum: %.6f units\n", s.MinEdgeLength)
		fmt.Fprintf(out, "    Maximum: %.6f units\n", s.MaxEdgeLength)
		fmt.Fprintf(out, "    Average: %.6f units\n", s.AvgEdgeLength)

		if edges > 0 {
			fmt.Fprintln(out, "  Longest Edges:")
			for _, e := range s.LongestEdges(edges) {
				fmt.Fprintf(out, "    %.6f face %d %s -> %s\n", e.Length, e.Face,
					analysis.FormatVector(e.Start), analysis.FormatVector(e.End))
			}
		}
	}
	return nil
}

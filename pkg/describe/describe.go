// Package describe turns mesh statistics into short spoken-style sentences
// for a single model or a whole scene. Output is deterministic and never an
// error: anomalies such as empty or open meshes become part of the text.
package describe

import (
	"strconv"
	"strings"

	"github.com/philipparndt/arcademia/pkg/analysis"
	"github.com/philipparndt/arcademia/pkg/mesh"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultPrecision is the number of decimals used for lengths, areas and volumes
const DefaultPrecision = 2

// MaxPrecision bounds the configurable number of decimals
const MaxPrecision = 6

// NoModelsSentence is the whole description of an empty scene
const NoModelsSentence = "No models are currently displayed."

// Describer renders statistics as English sentences
type Describer struct {
	precision int
	numberFmt string
	printer   *message.Printer
}

// New creates a describer rounding measurements to the given number of
// decimals. Values outside 0..MaxPrecision are clamped.
func New(precision int) *Describer {
	if precision < 0 {
		precision = 0
	}
	if precision > MaxPrecision {
		precision = MaxPrecision
	}
	return &Describer{
		precision: precision,
		numberFmt: "%." + strconv.Itoa(precision) + "f",
		printer:   message.NewPrinter(language.English),
	}
}

// Precision returns the number of decimals used for measurements
func (d *Describer) Precision() int {
	return d.precision
}

// Default returns a describer with DefaultPrecision
func Default() *Describer {
	return New(DefaultPrecision)
}

// DescribeModel describes one model. Sentences always come in the order
// identity, complexity, dimensions, area, solidity.
func (d *Describer) DescribeModel(name string, stats analysis.MeshStats) []string {
	sentences := []string{d.identity(name, stats.Format)}

	if stats.Empty {
		return append(sentences, "This model is empty; it has no vertices to describe.")
	}

	sentences = append(sentences,
		d.printer.Sprintf("The model contains %s and %s.",
			d.count(stats.VertexCount, "vertex", "vertices"),
			d.count(stats.TriangleCount, "triangular face", "triangular faces")),
		d.printer.Sprintf("Its dimensions are width %s units, height %s units, and depth %s units.",
			d.number(stats.Width), d.number(stats.Height), d.number(stats.Depth)),
		d.printer.Sprintf("The total surface area is %s square units.", d.number(stats.SurfaceArea)),
	)

	if stats.Watertight && stats.VolumeAvailable {
		sentences = append(sentences,
			d.printer.Sprintf("This is a watertight solid with a volume of %s cubic units.", d.number(stats.Volume)))
	} else {
		sentences = append(sentences, "This model is not a closed solid, so volume cannot be calculated.")
	}

	return sentences
}

// DescribeScene describes every model of a scene in condensed form: the
// model count, the aggregate mesh size and one dimension sentence per model.
func (d *Describer) DescribeScene(summary analysis.SceneSummary) []string {
	if summary.ModelCount() == 0 {
		return []string{NoModelsSentence}
	}

	sentences := make([]string, 0, summary.ModelCount()+2)
	sentences = append(sentences,
		d.printer.Sprintf("This scene contains %s.", d.count(summary.ModelCount(), "model", "models")),
		d.printer.Sprintf("Together they have %s and %s.",
			d.count(summary.TotalVertices(), "vertex", "vertices"),
			d.count(summary.TotalTriangles(), "triangular face", "triangular faces")),
	)

	for _, m := range summary.Models {
		if m.Stats.Empty {
			sentences = append(sentences, d.printer.Sprintf("%s is empty.", m.Name))
			continue
		}
		sentences = append(sentences, d.printer.Sprintf("%s measures %s by %s by %s units.",
			m.Name, d.number(m.Stats.Width), d.number(m.Stats.Height), d.number(m.Stats.Depth)))
	}

	return sentences
}

// Join concatenates sentences into a single text for speech output
func Join(sentences []string) string {
	return strings.Join(sentences, " ")
}

func (d *Describer) identity(name string, format mesh.Format) string {
	if format == mesh.FormatUnknown {
		return d.printer.Sprintf("This is %s, a model of unknown format.", name)
	}
	f := format.String()
	return d.printer.Sprintf("This is %s, %s %s model.", name, article(f), f)
}

func (d *Describer) count(n int, singular, plural string) string {
	if n == 1 {
		return "1 " + singular
	}
	return d.printer.Sprintf("%d %s", n, plural)
}

func (d *Describer) number(v float64) string {
	return d.printer.Sprintf(d.numberFmt, v)
}

// article picks "a" or "an" for an acronym spelled letter by letter
func article(acronym string) string {
	if acronym == "" {
		return "a"
	}
	if strings.ContainsRune("AEFHILMNORSX", rune(acronym[0])) {
		return "an"
	}
	return "a"
}

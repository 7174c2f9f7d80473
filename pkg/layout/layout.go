package layout

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aeolus-osc/aeolus-go/pkg/definition"
	"github.com/aeolus-osc/aeolus-go/pkg/route"
)

// Grid dimensions.
const (
	Columns = 8

	// Rows is the minimum grid height. Taller instruments shrink the row
	// height so the surface keeps fitting.
	Rows = 24

	// Presets is the number of preset controls on the bottom row.
	Presets = 14

	// controlsPerColumn is how many combination controls fit the width
	// of one button.
	controlsPerColumn = 4
)

// DocumentVersion identifies the document format.
const DocumentVersion = "1"

// Kind is the element type understood by the rendering client.
type Kind string

const (
	KindButton Kind = "Button"
	KindLabel  Kind = "Label"
)

// Button modes.
const (
	ModeToggle  = "toggle"
	ModeContact = "contact"
)

// Bounds is a rectangle in surface fractions. It encodes as [x, y, w, h].
type Bounds struct {
	X, Y, W, H float64
}

// MarshalJSON implements json.Marshaler.
func (b Bounds) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.X, b.Y, b.W, b.H})
}

// MarshalYAML implements yaml.Marshaler.
func (b Bounds) MarshalYAML() (any, error) {
	return []float64{b.X, b.Y, b.W, b.H}, nil
}

// Style colors an element.
type Style struct {
	Fill   string `json:"backgroundColor" yaml:"fill"`
	Stroke string `json:"strokeColor" yaml:"stroke"`
}

// Element is one widget of the surface.
type Element struct {
	Name    string `json:"name" yaml:"name"`
	Kind    Kind   `json:"type" yaml:"type"`
	Bounds  Bounds `json:"bounds" yaml:"bounds,flow"`
	Style   *Style `json:"style,omitempty" yaml:"style,omitempty"`
	Text    string `json:"label,omitempty" yaml:"label,omitempty"`
	Mode    string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
	Max     *int   `json:"max,omitempty" yaml:"max,omitempty"`
	Action  string `json:"action,omitempty" yaml:"action,omitempty"`
}

// Document is a derived surface.
type Document struct {
	Instrument string    `json:"instrument" yaml:"instrument"`
	Version    string    `json:"version" yaml:"version"`
	Elements   []Element `json:"elements" yaml:"elements"`
}

// Palette maps button kinds to styles.
var Palette = map[definition.ButtonKind]Style{
	definition.KindStop:    {Fill: "#f2e6c9", Stroke: "#6b4a2b"},
	definition.KindTremul:  {Fill: "#c9dcf2", Stroke: "#2b4a6b"},
	definition.KindCoupler: {Fill: "#f2c9c9", Stroke: "#6b2b2b"},
}

var controlStyle = Style{Fill: "#d9d9d9", Stroke: "#404040"}

// Derive builds the surface for inst. The result depends on inst alone.
func Derive(inst *definition.Instrument) *Document {
	doc := &Document{
		Instrument: inst.Label,
		Version:    DocumentVersion,
	}

	rows := gridRows(inst)
	cell := func(col, row, w, h int) Bounds {
		return Bounds{
			X: float64(col) / Columns,
			Y: float64(row) / float64(rows),
			W: float64(w) / Columns,
			H: float64(h) / float64(rows),
		}
	}

	row := 0
	for _, g := range inst.Groups {
		doc.Elements = append(doc.Elements, Element{
			Name:   fmt.Sprintf("group%d", g.Index),
			Kind:   KindLabel,
			Bounds: cell(0, row, Columns, 1),
			Text:   g.Label,
		})
		row++

		for i, b := range g.Buttons {
			col := i % Columns
			if i > 0 && col == 0 {
				row += 2
			}
			style := Palette[b.Kind]
			doc.Elements = append(doc.Elements, Element{
				Name:    fmt.Sprintf("g%db%d", g.Index, b.Index),
				Kind:    KindButton,
				Bounds:  cell(col, row, 1, 2),
				Style:   &style,
				Text:    DisplayText(b.Label),
				Mode:    ModeToggle,
				Address: route.ButtonAddress(g.Index, b.Index),
			})
		}
		if len(g.Buttons) > 0 {
			row += 2
		}
	}

	doc.Elements = append(doc.Elements, controls(len(inst.Groups), rows)...)
	return doc
}

// gridRows returns the grid height: a label row plus two rows per line of
// buttons for each group, and the control row.
func gridRows(inst *definition.Instrument) int {
	rows := 1
	for _, g := range inst.Groups {
		rows += 1 + 2*((len(g.Buttons)+Columns-1)/Columns)
	}
	return max(rows, Rows)
}

// controls returns the combination action row at the bottom of a grid of
// the given height.
func controls(groups, rows int) []Element {
	slot := 0
	next := func() Bounds {
		b := Bounds{
			X: float64(slot) / (Columns * controlsPerColumn),
			Y: float64(rows-1) / float64(rows),
			W: 1.0 / (Columns * controlsPerColumn),
			H: 1.0 / float64(rows),
		}
		slot++
		return b
	}

	style := controlStyle
	out := []Element{
		{
			Name:   "set",
			Kind:   KindButton,
			Bounds: next(),
			Style:  &style,
			Text:   "S",
			Mode:   ModeToggle,
			Action: "set",
		},
		{
			Name:    "cancel",
			Kind:    KindButton,
			Bounds:  next(),
			Style:   &style,
			Text:    "0",
			Mode:    ModeContact,
			Address: route.CancelAddress,
			Max:     &groups,
		},
	}
	for n := 1; n <= Presets; n++ {
		out = append(out, Element{
			Name:   fmt.Sprintf("preset%d", n),
			Kind:   KindButton,
			Bounds: next(),
			Style:  &style,
			Text:   fmt.Sprint(n),
			Mode:   ModeContact,
			Action: fmt.Sprintf("preset %d", n),
		})
	}
	return out
}

// DisplayText compacts a button label for the surface.
func DisplayText(label string) string {
	s := strings.ReplaceAll(label, "\n", " ")
	return strings.TrimPrefix(s, "- ")
}

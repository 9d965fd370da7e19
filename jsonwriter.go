package glyphcode

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/ledgerline/glyphcode/render"
)

func init() {
	RegisterWriter(FormatJSON, func() Writer {
		return JSONWriter{}
	})
}

// JSONWriter writes a plan as a JSON document with hex colors.
type JSONWriter struct{}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
}

type jsonLogo struct {
	jsonRect
	Mark string `json:"mark,omitempty"`
}

// PlanDocument is the JSON form of a render plan.
type PlanDocument struct {
	Size       float64    `json:"size"`
	Dimension  int        `json:"dimension"`
	CellSize   float64    `json:"cell_size"`
	Background jsonRect   `json:"background"`
	Cells      []jsonRect `json:"cells"`
	Logo       *jsonLogo  `json:"logo,omitempty"`

	// Rows holds one string per matrix row, '1' for a cell left visible
	// by the logo patch.
	Rows []string `json:"rows"`
}

func toJSONRect(r render.Rect) jsonRect {
	return jsonRect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Fill: HexColor(r.Color)}
}

// NewPlanDocument converts plan to its JSON form.
func NewPlanDocument(plan *render.Plan) *PlanDocument {
	doc := &PlanDocument{
		Size:       plan.Size,
		Dimension:  plan.Dimension,
		CellSize:   plan.CellSize,
		Background: toJSONRect(plan.Background),
		Cells:      make([]jsonRect, 0, len(plan.Cells)),
		Rows:       strings.Split(strings.TrimSuffix(plan.Visible().StringWithChars("1", "0"), "\n"), "\n"),
	}
	for _, c := range plan.Cells {
		doc.Cells = append(doc.Cells, toJSONRect(c))
	}
	if !plan.Logo.Empty() {
		doc.Logo = &jsonLogo{jsonRect: toJSONRect(plan.Logo.Rect), Mark: plan.Logo.Mark}
	}
	return doc
}

// Write encodes plan as indented JSON.
func (JSONWriter) Write(w io.Writer, plan *render.Plan, _ *EncodeOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewPlanDocument(plan))
}

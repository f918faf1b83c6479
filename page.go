package invoiceform

// PageSize represents paper dimensions in centimeters.
type PageSize struct {
	Width  float64 // Width in centimeters.
	Height float64 // Height in centimeters.
}

// Standard paper sizes.
var (
	A3      = PageSize{Width: 29.7, Height: 42.0}
	A4      = PageSize{Width: 21.0, Height: 29.7}
	A5      = PageSize{Width: 14.8, Height: 21.0}
	Letter  = PageSize{Width: 21.59, Height: 27.94}
	Legal   = PageSize{Width: 21.59, Height: 35.56}
	Tabloid = PageSize{Width: 27.94, Height: 43.18}
)

// PageSizes maps the names accepted in configuration to paper sizes.
var PageSizes = map[string]PageSize{
	"A3":      A3,
	"A4":      A4,
	"A5":      A5,
	"LETTER":  Letter,
	"LEGAL":   Legal,
	"TABLOID": Tabloid,
}

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the default vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

// Margin represents page margins in centimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// PageConfig controls the geometry of the exported PDF page.
//
// A nil PageConfig or zero-value fields use the defaults: A4 paper,
// portrait orientation and no margin, so the captured image spans the
// full page width.
type PageConfig struct {
	// Size specifies the paper size. Defaults to A4.
	Size PageSize

	// Orientation specifies portrait or landscape. Defaults to Portrait.
	Orientation Orientation

	// Margin offsets the image from the page edges, in centimeters.
	Margin Margin

	// Title is stored in the PDF metadata. Defaults to "Invoice".
	Title string
}

// DefaultPageConfig returns a PageConfig with the defaults applied.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:        A4,
		Orientation: Portrait,
		Title:       "Invoice",
	}
}

// resolved returns a PageConfig with all zero values replaced by defaults.
func (p *PageConfig) resolved() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Title == "" {
		r.Title = d.Title
	}
	return r
}

// cmToPoints converts centimeters to PDF points (1/72 inch).
func cmToPoints(cm float64) float64 {
	return cm / 2.54 * 72
}

// paperDimensions returns the paper width and height in points,
// accounting for orientation.
func (p *PageConfig) paperDimensions() (width, height float64) {
	r := p.resolved()
	w := cmToPoints(r.Size.Width)
	h := cmToPoints(r.Size.Height)
	if r.Orientation == Landscape {
		return h, w
	}
	return w, h
}

// Geometry describes where the captured image sits on the page, in points.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	X, Y       float64
	Width      float64
	Height     float64
}

// imageGeometry fits an image of pxWidth × pxHeight pixels to the
// printable width of the page, scaling its height by the same factor.
func (p *PageConfig) imageGeometry(pxWidth, pxHeight int) Geometry {
	r := p.resolved()
	pw, ph := r.paperDimensions()
	left, right := cmToPoints(r.Margin.Left), cmToPoints(r.Margin.Right)
	w := pw - left - right
	return Geometry{
		PageWidth:  pw,
		PageHeight: ph,
		X:          left,
		Y:          cmToPoints(r.Margin.Top),
		Width:      w,
		Height:     float64(pxHeight) * w / float64(pxWidth),
	}
}

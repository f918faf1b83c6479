package invoiceform

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for image.DecodeConfig
	_ "image/png"

	"github.com/jung-kurt/gofpdf"
)

const captureImageName = "invoice"

// BuildPDF embeds a captured image into a single-page PDF.
//
// The image is scaled to the printable width of the page and its height
// follows the image's aspect ratio. The page keeps its fixed size, so an
// image taller than the page is clipped at the bottom edge.
// If pg is nil, [DefaultPageConfig] values are used.
func BuildPDF(img []byte, pg *PageConfig) (*Result, error) {
	if len(img) == 0 {
		return nil, ErrEmptyCapture
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("invoiceform: decoding captured image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, ErrEmptyCapture
	}

	var imageType string
	switch format {
	case "png":
		imageType = "PNG"
	case "jpeg":
		imageType = "JPG"
	default:
		return nil, fmt.Errorf("invoiceform: unsupported image format %q", format)
	}

	resolved := pg.resolved()
	geo := resolved.imageGeometry(cfg.Width, cfg.Height)
	if geo.Width <= 0 || geo.Y >= geo.PageHeight {
		return nil, fmt.Errorf("%w: %.0fx%.0fpt page", ErrMargins, geo.PageWidth, geo.PageHeight)
	}

	orientation := "P"
	if resolved.Orientation == Landscape {
		orientation = "L"
	}
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "pt",
		// Size is given in portrait order; gofpdf swaps it for "L".
		Size: gofpdf.SizeType{
			Wd: cmToPoints(resolved.Size.Width),
			Ht: cmToPoints(resolved.Size.Height),
		},
	})
	doc.SetTitle(resolved.Title, true)
	doc.SetCreator("invoiceform", true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	opts := gofpdf.ImageOptions{ImageType: imageType}
	doc.RegisterImageOptionsReader(captureImageName, opts, bytes.NewReader(img))
	doc.ImageOptions(captureImageName, geo.X, geo.Y, geo.Width, geo.Height, false, opts, 0, "")
	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("invoiceform: assembling pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoiceform: writing pdf: %w", err)
	}
	return &Result{data: buf.Bytes(), filename: DefaultFilename, geometry: geo}, nil
}

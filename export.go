package invoiceform

import (
	"bytes"
	"context"
	"fmt"
)

// Exporter turns an invoice into a downloadable PDF: it renders the
// invoice region, captures it as an image and embeds the image in a
// single-page document.
//
// Exports are independent of each other; concurrent calls each capture
// and assemble their own document.
type Exporter struct {
	capturer Capturer
	page     *PageConfig
	logger   Logger
}

// ExporterOption configures an [Exporter].
type ExporterOption func(*Exporter)

// WithPageConfig sets the geometry of the exported page.
func WithPageConfig(pg PageConfig) ExporterOption {
	return func(e *Exporter) {
		e.page = &pg
	}
}

// WithExportLogger sets the logger used by the exporter.
func WithExportLogger(l Logger) ExporterOption {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExporter returns an Exporter that captures with c.
func NewExporter(c Capturer, opts ...ExporterOption) *Exporter {
	e := &Exporter{capturer: c, logger: NopLogger{}}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export renders inv, captures the rendering and returns the assembled
// PDF. An empty capture yields [ErrEmptyCapture].
func (e *Exporter) Export(ctx context.Context, inv Invoice) (*Result, error) {
	var html bytes.Buffer
	if err := Render(&html, inv, RenderOptions{}); err != nil {
		return nil, err
	}

	img, err := e.capturer.Capture(ctx, html.String())
	if err != nil {
		e.logger.Errorf("invoice capture failed: %v", err)
		return nil, err
	}
	if len(img) == 0 {
		e.logger.Errorf("invoice capture returned no image")
		return nil, ErrEmptyCapture
	}

	res, err := BuildPDF(img, e.page)
	if err != nil {
		e.logger.Errorf("invoice pdf assembly failed: %v", err)
		return nil, err
	}
	geo := res.Geometry()
	e.logger.Infof("exported %s: %d bytes, image %.0fx%.0fpt on %.0fx%.0fpt page",
		res.Filename(), res.Len(), geo.Width, geo.Height, geo.PageWidth, geo.PageHeight)
	return res, nil
}

// Export is a one-off export through a temporary [ChromeCapturer]. For
// repeated use, create a capturer with [NewChromeCapturer] and an
// [Exporter] to reuse the browser instance.
func Export(ctx context.Context, inv Invoice, pg *PageConfig, opts ...Option) (*Result, error) {
	c, err := NewChromeCapturer(opts...)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	var eopts []ExporterOption
	if pg != nil {
		eopts = append(eopts, WithPageConfig(*pg))
	}
	res, err := NewExporter(c, eopts...).Export(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("invoiceform: export: %w", err)
	}
	return res, nil
}

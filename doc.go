// Package invoiceform implements an editable invoice and its export to
// PDF under a single import:
//
//   - An [Invoice] with line items, edited through a [Form]
//   - Totals derived on every read with [ComputeTotals]
//   - HTML rendering of the invoice with [Render]
//   - PDF export by screenshotting the rendered invoice in headless Chrome
//     and embedding the image in a single page
//
// # Editing
//
// A Form starts with one empty line item:
//
//	f := invoiceform.NewForm()
//	f.UpdateField(invoiceform.FieldClientName, "Acme Ltd")
//	f.UpdateItem(0, invoiceform.ItemPrice, "7.5")
//	f.AddItem()
//
//	t := f.Totals()
//	fmt.Println(invoiceform.FormatMoney(t.Total))
//
// The same edits are available as pure functions on [Invoice], which
// return a new value and leave the receiver untouched:
//
//	next, err := inv.WithItem(0, invoiceform.ItemQuantity, "2")
//
// Numeric input goes through [ParseNumber]: blank or malformed input
// becomes 0.
//
// # Export
//
// For repeated exports create a [ChromeCapturer], which reuses the browser
// process, and an [Exporter]:
//
//	c, err := invoiceform.NewChromeCapturer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	res, err := invoiceform.NewExporter(c).Export(ctx, f.Invoice())
//	res.WriteToFile(res.Filename(), 0o644) // invoice.pdf
//
// Use [PageConfig] to control paper size, orientation and margins of the
// exported page:
//
//	e := invoiceform.NewExporter(c, invoiceform.WithPageConfig(invoiceform.PageConfig{
//	    Size:   invoiceform.Letter,
//	    Margin: invoiceform.UniformMargin(1.0),
//	}))
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload]:
//
//	c, err := invoiceform.NewChromeCapturer(invoiceform.WithAutoDownload())
package invoiceform

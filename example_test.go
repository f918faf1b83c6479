package invoiceform_test

import (
	"context"
	"fmt"
	"log"

	invoiceform "github.com/porticus-lab/go-invoice-form"
)

func ExampleForm() {
	f := invoiceform.NewForm()
	f.UpdateField(invoiceform.FieldTaxRate, "10")
	f.UpdateItem(0, invoiceform.ItemQuantity, "2")
	f.UpdateItem(0, invoiceform.ItemPrice, "10")
	f.AddItem()
	f.UpdateItem(1, invoiceform.ItemPrice, "5")

	t := f.Totals()
	fmt.Println("Subtotal:", invoiceform.FormatMoney(t.Subtotal))
	fmt.Println("Tax:", invoiceform.FormatMoney(t.Tax))
	fmt.Println("Total:", invoiceform.FormatMoney(t.Total))
	// Output:
	// Subtotal: 25.00
	// Tax: 2.50
	// Total: 27.50
}

func ExampleInvoice_WithItem() {
	inv := invoiceform.NewInvoice()
	next, err := inv.WithItem(0, invoiceform.ItemPrice, "7.5")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(inv.Items[0].Price, next.Items[0].Price)
	// Output: 0 7.5
}

func Example() {
	// Create a capturer (reuses the browser across exports).
	c, err := invoiceform.NewChromeCapturer(invoiceform.WithNoSandbox())
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	inv := invoiceform.NewInvoice()
	inv, _ = inv.WithField(invoiceform.FieldBusinessName, "Acme")

	res, err := invoiceform.NewExporter(c).Export(context.Background(), inv)
	if err != nil {
		log.Fatal(err)
	}
	if err := res.WriteToFile(res.Filename(), 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Saved %s: %d bytes\n", res.Filename(), res.Len())
}

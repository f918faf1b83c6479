package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	invoiceform "github.com/porticus-lab/go-invoice-form"
)

// invoiceFile is the on-disk invoice. Numbers are read as raw scalars
// and coerced like form input, so "abc" or an empty value becomes 0.
type invoiceFile struct {
	BusinessName string     `yaml:"businessName"`
	ClientName   string     `yaml:"clientName"`
	ClientEmail  string     `yaml:"clientEmail"`
	InvoiceDate  string     `yaml:"invoiceDate"`
	DueDate      string     `yaml:"dueDate"`
	Items        []itemFile `yaml:"items"`
	TaxRate      string     `yaml:"taxRate"`
	Notes        string     `yaml:"notes"`
}

type itemFile struct {
	Description string `yaml:"description"`
	Quantity    string `yaml:"quantity"`
	Price       string `yaml:"price"`
}

func (f invoiceFile) invoice() invoiceform.Invoice {
	inv := invoiceform.Invoice{
		BusinessName: f.BusinessName,
		ClientName:   f.ClientName,
		ClientEmail:  f.ClientEmail,
		InvoiceDate:  f.InvoiceDate,
		DueDate:      f.DueDate,
		TaxRate:      invoiceform.ParseNumber(f.TaxRate),
		Notes:        f.Notes,
	}
	for _, it := range f.Items {
		inv.Items = append(inv.Items, invoiceform.LineItem{
			Description: it.Description,
			Quantity:    invoiceform.ParseNumber(it.Quantity),
			Price:       invoiceform.ParseNumber(it.Price),
		})
	}
	return inv.Normalized()
}

// loadInvoice reads an invoice from a YAML or JSON file. Files without
// line items get the default one.
func loadInvoice(path string) (invoiceform.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return invoiceform.Invoice{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var f invoiceFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return invoiceform.Invoice{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f.invoice(), nil
}

func printTotals(w io.Writer, inv invoiceform.Invoice) {
	t := invoiceform.ComputeTotals(inv)
	fmt.Fprintf(w, "Subtotal: $%s\n", invoiceform.FormatMoney(t.Subtotal))
	fmt.Fprintf(w, "Tax (%s%%): $%s\n", invoiceform.FormatRate(inv.TaxRate), invoiceform.FormatMoney(t.Tax))
	fmt.Fprintf(w, "Total: $%s\n", invoiceform.FormatMoney(t.Total))
}

// stdLogger forwards library diagnostics to the standard logger.
type stdLogger struct{}

func (stdLogger) Debugf(format string, args ...any) {}

func (stdLogger) Infof(format string, args ...any) {
	log.Printf(format, args...)
}

func (stdLogger) Errorf(format string, args ...any) {
	log.Printf("error: "+format, args...)
}

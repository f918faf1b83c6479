package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	invoiceform "github.com/porticus-lab/go-invoice-form"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadInvoice_YAML(t *testing.T) {
	path := writeFile(t, "invoice.yaml", `
businessName: Acme
clientName: Jane Roe
clientEmail: jane@example.com
invoiceDate: "2024-05-01"
dueDate: "2024-05-31"
taxRate: 10
notes: |
  Pay within 30 days
items:
  - description: Design
    quantity: 2
    price: 10
  - description: Hosting
    quantity: 1
    price: 5
`)
	got, err := loadInvoice(path)
	if err != nil {
		t.Fatalf("loadInvoice: %v", err)
	}
	want := invoiceform.Invoice{
		BusinessName: "Acme",
		ClientName:   "Jane Roe",
		ClientEmail:  "jane@example.com",
		InvoiceDate:  "2024-05-01",
		DueDate:      "2024-05-31",
		TaxRate:      10,
		Notes:        "Pay within 30 days\n",
		Items: []invoiceform.LineItem{
			{Description: "Design", Quantity: 2, Price: 10},
			{Description: "Hosting", Quantity: 1, Price: 5},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadInvoice mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvoice_JSONWithoutItems(t *testing.T) {
	path := writeFile(t, "invoice.json", `{"clientName": "Jane", "taxRate": 5}`)
	got, err := loadInvoice(path)
	if err != nil {
		t.Fatalf("loadInvoice: %v", err)
	}
	if got.ClientName != "Jane" || got.TaxRate != 5 {
		t.Errorf("unexpected invoice: %+v", got)
	}
	if diff := cmp.Diff([]invoiceform.LineItem{invoiceform.NewLineItem()}, got.Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvoice_CoercesNumbers(t *testing.T) {
	path := writeFile(t, "invoice.yaml", `
invoiceDate: "2024-05-01"
taxRate: ten
items:
  - description: Design
    quantity: abc
    price: "12.5"
  - quantity: 1e3
    price: " 2 "
  - quantity:
    price: 4
`)
	got, err := loadInvoice(path)
	if err != nil {
		t.Fatalf("loadInvoice: %v", err)
	}
	want := invoiceform.Invoice{
		InvoiceDate: "2024-05-01",
		Items: []invoiceform.LineItem{
			{Description: "Design", Quantity: 0, Price: 12.5},
			{Quantity: 1000, Price: 2},
			{Quantity: 0, Price: 4},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("loadInvoice mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvoice_Errors(t *testing.T) {
	if _, err := loadInvoice(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeFile(t, "bad.yaml", "items: [unterminated")
	if _, err := loadInvoice(path); err == nil {
		t.Error("expected error for malformed file")
	}
	path = writeFile(t, "seq.yaml", "items:\n  - price: [1, 2]\n")
	if _, err := loadInvoice(path); err == nil {
		t.Error("expected error for a list where a number belongs")
	}
}

func TestTotalsCommand(t *testing.T) {
	path := writeFile(t, "invoice.yaml", `
taxRate: 10
items:
  - {quantity: 2, price: 10}
  - {quantity: 1, price: 5}
`)
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	if err := app.Run([]string{"invoiceform", "totals", "--in", path}); err != nil {
		t.Fatalf("totals: %v", err)
	}
	want := "Subtotal: $25.00\nTax (10%): $2.50\nTotal: $27.50\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestTotalsCommand_RequiresInput(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}
	if err := app.Run([]string{"invoiceform", "totals"}); err == nil {
		t.Fatal("expected error without --in")
	}
}

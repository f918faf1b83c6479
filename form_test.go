package invoiceform

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestForm_InitialState(t *testing.T) {
	f := NewForm()
	if diff := cmp.Diff(NewInvoice(), f.Invoice()); diff != "" {
		t.Errorf("initial invoice mismatch (-want +got):\n%s", diff)
	}
	if got := f.Totals(); got != (Totals{}) {
		t.Errorf("initial totals = %+v, want zero", got)
	}
}

func TestForm_Edits(t *testing.T) {
	f := NewForm()
	if err := f.UpdateField(FieldTaxRate, "10"); err != nil {
		t.Fatal(err)
	}
	if err := f.UpdateItem(0, ItemQuantity, "2"); err != nil {
		t.Fatal(err)
	}
	if err := f.UpdateItem(0, ItemPrice, "10"); err != nil {
		t.Fatal(err)
	}
	f.AddItem()
	if err := f.UpdateItem(1, ItemPrice, "5"); err != nil {
		t.Fatal(err)
	}

	want := Totals{Subtotal: 25, Tax: 2.5, Total: 27.5}
	if diff := cmp.Diff(want, f.Totals()); diff != "" {
		t.Errorf("totals mismatch (-want +got):\n%s", diff)
	}
}

func TestForm_ErrorsKeepState(t *testing.T) {
	f := NewForm()
	before := f.Invoice()
	if err := f.UpdateItem(3, ItemPrice, "1"); !errors.Is(err, ErrItemIndex) {
		t.Fatalf("expected ErrItemIndex, got %v", err)
	}
	if err := f.UpdateField("subtotal", "1"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if diff := cmp.Diff(before, f.Invoice()); diff != "" {
		t.Errorf("state changed on error (-want +got):\n%s", diff)
	}
}

func TestForm_InvoiceIsCopy(t *testing.T) {
	f := NewForm()
	inv := f.Invoice()
	inv.Items[0].Description = "tampered"
	if got := f.Invoice().Items[0].Description; got != "" {
		t.Errorf("form state leaked through snapshot: %q", got)
	}
}

func TestForm_ApplyIsAtomic(t *testing.T) {
	f := NewForm()
	err := f.Apply(func(inv Invoice) (Invoice, error) {
		inv, err := inv.WithField(FieldClientName, "Jane")
		if err != nil {
			return inv, err
		}
		return inv.WithField("bogus", "x")
	})
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if got := f.Invoice().ClientName; got != "" {
		t.Errorf("partial batch applied: ClientName = %q", got)
	}
}

func TestForm_ConcurrentAddItem(t *testing.T) {
	f := NewForm()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.AddItem()
		}()
	}
	wg.Wait()
	if got := len(f.Invoice().Items); got != 51 {
		t.Errorf("item count = %d, want 51", got)
	}
}

func TestNewFormFrom(t *testing.T) {
	f := NewFormFrom(Invoice{BusinessName: "Acme"})
	inv := f.Invoice()
	if inv.BusinessName != "Acme" || len(inv.Items) != 1 {
		t.Errorf("NewFormFrom = %+v", inv)
	}
}

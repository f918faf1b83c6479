package invoiceform

import "sync"

// Form owns the current [Invoice] of one editing session and applies
// edits to it. Every edit replaces the invoice with a new value.
//
// A Form is safe for concurrent use.
type Form struct {
	mu  sync.Mutex
	inv Invoice
}

// NewForm returns a Form holding [NewInvoice].
func NewForm() *Form {
	return &Form{inv: NewInvoice()}
}

// NewFormFrom returns a Form holding a normalized copy of inv.
func NewFormFrom(inv Invoice) *Form {
	return &Form{inv: inv.Normalized()}
}

// Invoice returns a copy of the current invoice.
func (f *Form) Invoice() Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inv.Clone()
}

// Totals computes the totals of the current invoice.
func (f *Form) Totals() Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ComputeTotals(f.inv)
}

// UpdateField replaces a top-level field. See [Invoice.WithField].
func (f *Form) UpdateField(name Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, err := f.inv.WithField(name, value)
	if err != nil {
		return err
	}
	f.inv = next
	return nil
}

// UpdateItem replaces one field of the item at index. See [Invoice.WithItem].
func (f *Form) UpdateItem(index int, field ItemField, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, err := f.inv.WithItem(index, field, value)
	if err != nil {
		return err
	}
	f.inv = next
	return nil
}

// AddItem appends a default line item.
func (f *Form) AddItem() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inv = f.inv.WithItemAdded()
}

// Apply runs edit against the current invoice and stores its result when
// it returns no error. The whole edit happens under the form's lock, so a
// batch of field updates is observed atomically.
func (f *Form) Apply(edit func(Invoice) (Invoice, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, err := edit(f.inv.Clone())
	if err != nil {
		return err
	}
	f.inv = next
	return nil
}

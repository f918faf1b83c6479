package invoiceform

import "fmt"

// LineItem is one billable row of an invoice.
type LineItem struct {
	Description string  `json:"description" yaml:"description"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	Price       float64 `json:"price" yaml:"price"`
}

// NewLineItem returns the row appended by "Add Item": empty description,
// quantity 1, price 0.
func NewLineItem() LineItem {
	return LineItem{Quantity: 1}
}

// Invoice holds the editable fields of an invoice.
//
// Invoice values are treated as immutable: the With* methods return a new
// Invoice and never touch the receiver or its Items backing array.
type Invoice struct {
	BusinessName string     `json:"businessName" yaml:"businessName"`
	ClientName   string     `json:"clientName" yaml:"clientName"`
	ClientEmail  string     `json:"clientEmail" yaml:"clientEmail"`
	InvoiceDate  string     `json:"invoiceDate" yaml:"invoiceDate"`
	DueDate      string     `json:"dueDate" yaml:"dueDate"`
	Items        []LineItem `json:"items" yaml:"items"`
	TaxRate      float64    `json:"taxRate" yaml:"taxRate"`
	Notes        string     `json:"notes" yaml:"notes"`
}

// NewInvoice returns the initial state of a form: one default line item
// and every other field empty.
func NewInvoice() Invoice {
	return Invoice{Items: []LineItem{NewLineItem()}}
}

// Field names a top-level invoice field.
type Field string

// Top-level fields accepted by [Invoice.WithField].
const (
	FieldBusinessName Field = "businessName"
	FieldClientName   Field = "clientName"
	FieldClientEmail  Field = "clientEmail"
	FieldInvoiceDate  Field = "invoiceDate"
	FieldDueDate      Field = "dueDate"
	FieldNotes        Field = "notes"
	FieldTaxRate      Field = "taxRate"
)

// Fields lists the top-level fields in form order.
var Fields = []Field{
	FieldBusinessName,
	FieldClientName,
	FieldClientEmail,
	FieldInvoiceDate,
	FieldDueDate,
	FieldTaxRate,
	FieldNotes,
}

// ItemField names a field of a [LineItem].
type ItemField string

// Line item fields accepted by [Invoice.WithItem].
const (
	ItemDescription ItemField = "description"
	ItemQuantity    ItemField = "quantity"
	ItemPrice       ItemField = "price"
)

// ItemFields lists the line item fields in column order.
var ItemFields = []ItemField{ItemDescription, ItemQuantity, ItemPrice}

// Clone returns a deep copy of inv.
func (inv Invoice) Clone() Invoice {
	out := inv
	if inv.Items != nil {
		out.Items = make([]LineItem, len(inv.Items))
		copy(out.Items, inv.Items)
	}
	return out
}

// Normalized returns a copy of inv with at least one line item. It is used
// for invoices loaded from files, which may omit items entirely.
func (inv Invoice) Normalized() Invoice {
	out := inv.Clone()
	if len(out.Items) == 0 {
		out.Items = []LineItem{NewLineItem()}
	}
	return out
}

// WithField returns a copy of inv with the named field replaced by value.
// Text fields store value verbatim; taxRate is coerced with [ParseNumber].
func (inv Invoice) WithField(name Field, value string) (Invoice, error) {
	out := inv.Clone()
	switch name {
	case FieldBusinessName:
		out.BusinessName = value
	case FieldClientName:
		out.ClientName = value
	case FieldClientEmail:
		out.ClientEmail = value
	case FieldInvoiceDate:
		out.InvoiceDate = value
	case FieldDueDate:
		out.DueDate = value
	case FieldNotes:
		out.Notes = value
	case FieldTaxRate:
		out.TaxRate = ParseNumber(value)
	default:
		return inv, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return out, nil
}

// WithItem returns a copy of inv with one field of the item at index
// replaced. Quantity and price are coerced with [ParseNumber].
func (inv Invoice) WithItem(index int, field ItemField, value string) (Invoice, error) {
	if index < 0 || index >= len(inv.Items) {
		return inv, fmt.Errorf("%w: %d (have %d items)", ErrItemIndex, index, len(inv.Items))
	}
	out := inv.Clone()
	item := &out.Items[index]
	switch field {
	case ItemDescription:
		item.Description = value
	case ItemQuantity:
		item.Quantity = ParseNumber(value)
	case ItemPrice:
		item.Price = ParseNumber(value)
	default:
		return inv, fmt.Errorf("%w: item field %q", ErrUnknownField, field)
	}
	return out, nil
}

// WithItemAdded returns a copy of inv with a default line item appended.
func (inv Invoice) WithItemAdded() Invoice {
	out := inv.Clone()
	out.Items = append(out.Items, NewLineItem())
	return out
}

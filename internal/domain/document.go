package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DocumentKind is the type of purchasing document being edited
type DocumentKind string

const (
	KindPurchaseOrder DocumentKind = "purchase_order"
	KindDebitNote     DocumentKind = "debit_note"
	KindPurchase      DocumentKind = "purchase"
)

// DocumentKinds lists every supported kind
var DocumentKinds = []DocumentKind{KindPurchaseOrder, KindDebitNote, KindPurchase}

// ParseDocumentKind accepts the stored name or a short alias (po, dn, pur)
func ParseDocumentKind(s string) (DocumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "purchase_order", "purchase-order", "po":
		return KindPurchaseOrder, nil
	case "debit_note", "debit-note", "dn":
		return KindDebitNote, nil
	case "purchase", "pur":
		return KindPurchase, nil
	}
	return "", fmt.Errorf("unknown document kind %q", s)
}

// Label returns a human readable name
func (k DocumentKind) Label() string {
	switch k {
	case KindPurchaseOrder:
		return "Purchase Order"
	case KindDebitNote:
		return "Debit Note"
	case KindPurchase:
		return "Purchase"
	default:
		return string(k)
	}
}

type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusFinalized DocumentStatus = "finalized"
)

type Document struct {
	ID        int64
	Kind      DocumentKind
	Number    string
	Supplier  string
	Reference string
	Date      time.Time
	Notes     string
	Status    DocumentStatus
	Items     []LineItem
	Totals    Totals
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDocument creates a new draft document
func NewDocument(kind DocumentKind, number, supplier string, date time.Time) *Document {
	now := time.Now()
	return &Document{
		Kind:      kind,
		Number:    number,
		Supplier:  strings.TrimSpace(supplier),
		Date:      date,
		Status:    DocumentStatusDraft,
		Items:     make([]LineItem, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CanEdit returns true if lines and header may still change
func (d *Document) CanEdit() bool {
	return d.Status == DocumentStatusDraft
}

// Finalize locks the document
func (d *Document) Finalize() {
	if d.Status == DocumentStatusDraft {
		d.Status = DocumentStatusFinalized
		d.UpdatedAt = time.Now()
	}
}

// FindItem returns the index of the line for productID, or -1
func (d *Document) FindItem(productID int64) int {
	for i, item := range d.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// Validate returns an error if the document is invalid
func (d *Document) Validate() error {
	switch d.Kind {
	case KindPurchaseOrder, KindDebitNote, KindPurchase:
	default:
		return fmt.Errorf("unknown document kind %q", d.Kind)
	}
	if d.Number == "" {
		return errors.New("document number is required")
	}
	if d.Date.IsZero() {
		return errors.New("document date is required")
	}
	seen := make(map[int64]bool, len(d.Items))
	for _, item := range d.Items {
		if seen[item.ID] {
			return fmt.Errorf("product %d appears on more than one line", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

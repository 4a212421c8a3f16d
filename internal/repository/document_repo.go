package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kanakku/kanakku/internal/db"
	"github.com/kanakku/kanakku/internal/domain"
)

// DocumentRepo is a SQLite implementation of DocumentRepository
type DocumentRepo struct {
	db *db.DB
}

// NewDocumentRepo creates a new DocumentRepo
func NewDocumentRepo(database *db.DB) *DocumentRepo {
	return &DocumentRepo{db: database}
}

const documentSelect = `
	SELECT id, kind, number, supplier, reference, date, notes, status,
	       sub_total, total_discount, total_tax, grand_total,
	       created_at, updated_at
	FROM documents
`

// execer is satisfied by *sql.Tx and *db.DB
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Create inserts a new document and any lines it already carries
func (r *DocumentRepo) Create(ctx context.Context, doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO documents (
			kind, number, supplier, reference, date, notes, status,
			sub_total, total_discount, total_tax, grand_total,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		string(doc.Kind),
		doc.Number,
		doc.Supplier,
		doc.Reference,
		doc.Date.Format(dateLayout),
		doc.Notes,
		string(doc.Status),
		doc.Totals.SubTotal,
		doc.Totals.TotalDiscount,
		doc.Totals.TotalTax,
		doc.Totals.GrandTotal,
		doc.CreatedAt.Format(timeLayout),
		doc.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get document ID: %w", err)
	}

	if err := insertItems(ctx, tx, id, doc.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document: %w", err)
	}

	doc.ID = id
	return nil
}

// GetByID retrieves a document and its lines by ID
func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, documentSelect+" WHERE id = ?", id)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if doc.Items, err = r.items(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetByNumber retrieves a document and its lines by document number
func (r *DocumentRepo) GetByNumber(ctx context.Context, number string) (*domain.Document, error) {
	row := r.db.QueryRowContext(ctx, documentSelect+" WHERE number = ?", number)
	doc, err := scanDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", number, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	if doc.Items, err = r.items(ctx, doc.ID); err != nil {
		return nil, err
	}
	return doc, nil
}

// List retrieves document headers with optional filters, newest first.
// Lines are not loaded.
func (r *DocumentRepo) List(ctx context.Context, kind *domain.DocumentKind, status *domain.DocumentStatus) ([]*domain.Document, error) {
	query := documentSelect + " WHERE 1=1"
	args := make([]interface{}, 0)

	if kind != nil {
		query += " AND kind = ?"
		args = append(args, string(*kind))
	}

	if status != nil {
		query += " AND status = ?"
		args = append(args, string(*status))
	}

	query += " ORDER BY date DESC, id DESC"

	return r.query(ctx, query, args...)
}

// ListBetween retrieves document headers dated in [start, end)
func (r *DocumentRepo) ListBetween(ctx context.Context, start, end time.Time) ([]*domain.Document, error) {
	query := documentSelect + " WHERE date >= ? AND date < ? ORDER BY date, id"
	return r.query(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
}

// Update writes the header and totals and replaces the line collection
func (r *DocumentRepo) Update(ctx context.Context, doc *domain.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE documents
		SET kind = ?, number = ?, supplier = ?, reference = ?, date = ?, notes = ?, status = ?,
		    sub_total = ?, total_discount = ?, total_tax = ?, grand_total = ?, updated_at = ?
		WHERE id = ?
	`

	doc.UpdatedAt = time.Now()

	result, err := tx.ExecContext(ctx, query,
		string(doc.Kind),
		doc.Number,
		doc.Supplier,
		doc.Reference,
		doc.Date.Format(dateLayout),
		doc.Notes,
		string(doc.Status),
		doc.Totals.SubTotal,
		doc.Totals.TotalDiscount,
		doc.Totals.TotalTax,
		doc.Totals.GrandTotal,
		doc.UpdatedAt.Format(timeLayout),
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("document %d: %w", doc.ID, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM document_items WHERE document_id = ?", doc.ID); err != nil {
		return fmt.Errorf("failed to clear document items: %w", err)
	}

	if err := insertItems(ctx, tx, doc.ID, doc.Items); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document: %w", err)
	}

	return nil
}

// Delete removes a document and its lines
func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("document %d: %w", id, ErrNotFound)
	}

	return nil
}

// GetNextNumber generates the next document number in format "PREFIX-YEAR-SEQUENCE"
func (r *DocumentRepo) GetNextNumber(ctx context.Context, prefix string, year int) (string, error) {
	stem := fmt.Sprintf("%s-%d-", prefix, year)

	rows, err := r.db.QueryContext(ctx, "SELECT number FROM documents WHERE number LIKE ?", stem+"%")
	if err != nil {
		return "", fmt.Errorf("failed to get last document number: %w", err)
	}
	defer rows.Close()

	// Numbers are compared numerically so sequence 1000 follows 999
	lastSeq := 0
	for rows.Next() {
		var number string
		if err := rows.Scan(&number); err != nil {
			return "", fmt.Errorf("failed to scan document number: %w", err)
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(number, stem))
		if err != nil {
			continue
		}
		if seq > lastSeq {
			lastSeq = seq
		}
	}

	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("error iterating document numbers: %w", err)
	}

	return fmt.Sprintf("%s%03d", stem, lastSeq+1), nil
}

func (r *DocumentRepo) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Document, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]*domain.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// items loads the lines of a document in entry order
func (r *DocumentRepo) items(ctx context.Context, documentID int64) ([]domain.LineItem, error) {
	query := `
		SELECT product_id, name, unit, qty, rate, discount_type, discount_value,
		       discount, tax_group_id, tax, amount
		FROM document_items
		WHERE document_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get document items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.LineItem, 0)
	for rows.Next() {
		var item domain.LineItem
		var discountType string
		var taxGroupID sql.NullInt64

		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Unit,
			&item.Qty,
			&item.Rate,
			&discountType,
			&item.DiscountValue,
			&item.Discount,
			&taxGroupID,
			&item.Tax,
			&item.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document item: %w", err)
		}

		item.DiscountType = domain.DiscountType(discountType)
		if taxGroupID.Valid {
			id := taxGroupID.Int64
			item.TaxGroupID = &id
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document items: %w", err)
	}

	return items, nil
}

func insertItems(ctx context.Context, tx execer, documentID int64, items []domain.LineItem) error {
	query := `
		INSERT INTO document_items (
			document_id, product_id, position, name, unit, qty, rate,
			discount_type, discount_value, discount, tax_group_id, tax, amount
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for i, item := range items {
		_, err := tx.ExecContext(ctx, query,
			documentID,
			item.ID,
			i,
			item.Name,
			item.Unit,
			item.Qty,
			item.Rate,
			string(item.DiscountType),
			item.DiscountValue,
			item.Discount,
			nullableID(item.TaxGroupID),
			item.Tax,
			item.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item for product %d: %w", item.ID, err)
		}
	}

	return nil
}

func scanDocument(s rowScanner) (*domain.Document, error) {
	doc := &domain.Document{}
	var kind, date, status, createdAt, updatedAt string

	err := s.Scan(
		&doc.ID,
		&kind,
		&doc.Number,
		&doc.Supplier,
		&doc.Reference,
		&date,
		&doc.Notes,
		&status,
		&doc.Totals.SubTotal,
		&doc.Totals.TotalDiscount,
		&doc.Totals.TotalTax,
		&doc.Totals.GrandTotal,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Kind = domain.DocumentKind(kind)
	doc.Status = domain.DocumentStatus(status)
	doc.Items = make([]domain.LineItem, 0)

	if doc.Date, err = parseDate(date); err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	if doc.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if doc.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return doc, nil
}

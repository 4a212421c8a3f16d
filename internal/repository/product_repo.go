package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kanakku/kanakku/internal/db"
	"github.com/kanakku/kanakku/internal/domain"
)

// ProductRepo is a SQLite implementation of ProductRepository
type ProductRepo struct {
	db *db.DB
}

// NewProductRepo creates a new ProductRepo
func NewProductRepo(database *db.DB) *ProductRepo {
	return &ProductRepo{db: database}
}

// productSelect joins the tax group so products carry their tax snapshot
const productSelect = `
	SELECT p.id, p.name, p.unit, p.selling_price,
	       p.discount_type, p.discount_value,
	       p.tax_group_id, g.name, g.total_rate,
	       p.created_at, p.updated_at
	FROM products p
	LEFT JOIN tax_groups g ON g.id = p.tax_group_id
`

// Create inserts a new product into the catalog
func (r *ProductRepo) Create(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}

	query := `
		INSERT INTO products (name, unit, selling_price, discount_type, discount_value, tax_group_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	discountType, discountValue := discountArgs(product.Discount)
	result, err := r.db.ExecContext(ctx, query,
		product.Name,
		product.Unit,
		product.SellingPrice,
		discountType,
		discountValue,
		taxGroupArg(product.Tax),
		product.CreatedAt.Format(timeLayout),
		product.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get product ID: %w", err)
	}

	product.ID = id
	return nil
}

// GetByID retrieves a product by ID
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+" WHERE p.id = ?", id)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// GetByName retrieves a product by exact name
func (r *ProductRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+" WHERE p.name = ?", name)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// List retrieves the whole catalog ordered by name
func (r *ProductRepo) List(ctx context.Context) ([]*domain.Product, error) {
	return r.query(ctx, productSelect+" ORDER BY p.name")
}

// Search retrieves products whose name contains term
func (r *ProductRepo) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"
	return r.query(ctx, productSelect+" WHERE LOWER(p.name) LIKE ? ORDER BY p.name", pattern)
}

// Update updates an existing product
func (r *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	if err := product.Validate(); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}

	query := `
		UPDATE products
		SET name = ?, unit = ?, selling_price = ?, discount_type = ?, discount_value = ?, tax_group_id = ?, updated_at = ?
		WHERE id = ?
	`

	discountType, discountValue := discountArgs(product.Discount)
	result, err := r.db.ExecContext(ctx, query,
		product.Name,
		product.Unit,
		product.SellingPrice,
		discountType,
		discountValue,
		taxGroupArg(product.Tax),
		product.UpdatedAt.Format(timeLayout),
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("product %d: %w", product.ID, ErrNotFound)
	}

	return nil
}

func (r *ProductRepo) query(ctx context.Context, query string, args ...interface{}) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]*domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

func scanProduct(s rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var discountType, groupName sql.NullString
	var discountValue, totalRate decimal.NullDecimal
	var taxGroupID sql.NullInt64
	var createdAt, updatedAt string

	err := s.Scan(
		&product.ID,
		&product.Name,
		&product.Unit,
		&product.SellingPrice,
		&discountType,
		&discountValue,
		&taxGroupID,
		&groupName,
		&totalRate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if discountType.Valid {
		product.Discount = &domain.Discount{
			Type:  domain.DiscountType(discountType.String),
			Value: discountValue.Decimal,
		}
	}

	if taxGroupID.Valid {
		product.Tax = &domain.ProductTax{
			GroupID:   taxGroupID.Int64,
			GroupName: groupName.String,
			TotalRate: totalRate.Decimal,
		}
	}

	if product.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if product.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return product, nil
}

func discountArgs(d *domain.Discount) (interface{}, interface{}) {
	if d == nil {
		return nil, nil
	}
	return string(d.Type), d.Value
}

func taxGroupArg(tax *domain.ProductTax) interface{} {
	if tax == nil {
		return nil
	}
	return tax.GroupID
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kanakku/kanakku/internal/domain"
)

// ErrNotFound is wrapped by every lookup that matches no row
var ErrNotFound = errors.New("not found")

// ProductRepository manages the product catalog
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	// Search matches products whose name contains term (case-insensitive)
	Search(ctx context.Context, term string) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
}

// TaxRepository manages tax rates and tax groups
type TaxRepository interface {
	CreateRate(ctx context.Context, rate *domain.TaxRate) error
	GetRate(ctx context.Context, id int64) (*domain.TaxRate, error)
	ListRates(ctx context.Context) ([]domain.TaxRate, error)
	// CreateGroup stores the group and its member rates in one transaction
	CreateGroup(ctx context.Context, group *domain.TaxGroup) error
	GetGroup(ctx context.Context, id int64) (*domain.TaxGroup, error)
	ListGroups(ctx context.Context) ([]domain.TaxGroup, error)
}

// DocumentRepository manages purchasing documents and their lines
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, id int64) (*domain.Document, error)
	GetByNumber(ctx context.Context, number string) (*domain.Document, error)
	List(ctx context.Context, kind *domain.DocumentKind, status *domain.DocumentStatus) ([]*domain.Document, error)
	// ListBetween returns documents dated in [start, end)
	ListBetween(ctx context.Context, start, end time.Time) ([]*domain.Document, error)
	// Update writes the header, totals and the full line collection
	Update(ctx context.Context, doc *domain.Document) error
	Delete(ctx context.Context, id int64) error
	GetNextNumber(ctx context.Context, prefix string, year int) (string, error)
}

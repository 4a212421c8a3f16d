package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
	"github.com/kanakku/kanakku/internal/repository"
)

var (
	ErrDocumentNotEditable = errors.New("document cannot be edited after finalization")
	ErrDuplicateLine       = errors.New("product is already on the document")
	ErrLineNotFound        = errors.New("product is not on the document")
	ErrProductNotFound     = errors.New("product not found")
	ErrEmptyDocument       = errors.New("cannot finalize a document with no lines")
)

// DocumentService is the editing session for purchasing documents.
// Every mutation reloads the document, applies the change, re-aggregates
// the totals and writes the whole line collection back.
type DocumentService interface {
	// CreateDraft creates a new draft document with an auto-generated number
	CreateDraft(ctx context.Context, kind domain.DocumentKind, supplier string, date time.Time, prefix string) (*domain.Document, error)

	// UpdateDetails changes the supplier, reference and notes of a draft
	UpdateDetails(ctx context.Context, documentID int64, supplier, reference, notes string) (*domain.Document, error)

	// AddProduct resolves a catalog product into a new line
	AddProduct(ctx context.Context, documentID, productID int64, quantity int) (*domain.Document, error)

	// EditLine applies field edits to one line. The returned warnings describe
	// input that was coerced; they never block the edit.
	EditLine(ctx context.Context, documentID, productID int64, changes []pricing.Change) (*domain.Document, []error, error)

	// RemoveLine drops the line for productID
	RemoveLine(ctx context.Context, documentID, productID int64) (*domain.Document, error)

	// Finalize locks a document that has at least one line
	Finalize(ctx context.Context, documentID int64) (*domain.Document, error)

	// Delete removes a draft document
	Delete(ctx context.Context, documentID int64) error

	// GetDocument retrieves a document with its lines
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)

	// GetDocumentByNumber retrieves a document with its lines
	GetDocumentByNumber(ctx context.Context, number string) (*domain.Document, error)

	// ListDocuments lists document headers with optional filters
	ListDocuments(ctx context.Context, kind *domain.DocumentKind, status *domain.DocumentStatus) ([]*domain.Document, error)

	// TaxGroups lists the groups a line may be assigned to
	TaxGroups(ctx context.Context) ([]domain.TaxGroup, error)
}

type documentService struct {
	documentRepo repository.DocumentRepository
	productRepo  repository.ProductRepository
	taxRepo      repository.TaxRepository
	logger       *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	documentRepo repository.DocumentRepository,
	productRepo repository.ProductRepository,
	taxRepo repository.TaxRepository,
	logger *slog.Logger,
) DocumentService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &documentService{
		documentRepo: documentRepo,
		productRepo:  productRepo,
		taxRepo:      taxRepo,
		logger:       logger,
	}
}

func (s *documentService) CreateDraft(
	ctx context.Context,
	kind domain.DocumentKind,
	supplier string,
	date time.Time,
	prefix string,
) (*domain.Document, error) {
	number, err := s.documentRepo.GetNextNumber(ctx, prefix, date.Year())
	if err != nil {
		return nil, fmt.Errorf("failed to generate document number: %w", err)
	}

	doc := domain.NewDocument(kind, number, supplier, date)
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if err := s.documentRepo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Debug("document created", "id", doc.ID, "number", doc.Number, "kind", doc.Kind)
	return doc, nil
}

func (s *documentService) UpdateDetails(ctx context.Context, documentID int64, supplier, reference, notes string) (*domain.Document, error) {
	doc, err := s.editable(ctx, documentID)
	if err != nil {
		return nil, err
	}

	doc.Supplier = supplier
	doc.Reference = reference
	doc.Notes = notes

	if err := s.documentRepo.Update(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *documentService) AddProduct(ctx context.Context, documentID, productID int64, quantity int) (*domain.Document, error) {
	doc, err := s.editable(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if doc.FindItem(productID) >= 0 {
		s.logger.Warn("duplicate line rejected", "document", doc.Number, "product", productID)
		return nil, fmt.Errorf("%w: product %d", ErrDuplicateLine, productID)
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
		}
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}

	line := pricing.ResolveOnAdd(*product, quantity)
	doc.Items = append(doc.Items, line)

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Debug("line added", "document", doc.Number, "product", productID, "amount", line.Amount.String())
	return doc, nil
}

func (s *documentService) EditLine(
	ctx context.Context,
	documentID, productID int64,
	changes []pricing.Change,
) (*domain.Document, []error, error) {
	doc, err := s.editable(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	idx := doc.FindItem(productID)
	if idx < 0 {
		return nil, nil, fmt.Errorf("%w: product %d", ErrLineNotFound, productID)
	}

	groups, err := s.taxRepo.ListGroups(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load tax groups: %w", err)
	}

	warnings := pricing.CheckChanges(changes)
	for _, w := range warnings {
		s.logger.Warn("line input coerced", "document", doc.Number, "product", productID, "error", w)
	}

	doc.Items[idx] = pricing.ApplyChanges(doc.Items[idx], changes, groups)

	if err := s.save(ctx, doc); err != nil {
		return nil, nil, err
	}

	s.logger.Debug("line edited", "document", doc.Number, "product", productID, "changes", len(changes))
	return doc, warnings, nil
}

func (s *documentService) RemoveLine(ctx context.Context, documentID, productID int64) (*domain.Document, error) {
	doc, err := s.editable(ctx, documentID)
	if err != nil {
		return nil, err
	}

	idx := doc.FindItem(productID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: product %d", ErrLineNotFound, productID)
	}

	doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)

	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Debug("line removed", "document", doc.Number, "product", productID)
	return doc, nil
}

func (s *documentService) Finalize(ctx context.Context, documentID int64) (*domain.Document, error) {
	doc, err := s.editable(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if len(doc.Items) == 0 {
		return nil, ErrEmptyDocument
	}

	doc.Finalize()
	if err := s.save(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Debug("document finalized", "document", doc.Number, "grand_total", doc.Totals.GrandTotal.String())
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, documentID int64) error {
	if _, err := s.editable(ctx, documentID); err != nil {
		return err
	}
	return s.documentRepo.Delete(ctx, documentID)
}

func (s *documentService) GetDocument(ctx context.Context, id int64) (*domain.Document, error) {
	return s.documentRepo.GetByID(ctx, id)
}

func (s *documentService) GetDocumentByNumber(ctx context.Context, number string) (*domain.Document, error) {
	return s.documentRepo.GetByNumber(ctx, number)
}

func (s *documentService) ListDocuments(
	ctx context.Context,
	kind *domain.DocumentKind,
	status *domain.DocumentStatus,
) ([]*domain.Document, error) {
	return s.documentRepo.List(ctx, kind, status)
}

func (s *documentService) TaxGroups(ctx context.Context) ([]domain.TaxGroup, error) {
	return s.taxRepo.ListGroups(ctx)
}

// editable loads a document and rejects anything but a draft
func (s *documentService) editable(ctx context.Context, documentID int64) (*domain.Document, error) {
	doc, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if !doc.CanEdit() {
		s.logger.Warn("edit rejected", "document", doc.Number, "status", doc.Status)
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotEditable, doc.Number)
	}

	return doc, nil
}

// save re-aggregates the totals from the lines and persists the document
func (s *documentService) save(ctx context.Context, doc *domain.Document) error {
	doc.Totals = pricing.Aggregate(doc.Items)
	return s.documentRepo.Update(ctx, doc)
}

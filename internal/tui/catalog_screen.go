package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/kanakku/kanakku/internal/app"
	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
)

type catalogMode int

const (
	catalogModeList catalogMode = iota
	catalogModeForm
)

// product form field indices
const (
	productFieldName = iota
	productFieldUnit
	productFieldPrice
	productFieldDiscountType
	productFieldDiscount
	productFieldTaxGroup
)

// CatalogModel lists catalog products and edits one at a time
type CatalogModel struct {
	app       *app.App
	money     func(decimal.Decimal) string
	mode      catalogMode
	products  []*domain.Product
	groups    []domain.TaxGroup
	cursor    int
	editing   *domain.Product // nil when creating
	firstRun  bool
	form      form
	loading   bool
	err       error
	statusMsg string
}

type catalogDataMsg struct {
	products []*domain.Product
	groups   []domain.TaxGroup
	err      error
}

type productSavedMsg struct {
	product *domain.Product
	created bool
	err     error
}

// NewCatalogModel creates a new catalog screen model
func NewCatalogModel(a *app.App) tea.Model {
	return &CatalogModel{
		app:     a,
		money:   moneyFormatter(a),
		loading: true,
	}
}

// IsCapturingInput returns true when the product form is active
func (m *CatalogModel) IsCapturingInput() bool {
	return m.mode == catalogModeForm
}

func (m *CatalogModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *CatalogModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		products, err := m.app.ProductRepo.List(ctx)
		if err != nil {
			return catalogDataMsg{err: err}
		}
		groups, err := m.app.TaxRepo.ListGroups(ctx)
		if err != nil {
			return catalogDataMsg{err: err}
		}
		return catalogDataMsg{products: products, groups: groups}
	}
}

func (m *CatalogModel) openForm(product *domain.Product) tea.Cmd {
	m.editing = product
	m.statusMsg = ""
	m.err = nil

	values := []string{"", "", "", string(domain.DiscountFixed), "", ""}
	if product != nil {
		values = productFormValues(product)
	}

	m.form = newForm([]formField{
		{label: "Name:", placeholder: "Product name", width: 40, limit: 100},
		{label: "Unit:", placeholder: "pcs, kg, box", width: 10, limit: 20},
		{label: "Selling Price:", placeholder: "0.00", width: 14, limit: 20},
		{label: "Discount Type (Fixed, Percentage):", placeholder: "Fixed", width: 12, limit: 20},
		{label: "Discount:", placeholder: "blank for none", width: 14, limit: 20},
		{label: "Tax Group ID:", placeholder: "blank for none", width: 10, limit: 10},
	}, values)
	m.mode = catalogModeForm
	return m.form.focusCmd()
}

func (m *CatalogModel) saveProduct() tea.Cmd {
	values := make([]string, len(m.form.inputs))
	for i := range m.form.inputs {
		values[i] = m.form.value(i)
	}
	editing := m.editing
	groups := m.groups

	return func() tea.Msg {
		ctx := context.Background()

		product, err := productFromForm(values, groups, editing)
		if err != nil {
			return productSavedMsg{err: err}
		}

		if editing == nil {
			if err := m.app.ProductRepo.Create(ctx, product); err != nil {
				return productSavedMsg{err: fmt.Errorf("failed to create product: %w", err)}
			}
			return productSavedMsg{product: product, created: true}
		}

		if err := m.app.ProductRepo.Update(ctx, product); err != nil {
			return productSavedMsg{err: fmt.Errorf("failed to update product: %w", err)}
		}
		return productSavedMsg{product: product}
	}
}

func (m *CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		if m.mode == catalogModeList {
			m.loading = true
			return m, m.loadData()
		}
		return m, nil

	case OpenNewProductFormMsg:
		m.firstRun = true
		cmd := m.openForm(nil)
		m.statusMsg = "Add your first product to get started"
		return m, cmd

	case catalogDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.products = msg.products
			m.groups = msg.groups
			m.cursor = clampCursor(m.cursor, len(m.products))
		}
		return m, nil

	case productSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = catalogModeList
		m.err = nil
		if msg.created && m.firstRun {
			// First product in the catalog: continue to documents
			m.firstRun = false
			m.statusMsg = fmt.Sprintf("Created %s", msg.product.Name)
			return m, func() tea.Msg { return SwitchScreenMsg{Screen: ScreenDocuments} }
		}
		if msg.created {
			m.statusMsg = fmt.Sprintf("Created %s", msg.product.Name)
		} else {
			m.statusMsg = fmt.Sprintf("Updated %s", msg.product.Name)
		}
		m.loading = true
		return m, m.loadData()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.mode == catalogModeForm {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}

	if m.mode == catalogModeForm {
		_, cmd := m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *CatalogModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.products)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.New):
		return m, m.openForm(nil)
	case key.Matches(msg, DefaultKeyMap.Edit):
		if len(m.products) > 0 {
			return m, m.openForm(m.products[m.cursor])
		}
	}
	return m, nil
}

func (m *CatalogModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.form.update(msg)
	switch action {
	case formCancel:
		m.mode = catalogModeList
		m.firstRun = false
		m.err = nil
		m.statusMsg = ""
		return m, nil
	case formSubmit:
		return m, m.saveProduct()
	}
	return m, cmd
}

func (m *CatalogModel) View() string {
	if m.loading {
		return "Loading..."
	}
	if m.mode == catalogModeForm {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *CatalogModel) viewList() string {
	var s string
	s += titleStyle.Render("Catalog") + "\n\n"

	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}
	if m.err != nil {
		s += errorLine(m.err)
	}

	if len(m.products) == 0 {
		s += subtitleStyle.Render("  No products yet. Press 'n' to add one.")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf("  %-26s  %-6s  %14s  %-14s  %-14s  %14s",
		"Name", "Unit", "Price", "Discount", "Tax", "On Add")) + "\n"

	for i, p := range m.products {
		line := pricing.ResolveOnAdd(*p, 1)
		row := fmt.Sprintf("  %-26s  %-6s  %14s  %-14s  %-14s  %14s",
			truncateStr(p.Name, 26),
			truncateStr(p.Unit, 6),
			m.money(p.SellingPrice),
			truncateStr(m.discountText(p.Discount), 14),
			truncateStr(taxText(p.Tax), 14),
			m.money(line.Amount),
		)
		if i == m.cursor {
			s += selectedStyle.Render(row) + "\n"
		} else {
			s += row + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new product  e/enter: edit")
	return s
}

func (m *CatalogModel) viewForm() string {
	title := "New Product"
	if m.editing != nil {
		title = "Edit " + m.editing.Name
	}

	var s string
	s += titleStyle.Render(title) + "\n\n"
	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}
	s += m.form.view()

	if len(m.groups) > 0 {
		hints := make([]string, 0, len(m.groups))
		for _, g := range m.groups {
			hints = append(hints, fmt.Sprintf("%d %s (%s)", g.ID, g.Name, pricing.FormatRate(g.TotalRate)))
		}
		s += subtitleStyle.Render("  Tax groups: "+strings.Join(hints, "  ")) + "\n\n"
	}

	if m.err != nil {
		s += errorLine(m.err)
	}
	s += helpStyle.Render(formHelp)
	return s
}

func (m *CatalogModel) discountText(d *domain.Discount) string {
	if d == nil {
		return "-"
	}
	if d.Type == domain.DiscountPercentage {
		return pricing.FormatRate(d.Value)
	}
	return m.money(d.Value)
}

func taxText(t *domain.ProductTax) string {
	if t == nil {
		return "-"
	}
	return fmt.Sprintf("%s %s", t.GroupName, pricing.FormatRate(t.TotalRate))
}

// productFormValues renders a product into the form's field order
func productFormValues(p *domain.Product) []string {
	values := []string{p.Name, p.Unit, p.SellingPrice.String(), string(domain.DiscountFixed), "", ""}
	if p.Discount != nil {
		values[productFieldDiscountType] = string(p.Discount.Type)
		values[productFieldDiscount] = p.Discount.Value.String()
	}
	if p.Tax != nil {
		values[productFieldTaxGroup] = strconv.FormatInt(p.Tax.GroupID, 10)
	}
	return values
}

// productFromForm builds a validated product from form values. When
// existing is non-nil its identity is kept and its fields are replaced.
func productFromForm(values []string, groups []domain.TaxGroup, existing *domain.Product) (*domain.Product, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(values[productFieldPrice]))
	if err != nil {
		return nil, errors.New("selling price must be a number")
	}

	var product *domain.Product
	if existing == nil {
		product = domain.NewProduct(values[productFieldName], values[productFieldUnit], price)
	} else {
		copied := *existing
		product = &copied
		product.Name = strings.TrimSpace(values[productFieldName])
		product.Unit = strings.TrimSpace(values[productFieldUnit])
		product.SellingPrice = price
	}

	product.Discount = nil
	if raw := strings.TrimSpace(values[productFieldDiscount]); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, errors.New("discount must be a number")
		}
		product.Discount = &domain.Discount{
			Type:  domain.DiscountType(strings.TrimSpace(values[productFieldDiscountType])),
			Value: value,
		}
	}

	product.Tax = nil
	if raw := strings.TrimSpace(values[productFieldTaxGroup]); raw != "" {
		id := pricing.ParseTaxGroupID(raw)
		group := domain.FindTaxGroup(groups, id)
		if group == nil {
			return nil, fmt.Errorf("no tax group with id %q", raw)
		}
		product.Tax = &domain.ProductTax{GroupID: group.ID, GroupName: group.Name, TotalRate: group.TotalRate}
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

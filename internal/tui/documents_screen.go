package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/kanakku/kanakku/internal/app"
	"github.com/kanakku/kanakku/internal/domain"
	"github.com/kanakku/kanakku/internal/pricing"
)

type docViewMode int

const (
	docViewList        docViewMode = iota
	docViewNew                     // New document form
	docViewEditor                  // Lines and totals of one document
	docViewPickProduct             // Catalog picker for a new line
	docViewEditLine                // Line edit dialog
)

// new document form field indices
const (
	newDocFieldKind = iota
	newDocFieldSupplier
	newDocFieldDate
)

// DocumentsModel lists documents and edits the lines of one
type DocumentsModel struct {
	app       *app.App
	money     func(decimal.Decimal) string
	mode      docViewMode
	docs      []*domain.Document
	cursor    int
	loading   bool
	err       error
	statusMsg string
	warnings  []error

	// Editor state
	doc        *domain.Document
	groups     []domain.TaxGroup
	lineCursor int

	// New document form
	newForm form

	// Product picker
	products     []*domain.Product
	pickCursor   int
	pickFilter   textinput.Model
	pickFiltered []*domain.Product

	// Line edit dialog
	editor lineEditor
}

type docsDataMsg struct {
	docs []*domain.Document
	err  error
}

type docDetailMsg struct {
	doc    *domain.Document
	groups []domain.TaxGroup
	err    error
}

type pickProductsMsg struct {
	products []*domain.Product
	err      error
}

// docMutatedMsg carries the document after a service call
type docMutatedMsg struct {
	doc      *domain.Document
	status   string
	warnings []error
	err      error
}

// NewDocumentsModel creates a new documents screen model
func NewDocumentsModel(a *app.App) tea.Model {
	return &DocumentsModel{
		app:     a,
		money:   moneyFormatter(a),
		mode:    docViewList,
		loading: true,
	}
}

// IsCapturingInput returns true while a form or the picker filter is active
func (m *DocumentsModel) IsCapturingInput() bool {
	return m.mode == docViewNew || m.mode == docViewPickProduct || m.mode == docViewEditLine
}

func (m *DocumentsModel) Init() tea.Cmd {
	return m.loadDocuments()
}

func (m *DocumentsModel) loadDocuments() tea.Cmd {
	return func() tea.Msg {
		docs, err := m.app.DocumentService.ListDocuments(context.Background(), nil, nil)
		return docsDataMsg{docs: docs, err: err}
	}
}

func (m *DocumentsModel) loadDocument(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		doc, err := m.app.DocumentService.GetDocument(ctx, id)
		if err != nil {
			return docDetailMsg{err: err}
		}

		groups, err := m.app.DocumentService.TaxGroups(ctx)
		if err != nil {
			return docDetailMsg{err: err}
		}

		return docDetailMsg{doc: doc, groups: groups}
	}
}

func (m *DocumentsModel) loadProducts() tea.Cmd {
	return func() tea.Msg {
		products, err := m.app.ProductRepo.List(context.Background())
		return pickProductsMsg{products: products, err: err}
	}
}

func (m *DocumentsModel) createDocument() tea.Cmd {
	kindStr := m.newForm.value(newDocFieldKind)
	supplier := m.newForm.value(newDocFieldSupplier)
	dateStr := m.newForm.value(newDocFieldDate)

	return func() tea.Msg {
		kind, err := domain.ParseDocumentKind(kindStr)
		if err != nil {
			return docMutatedMsg{err: err}
		}

		date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
		if err != nil {
			return docMutatedMsg{err: fmt.Errorf("date must be YYYY-MM-DD")}
		}

		doc, err := m.app.DocumentService.CreateDraft(context.Background(), kind, supplier, date, m.app.Config.Prefix(kind))
		if err != nil {
			return docMutatedMsg{err: err}
		}
		return docMutatedMsg{doc: doc, status: fmt.Sprintf("Created %s", doc.Number)}
	}
}

func (m *DocumentsModel) addProduct(product *domain.Product) tea.Cmd {
	docID := m.doc.ID
	return func() tea.Msg {
		doc, err := m.app.DocumentService.AddProduct(context.Background(), docID, product.ID, 1)
		if err != nil {
			return docMutatedMsg{err: err}
		}
		return docMutatedMsg{doc: doc, status: fmt.Sprintf("Added %s", product.Name)}
	}
}

func (m *DocumentsModel) saveLine() tea.Cmd {
	docID := m.doc.ID
	line := m.editor.original
	changes := m.editor.changes()
	return func() tea.Msg {
		if len(changes) == 0 {
			return docMutatedMsg{status: "No changes"}
		}
		doc, warnings, err := m.app.DocumentService.EditLine(context.Background(), docID, line.ID, changes)
		if err != nil {
			return docMutatedMsg{err: err}
		}
		return docMutatedMsg{doc: doc, warnings: warnings, status: fmt.Sprintf("Updated %s", line.Name)}
	}
}

func (m *DocumentsModel) removeLine(line domain.LineItem) tea.Cmd {
	docID := m.doc.ID
	return func() tea.Msg {
		doc, err := m.app.DocumentService.RemoveLine(context.Background(), docID, line.ID)
		if err != nil {
			return docMutatedMsg{err: err}
		}
		return docMutatedMsg{doc: doc, status: fmt.Sprintf("Removed %s", line.Name)}
	}
}

func (m *DocumentsModel) finalize() tea.Cmd {
	docID := m.doc.ID
	return func() tea.Msg {
		doc, err := m.app.DocumentService.Finalize(context.Background(), docID)
		if err != nil {
			return docMutatedMsg{err: err}
		}
		return docMutatedMsg{doc: doc, status: fmt.Sprintf("Finalized %s", doc.Number)}
	}
}

func (m *DocumentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		if m.mode == docViewEditor && m.doc != nil {
			m.loading = true
			return m, m.loadDocument(m.doc.ID)
		}
		if m.mode == docViewList {
			m.loading = true
			return m, m.loadDocuments()
		}
		return m, nil

	case docsDataMsg:
		m.loading = false
		m.err = msg.err
		m.docs = msg.docs
		m.cursor = clampCursor(m.cursor, len(m.docs))
		return m, nil

	case docDetailMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.doc = msg.doc
		m.groups = msg.groups
		m.lineCursor = clampCursor(m.lineCursor, len(m.doc.Items))
		m.mode = docViewEditor
		return m, nil

	case pickProductsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.mode = docViewEditor
			return m, nil
		}
		m.products = msg.products
		m.applyPickFilter()
		return m, nil

	case docMutatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.statusMsg = msg.status
		m.warnings = msg.warnings
		if msg.doc != nil {
			m.doc = msg.doc
			m.lineCursor = clampCursor(m.lineCursor, len(m.doc.Items))
		}
		m.mode = docViewEditor
		if m.doc != nil && len(m.groups) == 0 {
			return m, m.loadDocument(m.doc.ID)
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch m.mode {
		case docViewList:
			return m.updateList(msg)
		case docViewNew:
			return m.updateNew(msg)
		case docViewEditor:
			return m.updateEditor(msg)
		case docViewPickProduct:
			return m.updatePick(msg)
		case docViewEditLine:
			return m.updateEditLine(msg)
		}
	}

	// Forward non-key messages (cursor blink) to the active input
	switch m.mode {
	case docViewNew:
		_, cmd := m.newForm.update(msg)
		return m, cmd
	case docViewEditLine:
		_, cmd := m.editor.form.update(msg)
		return m, cmd
	case docViewPickProduct:
		var cmd tea.Cmd
		m.pickFilter, cmd = m.pickFilter.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *DocumentsModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.docs)-1 {
			m.cursor++
		}
	case key.Matches(msg, DefaultKeyMap.Select):
		if len(m.docs) > 0 {
			m.loading = true
			m.statusMsg = ""
			m.warnings = nil
			m.lineCursor = 0
			return m, m.loadDocument(m.docs[m.cursor].ID)
		}
	case key.Matches(msg, DefaultKeyMap.New):
		m.statusMsg = ""
		m.newForm = newForm([]formField{
			{label: "Kind (po, dn, pur):", placeholder: "po", width: 10, limit: 20},
			{label: "Supplier:", placeholder: "Supplier name", width: 40, limit: 100},
			{label: "Date:", placeholder: "YYYY-MM-DD", width: 12, limit: 10},
		}, []string{"po", "", time.Now().Format("2006-01-02")})
		m.mode = docViewNew
		return m, m.newForm.focusCmd()
	}

	return m, nil
}

func (m *DocumentsModel) updateNew(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.newForm.update(msg)
	switch action {
	case formCancel:
		m.mode = docViewList
		m.err = nil
		return m, nil
	case formSubmit:
		m.loading = true
		return m, m.createDocument()
	}
	return m, cmd
}

func (m *DocumentsModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, DefaultKeyMap.Back) {
		m.mode = docViewList
		m.doc = nil
		m.err = nil
		m.statusMsg = ""
		m.warnings = nil
		m.loading = true
		return m, m.loadDocuments()
	}

	switch {
	case key.Matches(msg, DefaultKeyMap.Up):
		if m.lineCursor > 0 {
			m.lineCursor--
		}
		return m, nil
	case key.Matches(msg, DefaultKeyMap.Down):
		if m.lineCursor < len(m.doc.Items)-1 {
			m.lineCursor++
		}
		return m, nil
	}

	if !m.doc.CanEdit() {
		return m, nil
	}

	m.err = nil
	switch {
	case key.Matches(msg, DefaultKeyMap.Add):
		m.statusMsg = ""
		m.warnings = nil
		m.pickFilter = textinput.New()
		m.pickFilter.Placeholder = "type to filter"
		m.pickFilter.Width = 30
		m.pickCursor = 0
		m.mode = docViewPickProduct
		m.loading = true
		return m, tea.Batch(m.pickFilter.Focus(), m.loadProducts())

	case key.Matches(msg, DefaultKeyMap.Edit):
		if len(m.doc.Items) > 0 {
			m.statusMsg = ""
			m.warnings = nil
			m.editor = newLineEditor(m.doc.Items[m.lineCursor], m.groups)
			m.mode = docViewEditLine
			return m, m.editor.form.focusCmd()
		}

	case key.Matches(msg, DefaultKeyMap.Delete):
		if len(m.doc.Items) > 0 {
			m.loading = true
			return m, m.removeLine(m.doc.Items[m.lineCursor])
		}

	case key.Matches(msg, DefaultKeyMap.Finalize):
		m.loading = true
		return m, m.finalize()
	}

	return m, nil
}

func (m *DocumentsModel) applyPickFilter() {
	term := strings.ToLower(strings.TrimSpace(m.pickFilter.Value()))
	m.pickFiltered = m.pickFiltered[:0]
	for _, p := range m.products {
		if term == "" || strings.Contains(strings.ToLower(p.Name), term) {
			m.pickFiltered = append(m.pickFiltered, p)
		}
	}
	m.pickCursor = clampCursor(m.pickCursor, len(m.pickFiltered))
}

func (m *DocumentsModel) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = docViewEditor
		return m, nil
	case "up", "ctrl+p":
		if m.pickCursor > 0 {
			m.pickCursor--
		}
		return m, nil
	case "down", "ctrl+n":
		if m.pickCursor < len(m.pickFiltered)-1 {
			m.pickCursor++
		}
		return m, nil
	case "enter":
		if len(m.pickFiltered) == 0 {
			return m, nil
		}
		product := m.pickFiltered[m.pickCursor]
		if m.doc.FindItem(product.ID) >= 0 {
			m.err = fmt.Errorf("%s is already on this document", product.Name)
			return m, nil
		}
		m.loading = true
		return m, m.addProduct(product)
	}

	var cmd tea.Cmd
	m.pickFilter, cmd = m.pickFilter.Update(msg)
	m.err = nil
	m.applyPickFilter()
	return m, cmd
}

func (m *DocumentsModel) updateEditLine(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.editor.form.update(msg)
	switch action {
	case formCancel:
		m.mode = docViewEditor
		return m, nil
	case formSubmit:
		m.loading = true
		return m, m.saveLine()
	}
	return m, cmd
}

func (m *DocumentsModel) View() string {
	if m.loading {
		return "Loading..."
	}

	switch m.mode {
	case docViewNew:
		return m.viewNew()
	case docViewEditor:
		return m.viewEditor()
	case docViewPickProduct:
		return m.viewPick()
	case docViewEditLine:
		return m.viewEditLine()
	default:
		return m.viewList()
	}
}

func (m *DocumentsModel) viewList() string {
	var s string
	s += titleStyle.Render("Documents") + "\n\n"

	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}
	if m.err != nil {
		s += errorLine(m.err)
	}

	if len(m.docs) == 0 && m.err == nil {
		s += subtitleStyle.Render("  No documents yet. Press 'n' to create one.")
		return s
	}

	s += subtitleStyle.Render(fmt.Sprintf(
		"  %-14s  %-15s  %-22s  %-10s  %16s  %s",
		"Number", "Kind", "Supplier", "Date", "Grand Total", "Status",
	)) + "\n"

	for i, doc := range m.docs {
		row := fmt.Sprintf("  %-14s  %-15s  %-22s  %-10s  %16s  %s",
			doc.Number,
			doc.Kind.Label(),
			truncateStr(doc.Supplier, 22),
			doc.Date.Format("2006-01-02"),
			m.money(doc.Totals.GrandTotal),
			statusBadge(doc.Status),
		)
		if i == m.cursor {
			s += selectedStyle.Render(row) + "\n"
		} else {
			s += row + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: open  n: new document")
	return s
}

func (m *DocumentsModel) viewNew() string {
	s := titleStyle.Render("New Document") + "\n\n"
	s += m.newForm.view()
	if m.err != nil {
		s += errorLine(m.err)
	}
	s += helpStyle.Render(formHelp)
	return s
}

func (m *DocumentsModel) viewEditor() string {
	doc := m.doc
	if doc == nil {
		return "No document selected"
	}

	var s string
	s += titleStyle.Render(fmt.Sprintf("%s %s", doc.Kind.Label(), doc.Number)) + "  " + statusBadge(doc.Status) + "\n\n"
	if doc.Supplier != "" {
		s += fmt.Sprintf("  Supplier: %s\n", doc.Supplier)
	}
	s += fmt.Sprintf("  Date:     %s\n\n", doc.Date.Format("Jan 02, 2006"))

	if m.statusMsg != "" {
		s += statusLine(m.statusMsg)
	}
	for _, w := range m.warnings {
		s += warningLine(w.Error())
	}
	if m.err != nil {
		s += errorLine(m.err)
	}

	if len(doc.Items) == 0 {
		s += subtitleStyle.Render("  No lines yet") + "\n"
	} else {
		s += subtitleStyle.Render(fmt.Sprintf(
			"  %-24s  %5s  %13s  %-10s  %12s  %11s  %14s",
			"Product", "Qty", "Rate", "Discount", "", "Tax", "Amount",
		)) + "\n"

		for i, item := range doc.Items {
			row := fmt.Sprintf("  %-24s  %5d  %13s  %-10s  %12s  %11s  %14s",
				truncateStr(item.Name, 24),
				item.Qty,
				m.money(item.Rate),
				discountLabel(item),
				m.money(item.Discount),
				m.money(item.Tax),
				m.money(item.Amount),
			)
			if i == m.lineCursor && doc.CanEdit() {
				s += selectedStyle.Render(row) + "\n"
			} else {
				s += row + "\n"
			}
		}
	}

	s += "\n" + m.viewTotals(doc.Totals)

	if doc.CanEdit() {
		s += "\n" + helpStyle.Render("  j/k: navigate  a: add product  e/enter: edit line  d: remove line  f: finalize  esc: back")
	} else {
		s += "\n" + helpStyle.Render("  esc: back")
	}
	return s
}

func (m *DocumentsModel) viewTotals(t domain.Totals) string {
	var s string
	s += fmt.Sprintf("  %-16s %16s\n", "Sub Total:", m.money(t.SubTotal))
	s += fmt.Sprintf("  %-16s %16s\n", "Total Discount:", m.money(t.TotalDiscount))
	s += fmt.Sprintf("  %-16s %16s\n", "Total Tax:", m.money(t.TotalTax))
	s += totalStyle.Render(fmt.Sprintf("  %-16s %16s", "Grand Total:", m.money(t.GrandTotal))) + "\n"
	s += wordsStyle.Render("  "+pricing.AmountInWords(t.GrandTotal)) + "\n"
	return s
}

func (m *DocumentsModel) viewPick() string {
	var s string
	s += titleStyle.Render(fmt.Sprintf("Add Product to %s", m.doc.Number)) + "\n\n"
	s += "  " + m.pickFilter.View() + "\n\n"

	if m.err != nil {
		s += errorLine(m.err)
	}

	if len(m.pickFiltered) == 0 {
		s += subtitleStyle.Render("  No matching products") + "\n"
	}

	for i, p := range m.pickFiltered {
		indicator := "  "
		if i == m.pickCursor {
			indicator = "> "
		}
		onDoc := ""
		if m.doc.FindItem(p.ID) >= 0 {
			onDoc = " (on document)"
		}
		row := fmt.Sprintf("%s%-28s %-8s %14s%s", indicator, truncateStr(p.Name, 28), truncateStr(p.Unit, 8), m.money(p.SellingPrice), onDoc)
		if i == m.pickCursor {
			s += focusStyle.Render(row) + "\n"
		} else {
			s += row + "\n"
		}
	}

	s += "\n" + helpStyle.Render("  type: filter  ↑/↓: navigate  enter: add  esc: cancel")
	return s
}

func (m *DocumentsModel) viewEditLine() string {
	var s string
	s += titleStyle.Render(fmt.Sprintf("Edit %s", m.editor.original.Name)) + "\n\n"

	form := m.editor.form.view()

	preview := m.editor.preview()
	box := fmt.Sprintf("%-10s %14s\n%-10s %14s\n%-10s %14s\n%-10s %14s",
		"Subtotal", m.money(preview.Subtotal()),
		"Discount", m.money(preview.Discount),
		"Tax", m.money(preview.Tax),
		"Amount", m.money(preview.Amount),
	)
	side := boxStyle.Render(box)

	s += lipgloss.JoinHorizontal(lipgloss.Top, form, "    ", side) + "\n"
	s += subtitleStyle.Render("  Tax groups: "+m.editor.groupHint()) + "\n\n"

	for _, w := range m.editor.warnings() {
		s += warningLine(w.Error())
	}
	if m.err != nil {
		s += errorLine(m.err)
	}

	s += "\n" + helpStyle.Render(formHelp)
	return s
}

// discountLabel shows how a line's discount value is read
func discountLabel(item domain.LineItem) string {
	if item.DiscountValue.IsZero() {
		return "-"
	}
	if item.DiscountType == domain.DiscountPercentage {
		return pricing.FormatRate(item.DiscountValue)
	}
	return "flat"
}

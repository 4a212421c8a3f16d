package tui

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// OpenNewProductFormMsg tells the catalog screen to open the new product form
type OpenNewProductFormMsg struct{}

// firstRunCheckMsg reports whether the catalog has any products
type firstRunCheckMsg struct {
	hasProducts bool
}

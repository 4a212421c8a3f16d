// Package pricing holds the line-item arithmetic shared by every purchasing
// document: building a line from a catalog pick, recomputing a line after an
// edit, totalling a document, and spelling the total out in words.
//
// Every function here is pure and total. Raw user input is coerced at the
// boundary (ParseQty, ParseMoneyInput, ParseTaxGroupID) so the arithmetic
// itself never fails.
package pricing

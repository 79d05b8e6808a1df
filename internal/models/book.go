package models

// Book is keyed by its client-supplied ISBN. Author is nil when the book
// has no author reference.
type Book struct {
	ISBN   string
	Title  *string
	Author *Author
}

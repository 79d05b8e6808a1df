package models

// Author is the persisted author row. ID is assigned by the store on first
// save and never changes afterwards; zero means "not yet saved".
//
// Name and Age are pointers so a nil value can mean "not provided" in a
// partial update.
type Author struct {
	ID   int64
	Name *string
	Age  *int
}

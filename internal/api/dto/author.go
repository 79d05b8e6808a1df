// Package dto holds the JSON shapes of the API and the conversions between
// them and the stored models.
package dto

import (
	"golang.org/x/text/unicode/norm"

	"github.com/5w1tchy/library-api/internal/models"
)

type AuthorDTO struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
	Age  *int    `json:"age"`
}

func AuthorToDTO(a models.Author) AuthorDTO {
	id := a.ID
	return AuthorDTO{ID: &id, Name: cloneString(a.Name), Age: cloneInt(a.Age)}
}

// AuthorFromDTO converts a request body to a model. A missing id becomes 0.
// Text is normalised to NFC.
func AuthorFromDTO(d AuthorDTO) models.Author {
	var id int64
	if d.ID != nil {
		id = *d.ID
	}
	return models.Author{ID: id, Name: nfc(d.Name), Age: cloneInt(d.Age)}
}

func nfc(s *string) *string {
	if s == nil {
		return nil
	}
	v := norm.NFC.String(*s)
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}

package dto

import "github.com/5w1tchy/library-api/internal/models"

type BookDTO struct {
	ISBN   string     `json:"isbn"`
	Title  *string    `json:"title"`
	Author *AuthorDTO `json:"author"`
}

func BookToDTO(b models.Book) BookDTO {
	out := BookDTO{ISBN: b.ISBN, Title: cloneString(b.Title)}
	if b.Author != nil {
		a := AuthorToDTO(*b.Author)
		out.Author = &a
	}
	return out
}

func BookFromDTO(d BookDTO) models.Book {
	out := models.Book{ISBN: d.ISBN, Title: nfc(d.Title)}
	if d.Author != nil {
		a := AuthorFromDTO(*d.Author)
		out.Author = &a
	}
	return out
}

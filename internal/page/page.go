// Package page holds the pagination request/response shapes shared by the
// list endpoints and the stores.
package page

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSize = 20
	MaxSize     = 2000
)

type Order struct {
	Property string
	Desc     bool
}

// Request asks for the zero-based page Page of Size elements, ordered by Sort.
type Request struct {
	Page int
	Size int
	Sort []Order
}

func (r Request) Offset() uint64 { return uint64(r.Page) * uint64(r.Size) }

// Normalize clamps page and size into range.
func (r Request) Normalize() Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size < 1 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	return r
}

// FromQuery reads ?page=&size=&sort=prop[,asc|desc] (sort may repeat).
// Sort properties not present in allowed are dropped.
func FromQuery(q url.Values, allowed map[string]string) Request {
	req := Request{
		Page: parseInt(q.Get("page"), 0),
		Size: parseInt(q.Get("size"), DefaultSize),
	}
	for _, raw := range q["sort"] {
		parts := strings.Split(raw, ",")
		desc := false
		if n := len(parts); n > 1 {
			switch strings.ToLower(strings.TrimSpace(parts[n-1])) {
			case "desc":
				desc = true
				parts = parts[:n-1]
			case "asc":
				parts = parts[:n-1]
			}
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if _, ok := allowed[p]; !ok {
				continue
			}
			req.Sort = append(req.Sort, Order{Property: p, Desc: desc})
		}
	}
	return req.Normalize()
}

// OrderBy renders r.Sort as SQL ORDER BY terms using the property->column
// mapping. fallback is used when nothing was requested.
func (r Request) OrderBy(columns map[string]string, fallback ...string) []string {
	out := make([]string, 0, len(r.Sort))
	for _, o := range r.Sort {
		col, ok := columns[o.Property]
		if !ok {
			continue
		}
		if o.Desc {
			out = append(out, col+" DESC")
		} else {
			out = append(out, col+" ASC")
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"total_elements"`
	TotalPages       int   `json:"total_pages"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"number_of_elements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func New[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       pages,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page+1 >= pages,
		Empty:            len(content) == 0,
	}
}

// Map converts the content of p while keeping its metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Content))
	for i, v := range p.Content {
		out[i] = fn(v)
	}
	return Page[U]{
		Content:          out,
		TotalElements:    p.TotalElements,
		TotalPages:       p.TotalPages,
		Number:           p.Number,
		Size:             p.Size,
		NumberOfElements: p.NumberOfElements,
		First:            p.First,
		Last:             p.Last,
		Empty:            p.Empty,
	}
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

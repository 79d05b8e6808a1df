package router_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/library-api/internal/api/dto"
	"github.com/5w1tchy/library-api/internal/api/router"
	"github.com/5w1tchy/library-api/internal/page"
	"github.com/5w1tchy/library-api/internal/service"
	storeauthors "github.com/5w1tchy/library-api/internal/store/authors"
	storebooks "github.com/5w1tchy/library-api/internal/store/books"
	"github.com/5w1tchy/library-api/internal/testutil"
)

func newHandler(t *testing.T) http.Handler {
	t.Helper()
	h, _ := newHandlerDB(t)
	return h
}

func newHandlerDB(t *testing.T) (http.Handler, *sql.DB) {
	t.Helper()
	db, d := testutil.OpenSQLite(t)
	return router.Router(db,
		service.NewAuthors(storeauthors.New(db, d)),
		service.NewBooks(storebooks.New(db, d)),
	), db
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createAuthor(t *testing.T, h http.Handler, body string) dto.AuthorDTO {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/authors", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	a := decode[dto.AuthorDTO](t, rec)
	require.NotNil(t, a.ID)
	return a
}

func authorPath(a dto.AuthorDTO) string {
	return "/authors/" + strconv.FormatInt(*a.ID, 10)
}

// ---------- authors ----------

func TestCreateAuthor_ReturnsGeneratedIDAndFields(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/authors", `{"id":999,"name":"Jane Foster","age":49}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	a := decode[dto.AuthorDTO](t, rec)
	require.NotNil(t, a.ID)
	assert.NotEqual(t, int64(999), *a.ID, "client supplied id is ignored")
	assert.Equal(t, "Jane Foster", *a.Name)
	assert.Equal(t, 49, *a.Age)
}

func TestCreateAuthor_MissingFieldsStoredAsNull(t *testing.T) {
	h := newHandler(t)

	a := createAuthor(t, h, `{}`)

	assert.Nil(t, a.Name)
	assert.Nil(t, a.Age)
}

func TestCreateAuthor_MalformedJSON(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/authors", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestGetAuthor(t *testing.T) {
	h := newHandler(t)
	created := createAuthor(t, h, `{"name":"Kim Dokja","age":28}`)

	rec := do(t, h, http.MethodGet, authorPath(created), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[dto.AuthorDTO](t, rec))
}

func TestGetAuthor_NotFound(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/authors/12345", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestGetAuthor_NonNumericID(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/authors/jane", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPutAuthor_ReplacesAllFields(t *testing.T) {
	h := newHandler(t)
	created := createAuthor(t, h, `{"name":"Jane Foster","age":49}`)

	rec := do(t, h, http.MethodPut, authorPath(created), `{"id":777,"name":"Jane Thor"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.AuthorDTO](t, rec)
	assert.Equal(t, *created.ID, *got.ID, "path id wins")
	assert.Equal(t, "Jane Thor", *got.Name)
	assert.Nil(t, got.Age, "PUT does not keep omitted fields")

	rec = do(t, h, http.MethodGet, authorPath(created), "")
	assert.Equal(t, got, decode[dto.AuthorDTO](t, rec))
}

func TestPutAuthor_NotFound(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPut, "/authors/404", `{"name":"Nobody"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	list := decode[page.Page[dto.AuthorDTO]](t, do(t, h, http.MethodGet, "/authors", ""))
	assert.Zero(t, list.TotalElements, "PUT on a missing id must not create")
}

func TestPutAuthor_DeletedAuthorIsNotRecreated(t *testing.T) {
	h := newHandler(t)
	created := createAuthor(t, h, `{"name":"Jane Foster","age":49}`)
	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, authorPath(created), "").Code)

	rec := do(t, h, http.MethodPut, authorPath(created), `{"name":"Jane Foster","age":50}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, authorPath(created), "").Code)
}

func TestPatchAuthor_PreservesOmittedFields(t *testing.T) {
	h := newHandler(t)
	created := createAuthor(t, h, `{"name":"Jane Foster","age":49}`)

	rec := do(t, h, http.MethodPatch, authorPath(created), `{"name":"Jane X"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.AuthorDTO](t, rec)
	assert.Equal(t, "Jane X", *got.Name)
	assert.Equal(t, 49, *got.Age)
}

func TestPatchAuthor_NullAndEmptyString(t *testing.T) {
	h := newHandler(t)
	created := createAuthor(t, h, `{"name":"Jane Foster","age":49}`)

	rec := do(t, h, http.MethodPatch, authorPath(created), `{"name":"","age":null}`)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[dto.AuthorDTO](t, rec)
	require.NotNil(t, got.Name)
	assert.Equal(t, "", *got.Name, "empty string is a value")
	assert.Equal(t, 49, *got.Age, "null keeps the stored value")
}

func TestPatchAuthor_NotFound(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPatch, "/authors/9", `{"name":"Ghost"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAuthor(t *testing.T) {
	h := newHandler(t)
	created := createAuthor(t, h, `{"name":"Jane Foster","age":49}`)

	rec := do(t, h, http.MethodDelete, authorPath(created), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(t, h, http.MethodGet, authorPath(created), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAuthor_MissingIsNoContent(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodDelete, "/authors/31337", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListAuthors_Paged(t *testing.T) {
	h := newHandler(t)
	createAuthor(t, h, `{"name":"Jane Foster","age":49}`)
	createAuthor(t, h, `{"name":"Kim Dokja","age":28}`)
	createAuthor(t, h, `{"name":"Cross Shakti","age":54}`)

	rec := do(t, h, http.MethodGet, "/authors?page=0&size=2&sort=age,desc", "")

	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[page.Page[dto.AuthorDTO]](t, rec)
	assert.Equal(t, int64(3), p.TotalElements)
	assert.Equal(t, 2, p.TotalPages)
	assert.Equal(t, 0, p.Number)
	assert.True(t, p.First)
	assert.False(t, p.Last)
	require.Len(t, p.Content, 2)
	assert.Equal(t, 54, *p.Content[0].Age)
	assert.Equal(t, 49, *p.Content[1].Age)

	rec = do(t, h, http.MethodGet, "/authors?page=1&size=2&sort=age,desc", "")
	p = decode[page.Page[dto.AuthorDTO]](t, rec)
	require.Len(t, p.Content, 1)
	assert.Equal(t, 28, *p.Content[0].Age)
	assert.True(t, p.Last)
}

func TestListAuthors_AgeLessThan(t *testing.T) {
	h := newHandler(t)
	createAuthor(t, h, `{"name":"Jane Foster","age":49}`)
	createAuthor(t, h, `{"name":"Kim Dokja","age":28}`)
	createAuthor(t, h, `{"name":"Cross Shakti","age":54}`)

	rec := do(t, h, http.MethodGet, "/authors?ageLessThan=50", "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[[]dto.AuthorDTO](t, rec)
	require.Len(t, got, 2)
	assert.Equal(t, "Jane Foster", *got[0].Name)
	assert.Equal(t, "Kim Dokja", *got[1].Name)

	rec = do(t, h, http.MethodGet, "/authors?ageLessThan=old", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthors_MethodNotAllowed(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPost, "/authors/1", `{}`)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Allow"))
}

// ---------- books ----------

func TestPutBook_CreateThenReplace(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPut, "/books/978-0441172719", `{"title":"Dune"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	b := decode[dto.BookDTO](t, rec)
	assert.Equal(t, "978-0441172719", b.ISBN)
	assert.Equal(t, "Dune", *b.Title)

	rec = do(t, h, http.MethodPut, "/books/978-0441172719", `{"title":"Dune Messiah"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/books/978-0441172719", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Dune Messiah", *decode[dto.BookDTO](t, rec).Title)
}

func TestPutBook_PathISBNWins(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPut, "/books/111", `{"isbn":"222","title":"Omniscient Reader"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "111", decode[dto.BookDTO](t, rec).ISBN)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/books/222", "").Code)
}

func TestPutBook_WithAuthorReference(t *testing.T) {
	h := newHandler(t)
	author := createAuthor(t, h, `{"name":"Frank Herbert","age":65}`)

	body := `{"title":"Dune","author":{"id":` + strconv.FormatInt(*author.ID, 10) + `}}`
	rec := do(t, h, http.MethodPut, "/books/978-0441172719", body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	b := decode[dto.BookDTO](t, rec)
	require.NotNil(t, b.Author)
	assert.Equal(t, author, *b.Author, "author is hydrated from the store")

	rec = do(t, h, http.MethodGet, "/books/978-0441172719", "")
	assert.Equal(t, b, decode[dto.BookDTO](t, rec))
}

func TestPutBook_NewAuthorIsCreated(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPut, "/books/978-1", `{"title":"T","author":{"name":"Jane Foster","age":49}}`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	b := decode[dto.BookDTO](t, rec)
	require.NotNil(t, b.Author)
	require.NotNil(t, b.Author.ID)
	assert.Equal(t, "Jane Foster", *b.Author.Name)
	assert.Equal(t, 49, *b.Author.Age)

	rec = do(t, h, http.MethodGet, "/authors/"+strconv.FormatInt(*b.Author.ID, 10), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, *b.Author, decode[dto.AuthorDTO](t, rec))

	list := decode[page.Page[dto.AuthorDTO]](t, do(t, h, http.MethodGet, "/authors", ""))
	assert.Equal(t, int64(1), list.TotalElements)
}

func TestPutBook_UnknownAuthorConflicts(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPut, "/books/1", `{"title":"Orphan","author":{"id":4242}}`)

	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestGetBook_NotFound(t *testing.T) {
	h := newHandler(t)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/books/nope", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodHead, "/books/nope", "").Code)
}

func TestPatchBook_PreservesOmittedFields(t *testing.T) {
	h := newHandler(t)
	author := createAuthor(t, h, `{"name":"Frank Herbert","age":65}`)
	body := `{"title":"Dune","author":{"id":` + strconv.FormatInt(*author.ID, 10) + `}}`
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPut, "/books/42", body).Code)

	rec := do(t, h, http.MethodPatch, "/books/42", `{"title":"Children of Dune"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	b := decode[dto.BookDTO](t, rec)
	assert.Equal(t, "Children of Dune", *b.Title)
	require.NotNil(t, b.Author)
	assert.Equal(t, *author.ID, *b.Author.ID)
}

func TestPatchBook_AuthorWithoutIDKeepsALink(t *testing.T) {
	h := newHandler(t)
	author := createAuthor(t, h, `{"name":"Frank Herbert","age":65}`)
	body := `{"title":"Dune","author":{"id":` + strconv.FormatInt(*author.ID, 10) + `}}`
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPut, "/books/42", body).Code)

	rec := do(t, h, http.MethodPatch, "/books/42", `{"author":{"name":"Brian Herbert"}}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	b := decode[dto.BookDTO](t, rec)
	assert.Equal(t, "Dune", *b.Title)
	require.NotNil(t, b.Author, "a non-null author never clears the link")
	require.NotNil(t, b.Author.ID)
	assert.NotEqual(t, *author.ID, *b.Author.ID)
	assert.Equal(t, "Brian Herbert", *b.Author.Name)

	rec = do(t, h, http.MethodGet, authorPath(author), "")
	assert.Equal(t, http.StatusOK, rec.Code, "the previous author is untouched")
}

func TestPatchBook_NotFound(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodPatch, "/books/none", `{"title":"x"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBook(t *testing.T) {
	h := newHandler(t)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPut, "/books/42", `{"title":"Dune"}`).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodHead, "/books/42", "").Code)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/books/42", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/books/42", "").Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/books/42", "").Code, "second delete is still 204")
}

func TestDeleteAuthor_KeepsBooks(t *testing.T) {
	h := newHandler(t)
	author := createAuthor(t, h, `{"name":"Frank Herbert","age":65}`)
	body := `{"title":"Dune","author":{"id":` + strconv.FormatInt(*author.ID, 10) + `}}`
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPut, "/books/42", body).Code)

	require.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, authorPath(author), "").Code)

	rec := do(t, h, http.MethodGet, "/books/42", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[dto.BookDTO](t, rec).Author)
}

func TestListBooks_Paged(t *testing.T) {
	h := newHandler(t)
	for _, isbn := range []string{"3", "1", "2"} {
		require.Equal(t, http.StatusCreated, do(t, h, http.MethodPut, "/books/"+isbn, `{"title":"Book `+isbn+`"}`).Code)
	}

	rec := do(t, h, http.MethodGet, "/books?size=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[page.Page[dto.BookDTO]](t, rec)
	assert.Equal(t, int64(3), p.TotalElements)
	require.Len(t, p.Content, 2)
	assert.Equal(t, "1", p.Content[0].ISBN)
	assert.Equal(t, "2", p.Content[1].ISBN)

	rec = do(t, h, http.MethodGet, "/books?sort=title,desc", "")
	p = decode[page.Page[dto.BookDTO]](t, rec)
	require.Len(t, p.Content, 3)
	assert.Equal(t, "3", p.Content[0].ISBN)
}

func TestHeadBook_StoreErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	h, db := newHandlerDB(t)
	require.NoError(t, db.Close())

	rec := do(t, h, http.MethodHead, "/books/42", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "lookup failed")
	assert.Contains(t, buf.String(), `"path":"/books/42"`)
}

// ---------- health ----------

func TestHealthEndpoints(t *testing.T) {
	h := newHandler(t)

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

package services_test

import (
	"context"
	"testing"

	"bookstore-api/auth"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newCatalogService(store *fakeStore, cache services.BookListCache) services.CatalogService {
	return services.NewCatalogService(store, cache, zap.NewNop())
}

func seedGenre(store *fakeStore, name string, bookCount int) *models.Genre {
	genre := &models.Genre{ID: uuid.New(), Name: name, BookCount: bookCount}
	_ = store.Genres().Create(context.Background(), genre)
	return genre
}

func createBookRequest(genreID uuid.UUID) *models.CreateBookRequest {
	return &models.CreateBookRequest{
		Title:   "Dune",
		Author:  "Frank Herbert",
		Price:   12.00,
		Stock:   10,
		GenreID: genreID,
	}
}

func TestCatalog_CreateBook_IncrementsGenreCount(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)
	genre := seedGenre(store, "Sci-Fi", 0)

	book, svcErr := svc.CreateBook(context.Background(), adminIdentity(), createBookRequest(genre.ID))

	assert.Nil(t, svcErr)
	assert.Equal(t, "Dune", book.Title)

	updated, _ := store.Genres().FindByID(context.Background(), genre.ID)
	assert.Equal(t, 1, updated.BookCount)
}

func TestCatalog_CreateBook_UnknownGenre(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)

	_, svcErr := svc.CreateBook(context.Background(), adminIdentity(), createBookRequest(uuid.New()))

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "Invalid GenreId.", svcErr.Message)
	books, _ := store.Books().FindAll(context.Background())
	assert.Empty(t, books)
}

func TestCatalog_CreateBook_RequiresAdmin(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)
	genre := seedGenre(store, "Sci-Fi", 0)

	_, svcErr := svc.CreateBook(context.Background(), userIdentity(), createBookRequest(genre.ID))

	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
	assert.Equal(t, "You do not have permission to use this resource.", svcErr.Message)

	_, svcErr = svc.CreateBook(context.Background(), auth.Identity{}, createBookRequest(genre.ID))
	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
	assert.Equal(t, "Invalid or missing token.", svcErr.Message)
}

func TestCatalog_UpdateBook_IDMismatch(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)

	req := &models.UpdateBookRequest{ID: uuid.New(), Title: "X", Author: "Y", GenreID: uuid.New()}
	_, svcErr := svc.UpdateBook(context.Background(), adminIdentity(), uuid.New(), req)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "ID mismatch!", svcErr.Message)
}

func TestCatalog_UpdateBook_GenreChangeRebalancesCounts(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)
	scifi := seedGenre(store, "Sci-Fi", 0)
	fantasy := seedGenre(store, "Fantasy", 0)

	book, _ := svc.CreateBook(context.Background(), adminIdentity(), createBookRequest(scifi.ID))

	req := &models.UpdateBookRequest{
		ID:      book.ID,
		Title:   book.Title,
		Author:  book.Author,
		Price:   book.Price,
		Stock:   book.Stock,
		GenreID: fantasy.ID,
	}
	updated, svcErr := svc.UpdateBook(context.Background(), adminIdentity(), book.ID, req)

	assert.Nil(t, svcErr)
	assert.Equal(t, fantasy.ID, updated.GenreID)

	oldGenre, _ := store.Genres().FindByID(context.Background(), scifi.ID)
	newGenre, _ := store.Genres().FindByID(context.Background(), fantasy.ID)
	assert.Equal(t, 0, oldGenre.BookCount)
	assert.Equal(t, 1, newGenre.BookCount)
}

func TestCatalog_UpdateBook_UnknownNewGenre(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)
	scifi := seedGenre(store, "Sci-Fi", 0)
	book, _ := svc.CreateBook(context.Background(), adminIdentity(), createBookRequest(scifi.ID))

	req := &models.UpdateBookRequest{
		ID:      book.ID,
		Title:   book.Title,
		Author:  book.Author,
		Price:   book.Price,
		Stock:   book.Stock,
		GenreID: uuid.New(),
	}
	_, svcErr := svc.UpdateBook(context.Background(), adminIdentity(), book.ID, req)

	assert.NotNil(t, svcErr)
	assert.Equal(t, 400, svcErr.StatusCode)
	assert.Equal(t, "New genre not found!", svcErr.Message)

	// old genre count untouched by the failed move
	oldGenre, _ := store.Genres().FindByID(context.Background(), scifi.ID)
	assert.Equal(t, 1, oldGenre.BookCount)
}

func TestCatalog_DeleteBook_DecrementsGenreCount(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)
	genre := seedGenre(store, "Sci-Fi", 0)
	book, _ := svc.CreateBook(context.Background(), adminIdentity(), createBookRequest(genre.ID))

	deleted, svcErr := svc.DeleteBook(context.Background(), adminIdentity(), book.ID)

	assert.Nil(t, svcErr)
	assert.Equal(t, book.ID, deleted.ID)

	updated, _ := store.Genres().FindByID(context.Background(), genre.ID)
	assert.Equal(t, 0, updated.BookCount)

	_, getErr := svc.GetBook(context.Background(), book.ID)
	assert.NotNil(t, getErr)
	assert.Equal(t, 404, getErr.StatusCode)
	assert.Equal(t, "Book not found!", getErr.Message)
}

func TestCatalog_DeleteBook_CountClampsAtZero(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)
	// counter already drifted to zero while a book row still exists
	genre := seedGenre(store, "Sci-Fi", 0)
	book := seedBook(store, "Dune", 12.00, 10)
	book.GenreID = genre.ID
	_ = store.Books().Update(context.Background(), book)

	_, svcErr := svc.DeleteBook(context.Background(), adminIdentity(), book.ID)

	assert.Nil(t, svcErr)
	updated, _ := store.Genres().FindByID(context.Background(), genre.ID)
	assert.Equal(t, 0, updated.BookCount, "decrement never drives the counter negative")
}

func TestCatalog_ListBooks_UsesCache(t *testing.T) {
	store := newFakeStore()
	cache := &mockCache{}
	svc := newCatalogService(store, cache)
	seedBook(store, "Dune", 12.00, 10)

	// first call misses and fills the cache
	books, svcErr := svc.ListBooks(context.Background())
	assert.Nil(t, svcErr)
	assert.Len(t, books, 1)
	assert.Equal(t, 1, cache.setBookLists)

	// second call is served from the cache
	cache.ok = true
	seedBook(store, "Hyperion", 9.50, 5)
	books, svcErr = svc.ListBooks(context.Background())
	assert.Nil(t, svcErr)
	assert.Len(t, books, 1)
}

func TestCatalog_CreateBook_InvalidatesCache(t *testing.T) {
	store := newFakeStore()
	cache := &mockCache{ok: true}
	svc := newCatalogService(store, cache)
	genre := seedGenre(store, "Sci-Fi", 0)

	_, svcErr := svc.CreateBook(context.Background(), adminIdentity(), createBookRequest(genre.ID))

	assert.Nil(t, svcErr)
	assert.Equal(t, 1, cache.invalidated)
}

func TestCatalog_FilterBooks(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)
	genre := seedGenre(store, "Sci-Fi", 0)

	cheap := seedBook(store, "Cheap Read", 5.00, 3)
	cheap.GenreID = genre.ID
	_ = store.Books().Update(context.Background(), cheap)
	seedBook(store, "Pricey Tome", 50.00, 3)

	min := 1.00
	max := 10.00
	books, svcErr := svc.FilterBooks(context.Background(), models.BookFilters{
		GenreID:  &genre.ID,
		MinPrice: &min,
		MaxPrice: &max,
	})

	assert.Nil(t, svcErr)
	assert.Len(t, books, 1)
	assert.Equal(t, "Cheap Read", books[0].Title)
}

func TestCatalog_GenreCRUD(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)
	admin := adminIdentity()

	genre, svcErr := svc.CreateGenre(context.Background(), admin, &models.GenreRequest{Name: "Sci-Fi"})
	assert.Nil(t, svcErr)

	renamed, svcErr := svc.UpdateGenre(context.Background(), admin, genre.ID, &models.GenreRequest{Name: "Science Fiction"})
	assert.Nil(t, svcErr)
	assert.Equal(t, "Science Fiction", renamed.Name)

	genres, svcErr := svc.ListGenres(context.Background())
	assert.Nil(t, svcErr)
	assert.Len(t, genres, 1)

	deleted, svcErr := svc.DeleteGenre(context.Background(), admin, genre.ID)
	assert.Nil(t, svcErr)
	assert.Equal(t, genre.ID, deleted.ID)

	_, svcErr = svc.GetGenre(context.Background(), genre.ID)
	assert.NotNil(t, svcErr)
	assert.Equal(t, 404, svcErr.StatusCode)
	assert.Equal(t, "Genre not found!", svcErr.Message)
}

func TestCatalog_GenreMutationsRequireAdmin(t *testing.T) {
	store := newFakeStore()
	svc := newCatalogService(store, nil)

	_, svcErr := svc.CreateGenre(context.Background(), userIdentity(), &models.GenreRequest{Name: "Sci-Fi"})
	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)

	_, svcErr = svc.DeleteGenre(context.Background(), auth.Identity{}, uuid.New())
	assert.NotNil(t, svcErr)
	assert.Equal(t, 401, svcErr.StatusCode)
}

package services_test

import (
	"context"
	"fmt"
	"sort"

	"bookstore-api/models"
	"bookstore-api/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore is an in-memory repository.Store. Transaction snapshots the
// maps before running fn and restores them when fn fails, so tests can
// observe the all-or-nothing behavior of checkout and catalog mutations.
type fakeStore struct {
	users     map[uuid.UUID]*models.User
	books     map[uuid.UUID]*models.Book
	genres    map[uuid.UUID]*models.Genre
	cartItems map[uuid.UUID]*models.CartItem
	orders    map[uuid.UUID]*models.Order

	// failDecrement forces DecrementStock to report a lost race for the
	// given book IDs, simulating a concurrent checkout.
	failDecrement map[uuid.UUID]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[uuid.UUID]*models.User),
		books:         make(map[uuid.UUID]*models.Book),
		genres:        make(map[uuid.UUID]*models.Genre),
		cartItems:     make(map[uuid.UUID]*models.CartItem),
		orders:        make(map[uuid.UUID]*models.Order),
		failDecrement: make(map[uuid.UUID]bool),
	}
}

func (s *fakeStore) Users() repository.UserRepository     { return (*fakeUserRepo)(s) }
func (s *fakeStore) Books() repository.BookRepository     { return (*fakeBookRepo)(s) }
func (s *fakeStore) Genres() repository.GenreRepository   { return (*fakeGenreRepo)(s) }
func (s *fakeStore) CartItems() repository.CartRepository { return (*fakeCartRepo)(s) }
func (s *fakeStore) Orders() repository.OrderRepository   { return (*fakeOrderRepo)(s) }

func (s *fakeStore) Transaction(_ context.Context, fn func(tx repository.Store) error) error {
	users := cloneMap(s.users)
	books := cloneMap(s.books)
	genres := cloneMap(s.genres)
	cartItems := cloneMap(s.cartItems)
	orders := cloneMap(s.orders)

	if err := fn(s); err != nil {
		s.users = users
		s.books = books
		s.genres = genres
		s.cartItems = cartItems
		s.orders = orders
		return err
	}
	return nil
}

func cloneMap[V any](m map[uuid.UUID]*V) map[uuid.UUID]*V {
	out := make(map[uuid.UUID]*V, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

// --- Users ---

type fakeUserRepo fakeStore

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// --- Books ---

type fakeBookRepo fakeStore

func (r *fakeBookRepo) Create(_ context.Context, book *models.Book) error {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	cp := *book
	r.books[book.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Update(_ context.Context, book *models.Book) error {
	if _, ok := r.books[book.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *book
	r.books[book.ID] = &cp
	return nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookRepo) FindAll(_ context.Context) ([]models.Book, error) {
	var out []models.Book
	for _, b := range r.books {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeBookRepo) Search(_ context.Context, title, author string) ([]models.Book, error) {
	var out []models.Book
	for _, b := range r.books {
		if title != "" && b.Title != title {
			continue
		}
		if author != "" && b.Author != author {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookRepo) Filter(_ context.Context, filters models.BookFilters) ([]models.Book, error) {
	var out []models.Book
	for _, b := range r.books {
		if filters.GenreID != nil && b.GenreID != *filters.GenreID {
			continue
		}
		if filters.MinPrice != nil && b.Price < *filters.MinPrice {
			continue
		}
		if filters.MaxPrice != nil && b.Price > *filters.MaxPrice {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeBookRepo) DecrementStock(_ context.Context, id uuid.UUID, quantity int) (bool, error) {
	if r.failDecrement[id] {
		return false, nil
	}
	b, ok := r.books[id]
	if !ok || b.Stock < quantity {
		return false, nil
	}
	b.Stock -= quantity
	return true, nil
}

// --- Genres ---

type fakeGenreRepo fakeStore

func (r *fakeGenreRepo) Create(_ context.Context, genre *models.Genre) error {
	if genre.ID == uuid.Nil {
		genre.ID = uuid.New()
	}
	cp := *genre
	r.genres[genre.ID] = &cp
	return nil
}

func (r *fakeGenreRepo) Update(_ context.Context, genre *models.Genre) error {
	existing, ok := r.genres[genre.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Name = genre.Name
	return nil
}

func (r *fakeGenreRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.genres, id)
	return nil
}

func (r *fakeGenreRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Genre, error) {
	g, ok := r.genres[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGenreRepo) FindAll(_ context.Context) ([]models.Genre, error) {
	var out []models.Genre
	for _, g := range r.genres {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeGenreRepo) IncrementBookCount(_ context.Context, id uuid.UUID, delta int) error {
	g, ok := r.genres[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if delta < 0 && g.BookCount < -delta {
		return nil
	}
	g.BookCount += delta
	return nil
}

// --- Cart items ---

type fakeCartRepo fakeStore

func (r *fakeCartRepo) Create(_ context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	for _, existing := range r.cartItems {
		if existing.UserID == item.UserID && existing.BookID == item.BookID {
			return fmt.Errorf("duplicate cart row for user %s book %s", item.UserID, item.BookID)
		}
	}
	cp := *item
	r.cartItems[item.ID] = &cp
	return nil
}

func (r *fakeCartRepo) Update(_ context.Context, item *models.CartItem) error {
	if _, ok := r.cartItems[item.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *item
	r.cartItems[item.ID] = &cp
	return nil
}

func (r *fakeCartRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.cartItems, id)
	return nil
}

func (r *fakeCartRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	for id, item := range r.cartItems {
		if item.UserID == userID {
			delete(r.cartItems, id)
		}
	}
	return nil
}

func (r *fakeCartRepo) FindByID(_ context.Context, id uuid.UUID) (*models.CartItem, error) {
	item, ok := r.cartItems[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeCartRepo) FindByUserAndBook(_ context.Context, userID, bookID uuid.UUID) (*models.CartItem, error) {
	for _, item := range r.cartItems {
		if item.UserID == userID && item.BookID == bookID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCartRepo) FindLinesByUser(_ context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	var lines []models.CartLine
	for _, item := range r.cartItems {
		if item.UserID != userID {
			continue
		}
		book, ok := r.books[item.BookID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{
			ID:       item.ID,
			BookID:   item.BookID,
			Title:    book.Title,
			Author:   book.Author,
			Price:    item.Price,
			Quantity: item.Quantity,
			Stock:    book.Stock,
		})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Title < lines[j].Title })
	return lines, nil
}

// --- Orders ---

type fakeOrderRepo fakeStore

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	cp := *order
	r.orders[order.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.OrderStatus) error {
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.Status = status
	return nil
}

package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"driveshare/pkg/models"
	"driveshare/storage"
)

// mockStorage is an in-memory storage.IStorage. The order repo mirrors
// the contract of the postgres one, including the atomic re-check on
// insert, so the booking core can be exercised without a database.
type mockStorage struct {
	users  *mockUserRepo
	cars   *mockCarRepo
	orders *mockOrderRepo
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		users:  &mockUserRepo{byID: map[uuid.UUID]*models.User{}},
		cars:   &mockCarRepo{byID: map[uuid.UUID]*models.Car{}},
		orders: &mockOrderRepo{byID: map[uuid.UUID]*models.Order{}},
	}
}

func (m *mockStorage) User() storage.IUserStorage         { return m.users }
func (m *mockStorage) Car() storage.ICarStorage           { return m.cars }
func (m *mockStorage) Order() storage.IOrderStorage       { return m.orders }
func (m *mockStorage) Review() storage.IReviewStorage     { return nil }
func (m *mockStorage) Favorite() storage.IFavoriteStorage { return nil }
func (m *mockStorage) Close()                             {}
func (m *mockStorage) GetPool() *pgxpool.Pool             { return nil }

func (m *mockStorage) addUser(role string) *models.User {
	u := &models.User{ID: uuid.New(), Name: "u", Email: uuid.NewString() + "@x.io", Role: role}
	m.users.byID[u.ID] = u
	return u
}

func (m *mockStorage) addCar(ownerID uuid.UUID, dailyRate float64) *models.Car {
	c := &models.Car{ID: uuid.New(), OwnerID: ownerID, Brand: "Toyota", Model: "Corolla", DailyRate: dailyRate, IsListed: true}
	m.cars.byID[c.ID] = c
	return c
}

type mockUserRepo struct {
	byID map[uuid.UUID]*models.User
	err  error
}

func (r *mockUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user.CreatedAt = time.Now()
	r.byID[user.ID] = user
	return user, nil
}

func (r *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return u, nil
}

func (r *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *mockUserRepo) UpdateRole(_ context.Context, id uuid.UUID, role string) error {
	u, ok := r.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *mockUserRepo) LinkTelegram(_ context.Context, id uuid.UUID, chatID int64) error {
	u, ok := r.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.TelegramChatID = &chatID
	return nil
}

type mockCarRepo struct {
	byID map[uuid.UUID]*models.Car
	err  error
}

func (r *mockCarRepo) Create(_ context.Context, car *models.Car) (*models.Car, error) {
	if r.err != nil {
		return nil, r.err
	}
	car.CreatedAt = time.Now()
	r.byID[car.ID] = car
	return car, nil
}

func (r *mockCarRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Car, error) {
	if r.err != nil {
		return nil, r.err
	}
	c, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return c, nil
}

func (r *mockCarRepo) GetByOwner(_ context.Context, ownerID uuid.UUID) ([]*models.Car, error) {
	var cars []*models.Car
	for _, c := range r.byID {
		if c.OwnerID == ownerID {
			cars = append(cars, c)
		}
	}
	return cars, nil
}

func (r *mockCarRepo) GetListed(_ context.Context) ([]*models.Car, error) {
	var cars []*models.Car
	for _, c := range r.byID {
		if c.IsListed {
			cars = append(cars, c)
		}
	}
	return cars, nil
}

func (r *mockCarRepo) SetListed(_ context.Context, id uuid.UUID, listed bool) error {
	c, ok := r.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	c.IsListed = listed
	return nil
}

func (r *mockCarRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type mockOrderRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*models.Order
	err  error
}

func (r *mockOrderRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}

	// Check-and-insert under one lock, like the advisory-lock
	// transaction in the postgres repo.
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.CarID != order.CarID || !existing.Status.Blocks() {
			continue
		}
		if models.Overlaps(order.PickupDate, order.ReturnDate, existing.PickupDate, existing.ReturnDate) {
			return nil, storage.ErrCarUnavailable
		}
	}

	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	r.byID[order.ID] = order
	return order, nil
}

func (r *mockOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return o, nil
}

func (r *mockOrderRepo) GetBlocking(_ context.Context, carID uuid.UUID, pickup, ret models.Date) ([]*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var orders []*models.Order
	for _, o := range r.byID {
		if o.CarID != carID || !o.Status.Blocks() {
			continue
		}
		if models.Overlaps(pickup, ret, o.PickupDate, o.ReturnDate) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *mockOrderRepo) GetUserOrders(_ context.Context, userID uuid.UUID) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []*models.Order
	for _, o := range r.byID {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *mockOrderRepo) GetOwnerOrders(context.Context, uuid.UUID) ([]*models.Order, error) {
	return nil, nil
}

func (r *mockOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to models.OrderStatus) (*models.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if o.Status != from {
		return nil, storage.ErrStatusConflict
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return o, nil
}

func (r *mockOrderRepo) GetExpiredPending(_ context.Context, olderThan time.Time) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var orders []*models.Order
	for _, o := range r.byID {
		if o.Status == models.OrderPending && o.CreatedAt.Before(olderThan) {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

func (r *mockOrderRepo) GetOwnerStats(context.Context, uuid.UUID) (*models.OwnerStats, error) {
	return &models.OwnerStats{}, nil
}

// recordingNotifier captures notification calls for assertions.
type recordingNotifier struct {
	mu      sync.Mutex
	created []uuid.UUID
	changed []uuid.UUID
}

func (n *recordingNotifier) OrderCreated(_ context.Context, order *models.Order, _ *models.Car, _ *models.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.created = append(n.created, order.ID)
}

func (n *recordingNotifier) OrderStatusChanged(_ context.Context, order *models.Order, _ *models.Car, _ *models.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, order.ID)
}

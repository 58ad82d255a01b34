package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/Freeeeeet/bridal_booking/internal/controller/httpapi"
	"github.com/Freeeeeet/bridal_booking/internal/model"
	"github.com/Freeeeeet/bridal_booking/internal/repository"
	"github.com/Freeeeeet/bridal_booking/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Хранилища в памяти, чтобы гонять полный HTTP сценарий без БД

type memUserStore struct {
	users  map[string]*model.User
	nextID int64
}

func (m *memUserStore) Create(_ context.Context, user *model.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrEmailExists
	}
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	stored := *user
	m.users[user.Email] = &stored
	return nil
}

func (m *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

type memDressStore struct {
	dresses map[int64]*model.Dress
}

func (m *memDressStore) GetAll(_ context.Context) ([]*model.Dress, error) {
	var out []*model.Dress
	for _, d := range m.dresses {
		copied := *d
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memDressStore) GetByID(_ context.Context, id int64) (*model.Dress, error) {
	d, ok := m.dresses[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

type memBookingStore struct {
	bookings map[int64]*model.Booking
	dresses  *memDressStore
	nextID   int64
}

func (m *memBookingStore) Create(_ context.Context, booking *model.Booking) error {
	for _, b := range m.bookings {
		if b.Date == booking.Date && b.Time == booking.Time && b.Status != model.BookingStatusCancelled {
			return repository.ErrSlotOccupied
		}
	}
	m.nextID++
	booking.ID = m.nextID
	booking.CreatedAt = time.Now()
	stored := *booking
	m.bookings[booking.ID] = &stored
	return nil
}

func (m *memBookingStore) SlotOccupied(_ context.Context, date, slot string) (bool, error) {
	for _, b := range m.bookings {
		if b.Date == date && b.Time == slot && b.Status != model.BookingStatusCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (m *memBookingStore) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}

func (m *memBookingStore) GetByUserID(_ context.Context, userID int64) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range m.bookings {
		if b.UserID != userID {
			continue
		}
		copied := *b
		if copied.DressID != nil {
			if d, ok := m.dresses.dresses[*copied.DressID]; ok {
				dress := *d
				copied.Dress = &dress
			}
		}
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memBookingStore) CancelByOwner(_ context.Context, id, userID int64) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok || b.UserID != userID {
		return nil, nil
	}
	b.Status = model.BookingStatusCancelled
	copied := *b
	return &copied, nil
}

func (m *memBookingStore) ConfirmPending(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := m.bookings[id]
	if !ok || b.Status != model.BookingStatusPending {
		return nil, nil
	}
	b.Status = model.BookingStatusConfirmed
	copied := *b
	return &copied, nil
}

const adminKey = "admin-test-key"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	users := &memUserStore{users: make(map[string]*model.User)}
	dresses := &memDressStore{dresses: map[int64]*model.Dress{
		1: {ID: 1, Name: "Aurora", Style: "A-line", Price: 129900},
		2: {ID: 2, Name: "Selena", Style: "Mermaid", Price: 159900},
	}}
	bookings := &memBookingStore{bookings: make(map[int64]*model.Booking), dresses: dresses}

	auth := service.NewAuthService(users, "router-test-secret", logger)
	booking := service.NewBookingService(dresses, bookings, logger)

	return httpapi.NewRouter(auth, booking, adminKey, logger)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}

	return w, resp
}

func registerAndLogin(t *testing.T, r *gin.Engine, username, email string) string {
	t.Helper()

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": username, "email": email, "password": "p",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email": email, "password": "p",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	r := newTestRouter()

	w, resp := doJSON(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp["status"])
}

// Полный сценарий: регистрация -> вход -> бронирование -> конфликт ->
// отмена -> слот снова свободен
func TestBookingFlow(t *testing.T) {
	r := newTestRouter()

	w, resp := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "a", "email": "a@x.com", "password": "p",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, resp["userId"])

	w, resp = doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email": "a@x.com", "password": "p",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := resp["token"].(string)
	require.NotEmpty(t, token)

	// Хэш пароля не должен утекать в ответ логина
	user, _ := resp["user"].(map[string]any)
	require.NotNil(t, user)
	assert.Equal(t, "a", user["username"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, user, "password_hash")

	w, resp = doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"dressId": 1, "date": "2025-06-01", "time": "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "pending", resp["status"])
	bookingID := int64(resp["id"].(float64))

	// Повторное бронирование того же слота - конфликт
	w, _ = doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"dressId": 2, "date": "2025-06-01", "time": "14:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Бронирование видно в списке вместе с платьем из каталога
	w, _ = doJSON(t, r, http.MethodGet, "/api/bookings/my", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	dress, _ := list[0]["dress"].(map[string]any)
	require.NotNil(t, dress)
	assert.Equal(t, "Aurora", dress["name"])
	assert.EqualValues(t, 129900, dress["price"])

	w, resp = doJSON(t, r, http.MethodPatch, "/api/bookings/1/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cancelled", resp["status"])
	assert.EqualValues(t, bookingID, resp["id"])

	w, resp = doJSON(t, r, http.MethodGet, "/api/bookings/check-availability?date=2025-06-01&time=14:00", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["available"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestRouter()

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "a", "email": "a@x.com", "password": "p",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "b", "email": "a@x.com", "password": "q",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := newTestRouter()

	w, _ := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{
		"username": "a", "email": "a@x.com", "password": "p",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, wrongPassword := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, unknownEmail := doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{
		"email": "nobody@x.com", "password": "p",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Оба случая неразличимы для клиента
	assert.Equal(t, wrongPassword["error"], unknownEmail["error"])
}

func TestDresses(t *testing.T) {
	r := newTestRouter()

	w, _ := doJSON(t, r, http.MethodGet, "/api/dresses", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dresses []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dresses))
	require.Len(t, dresses, 2)
	assert.Equal(t, "Aurora", dresses[0]["name"])

	w, resp := doJSON(t, r, http.MethodGet, "/api/dresses/2", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Selena", resp["name"])

	w, _ = doJSON(t, r, http.MethodGet, "/api/dresses/404", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckAvailabilityMissingParams(t *testing.T) {
	r := newTestRouter()

	w, _ := doJSON(t, r, http.MethodGet, "/api/bookings/check-availability?date=2025-06-01", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/bookings/check-availability?time=14:00", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingsRequireToken(t *testing.T) {
	r := newTestRouter()

	w, _ := doJSON(t, r, http.MethodPost, "/api/bookings", "", gin.H{
		"dressId": 1, "date": "2025-06-01", "time": "14:00",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodGet, "/api/bookings/my", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(t, r, http.MethodPatch, "/api/bookings/1/cancel", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Чужое бронирование при отмене выглядит как несуществующее
func TestCancelForeignBooking(t *testing.T) {
	r := newTestRouter()

	owner := registerAndLogin(t, r, "a", "a@x.com")
	stranger := registerAndLogin(t, r, "b", "b@x.com")

	w, _ := doJSON(t, r, http.MethodPost, "/api/bookings", owner, gin.H{
		"dressId": 1, "date": "2025-06-01", "time": "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, foreign := doJSON(t, r, http.MethodPatch, "/api/bookings/1/cancel", stranger, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, missing := doJSON(t, r, http.MethodPatch, "/api/bookings/404/cancel", stranger, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, foreign["error"], missing["error"])
}

func TestConfirmRequiresAdminKey(t *testing.T) {
	r := newTestRouter()

	token := registerAndLogin(t, r, "a", "a@x.com")

	w, _ := doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"dressId": 1, "date": "2025-06-01", "time": "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Без ключа нельзя, даже с валидным пользовательским токеном
	w, _ = doJSON(t, r, http.MethodPatch, "/api/bookings/1/confirm", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/1/confirm", nil)
	req.Header.Set("X-Admin-Key", adminKey)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp["status"])

	// Повторное подтверждение - конфликт состояния
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// Отменённое бронирование нельзя подтвердить - cancelled терминален
func TestConfirmCancelledBooking(t *testing.T) {
	r := newTestRouter()

	token := registerAndLogin(t, r, "a", "a@x.com")

	w, _ := doJSON(t, r, http.MethodPost, "/api/bookings", token, gin.H{
		"dressId": 1, "date": "2025-06-01", "time": "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, r, http.MethodPatch, "/api/bookings/1/cancel", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodPatch, "/api/bookings/1/confirm", nil)
	req.Header.Set("X-Admin-Key", adminKey)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Слот остался свободным
	w, resp := doJSON(t, r, http.MethodGet, "/api/bookings/check-availability?date=2025-06-01&time=14:00", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, resp["available"])
}

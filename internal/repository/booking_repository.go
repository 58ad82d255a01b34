package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/bridal_booking/internal/model"
	"github.com/Freeeeeet/bridal_booking/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSlotOccupied возвращается когда активное бронирование уже занимает слот
var ErrSlotOccupied = errors.New("slot already occupied")

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(pool)}
}

// Create создаёт новое бронирование примерки.
// Частичный уникальный индекс bookings_active_slot_key гарантирует
// эксклюзивность слота - при гонке проигравший insert получит 23505
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (user_id, dress_id, date, time, notes, status)
		VALUES ($1, $2, $3::date, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		booking.UserID,
		booking.DressID,
		booking.Date,
		booking.Time,
		booking.Notes,
		booking.Status,
	).Scan(&booking.ID, &booking.CreatedAt)

	if err != nil {
		if base.IsUniqueViolation(err) {
			return ErrSlotOccupied
		}
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// SlotOccupied проверяет занят ли слот (date, time) активным бронированием
func (r *BookingRepository) SlotOccupied(ctx context.Context, date, slot string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE date = $1::date AND time = $2 AND status <> 'cancelled'
		)
	`

	var occupied bool
	err := r.QueryRow(ctx, query, date, slot).Scan(&occupied)
	if err != nil {
		return false, fmt.Errorf("check slot: %w", err)
	}

	return occupied, nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		SELECT id, user_id, dress_id, to_char(date, 'YYYY-MM-DD'), time, notes, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	err := r.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.DressID,
		&booking.Date,
		&booking.Time,
		&booking.Notes,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return &booking, nil
}

// GetByUserID получает все бронирования пользователя вместе с платьями.
// LEFT JOIN - снятое с каталога платье даёт nil, а не ошибку
func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64) ([]*model.Booking, error) {
	query := `
		SELECT
			b.id, b.user_id, b.dress_id, to_char(b.date, 'YYYY-MM-DD'), b.time, b.notes, b.status, b.created_at,
			d.id, d.name, d.style, d.price, d.description, d.image, d.created_at
		FROM bookings b
		LEFT JOIN dresses d ON b.dress_id = d.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get bookings by user: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		var booking model.Booking
		var (
			dressID    *int64
			dressName  *string
			dressStyle *string
			dressPrice *int
			dressDescr *string
			dressImage *string
			dressAt    *time.Time
		)

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.DressID,
			&booking.Date,
			&booking.Time,
			&booking.Notes,
			&booking.Status,
			&booking.CreatedAt,
			&dressID,
			&dressName,
			&dressStyle,
			&dressPrice,
			&dressDescr,
			&dressImage,
			&dressAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}

		if dressID != nil {
			booking.Dress = &model.Dress{
				ID:          *dressID,
				Name:        *dressName,
				Style:       *dressStyle,
				Price:       *dressPrice,
				Description: *dressDescr,
				Image:       *dressImage,
				CreatedAt:   *dressAt,
			}
		}

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}

	return bookings, nil
}

// CancelByOwner отменяет бронирование принадлежащее пользователю.
// Возвращает nil если бронирование не существует либо принадлежит другому -
// снаружи эти случаи неразличимы намеренно
func (r *BookingRepository) CancelByOwner(ctx context.Context, id, userID int64) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, dress_id, to_char(date, 'YYYY-MM-DD'), time, notes, status, created_at
	`

	var booking model.Booking
	err := r.QueryRow(ctx, query, id, userID).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.DressID,
		&booking.Date,
		&booking.Time,
		&booking.Notes,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	return &booking, nil
}

// ConfirmPending переводит бронирование pending -> confirmed одним
// условным UPDATE: конкурентная отмена между чтением и записью не может
// быть перезаписана, cancelled остаётся терминальным.
// Возвращает nil если бронирования нет либо оно уже не pending
func (r *BookingRepository) ConfirmPending(ctx context.Context, id int64) (*model.Booking, error) {
	query := `
		UPDATE bookings
		SET status = 'confirmed'
		WHERE id = $1 AND status = 'pending'
		RETURNING id, user_id, dress_id, to_char(date, 'YYYY-MM-DD'), time, notes, status, created_at
	`

	var booking model.Booking
	err := r.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.DressID,
		&booking.Date,
		&booking.Time,
		&booking.Notes,
		&booking.Status,
		&booking.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("confirm booking: %w", err)
	}

	return &booking, nil
}

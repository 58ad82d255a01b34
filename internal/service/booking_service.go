package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/bridal_booking/internal/model"
	"github.com/Freeeeeet/bridal_booking/internal/repository"
	"go.uber.org/zap"
)

// Форматы даты и слота примерки
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type BookingService struct {
	dressRepo   DressStore
	bookingRepo BookingStore
	logger      *zap.Logger
}

func NewBookingService(dressRepo DressStore, bookingRepo BookingStore, logger *zap.Logger) *BookingService {
	return &BookingService{
		dressRepo:   dressRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ListDresses получает каталог платьев
func (s *BookingService) ListDresses(ctx context.Context) ([]*model.Dress, error) {
	dresses, err := s.dressRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	if dresses == nil {
		dresses = []*model.Dress{}
	}

	return dresses, nil
}

// GetDress получает платье по ID
func (s *BookingService) GetDress(ctx context.Context, id int64) (*model.Dress, error) {
	dress, err := s.dressRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if dress == nil {
		return nil, ErrNotFound
	}

	return dress, nil
}

// CheckAvailability проверяет свободен ли слот (date, time)
func (s *BookingService) CheckAvailability(ctx context.Context, date, slot string) (bool, error) {
	if err := validateSlot(date, slot); err != nil {
		return false, err
	}

	occupied, err := s.bookingRepo.SlotOccupied(ctx, date, slot)
	if err != nil {
		return false, err
	}

	return !occupied, nil
}

// CreateBooking бронирует слот примерки для пользователя
func (s *BookingService) CreateBooking(ctx context.Context, userID, dressID int64, date, slot, notes string) (*model.Booking, error) {
	if dressID == 0 {
		return nil, ErrValidation
	}
	if err := validateSlot(date, slot); err != nil {
		return nil, err
	}

	// Предварительная проверка занятости - даёт понятную ошибку заранее.
	// Гонку между проверкой и вставкой закрывает частичный уникальный
	// индекс в БД, а не эта проверка
	occupied, err := s.bookingRepo.SlotOccupied(ctx, date, slot)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}

	if occupied {
		return nil, ErrSlotTaken
	}

	booking := &model.Booking{
		UserID:  userID,
		DressID: &dressID,
		Date:    date,
		Time:    slot,
		Notes:   notes,
		Status:  model.BookingStatusPending,
	}

	err = s.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, repository.ErrSlotOccupied) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.logger.Info("Fitting booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.Int64("dress_id", dressID),
		zap.String("date", date),
		zap.String("time", slot),
	)

	return booking, nil
}

// ListUserBookings получает бронирования пользователя вместе с платьями
func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]*model.Booking, error) {
	bookings, err := s.bookingRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}

	return bookings, nil
}

// CancelBooking отменяет бронирование пользователя.
// Чужое и несуществующее бронирование дают одинаковый ErrNotFound.
// Повторная отмена безвредна - статус просто остаётся cancelled
func (s *BookingService) CancelBooking(ctx context.Context, userID, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.CancelByOwner(ctx, bookingID, userID)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	if booking == nil {
		return nil, ErrNotFound
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
	)

	return booking, nil
}

// ConfirmBooking подтверждает бронирование (административная операция).
// Переход pending -> confirmed выполняет условный UPDATE в хранилище,
// поэтому одновременная отмена не может быть перезаписана подтверждением
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.ConfirmPending(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("confirm booking: %w", err)
	}

	if booking == nil {
		// Перехода не было: различаем отсутствующее бронирование
		// и бронирование в неподходящем статусе
		existing, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return nil, fmt.Errorf("get booking: %w", err)
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		return nil, ErrNotPending
	}

	s.logger.Info("Booking confirmed",
		zap.Int64("booking_id", bookingID),
	)

	return booking, nil
}

func validateSlot(date, slot string) error {
	if date == "" || slot == "" {
		return ErrValidation
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrValidation
	}

	if _, err := time.Parse(TimeLayout, slot); err != nil {
		return ErrValidation
	}

	return nil
}

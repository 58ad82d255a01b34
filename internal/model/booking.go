package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения салона
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено клиентом
)

type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	DressID   *int64        `json:"dress_id"` // указатель - платье могли снять с каталога
	Date      string        `json:"date"`     // календарная дата "2006-01-02"
	Time      string        `json:"time"`     // слот примерки "15:04"
	Notes     string        `json:"notes"`
	Status    BookingStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`

	// Дополнительное поле для удобства (не из БД).
	// nil если платье сняли с каталога - в JSON уходит null
	Dress *Dress `json:"dress"`
}

package model

import "time"

type Dress struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Style       string    `json:"style"`
	Price       int       `json:"price"` // в копейках/центах
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

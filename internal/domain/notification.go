package domain

import (
	"time"
)

type Notification struct {
	ID      string           `json:"id" yaml:"id"`
	UserID  string           `json:"user_id" yaml:"user_id"`
	Type    NotificationType `json:"type" yaml:"type"`
	Title   string           `json:"title" yaml:"title"`
	Message string           `json:"message" yaml:"message"`
	Date    time.Time        `json:"date" yaml:"date"`
	Read    bool             `json:"read" yaml:"read"`
	ReadAt  *time.Time       `json:"read_at,omitempty" yaml:"read_at,omitempty"`
}

type NotificationType string

const (
	NotifRequest  NotificationType = "request"
	NotifMatch    NotificationType = "match"
	NotifReminder NotificationType = "reminder"
	NotifAlert    NotificationType = "alert"
	NotifInfo     NotificationType = "info"
)

type CreateNotificationInput struct {
	UserID  string           `json:"user_id" validate:"required"`
	Type    NotificationType `json:"type" validate:"required,oneof=request match reminder alert info"`
	Title   string           `json:"title" validate:"required,max=120"`
	Message string           `json:"message" validate:"required,max=1000"`
}

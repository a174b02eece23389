package repository

import (
	"context"
	"time"

	"blood-connect/internal/domain"
)

type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	CreateBatch(ctx context.Context, notifs []domain.Notification) error
	GetByID(ctx context.Context, id string) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkAsRead(ctx context.Context, id string, at time.Time) (bool, error)
	MarkAllAsRead(ctx context.Context, userID string, at time.Time) (int, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteByUser(ctx context.Context, userID string) (int, error)
}

type notificationRepository struct {
	notifications *Collection[domain.Notification]
}

func NewNotificationRepository(store RecordStore) NotificationRepository {
	return &notificationRepository{
		notifications: NewCollection(store, CollectionNotifications, func(n *domain.Notification) string { return n.ID }),
	}
}

// Create stores the notification newest-first.
func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	return r.notifications.Prepend(ctx, *notif)
}

// CreateBatch writes a whole fan-out in one store round trip.
func (r *notificationRepository) CreateBatch(ctx context.Context, notifs []domain.Notification) error {
	if len(notifs) == 0 {
		return nil
	}
	return r.notifications.Mutate(ctx, func(items []domain.Notification) ([]domain.Notification, error) {
		out := make([]domain.Notification, 0, len(notifs)+len(items))
		out = append(out, notifs...)
		return append(out, items...), nil
	})
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	return r.notifications.Find(ctx, id)
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, int64, error) {
	all, err := r.notifications.GetAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	notifications := []domain.Notification{}
	for _, n := range all {
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		notifications = append(notifications, n)
	}

	page, total := domain.Paginate(notifications, params)
	return page, total, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string, at time.Time) (bool, error) {
	return r.notifications.UpdateByID(ctx, id, func(n *domain.Notification) {
		if !n.Read {
			n.Read = true
			n.ReadAt = &at
		}
	})
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string, at time.Time) (int, error) {
	marked := 0
	err := r.notifications.Mutate(ctx, func(items []domain.Notification) ([]domain.Notification, error) {
		for i := range items {
			if items[i].UserID == userID && !items[i].Read {
				items[i].Read = true
				items[i].ReadAt = &at
				marked++
			}
		}
		return items, nil
	})
	return marked, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	all, err := r.notifications.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, n := range all {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.notifications.RemoveWhere(ctx, func(n *domain.Notification) bool { return n.ID == id })
	return removed > 0, err
}

func (r *notificationRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	return r.notifications.RemoveWhere(ctx, func(n *domain.Notification) bool { return n.UserID == userID })
}

package repository

import "context"

// Collection names. Each is one JSON document in the record store.
const (
	CollectionUsers         = "users"
	CollectionBloodRequests = "blood_requests"
	CollectionInventory     = "blood_inventory"
	CollectionCamps         = "donation_camps"
	CollectionBookings      = "camp_bookings"
	CollectionNotifications = "notifications"
)

var AllCollections = []string{
	CollectionUsers,
	CollectionBloodRequests,
	CollectionInventory,
	CollectionCamps,
	CollectionBookings,
	CollectionNotifications,
}

// RecordStore is an opaque keyed document store. Load returns nil data and no
// error when the collection has never been written.
type RecordStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

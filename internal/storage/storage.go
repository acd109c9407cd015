// Package storage is the persistence port for the inventory engine.
// Each ledger round-trips as one logical JSON document under a fixed
// key; adapters only need to load and save whole documents. The engine
// treats saves as best-effort: in-memory state stays authoritative.
package storage

const (
	// KeyRooms holds the ordered room collection, containers and
	// items included.
	KeyRooms = "inventory_rooms"
	// KeyRequests holds the service request ledger, newest first.
	KeyRequests = "service_requests"
)

type Store interface {
	// Load returns the document stored under key, and whether one
	// exists.
	Load(key string) ([]byte, bool, error)
	// Save replaces the document stored under key in one write.
	Save(key string, doc []byte) error
	Close() error
}

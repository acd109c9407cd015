package inventory

import (
	"encoding/json"
	"fmt"
	"sync"

	"labhouse/internal/storage"
	custom_error "labhouse/pkg/errors"
	"labhouse/pkg/models"

	"go.uber.org/zap"
)

// Store owns the authoritative room collection. All mutation funnels
// through it; every change persists the whole collection through the
// storage port. A save failure is returned as a StorageError but never
// rolls the in-memory change back.
type Store struct {
	mu      sync.Mutex
	rooms   []models.Room
	storage storage.Store
	log     *zap.Logger
}

// NewStore loads the persisted room collection and runs the
// condition/status migration before anything can read it.
func NewStore(st storage.Store, log *zap.Logger) (*Store, error) {
	s := &Store{
		rooms:   []models.Room{},
		storage: st,
		log:     log,
	}

	raw, found, err := st.Load(storage.KeyRooms)
	if err != nil {
		return nil, fmt.Errorf("load room collection: %w", err)
	}
	if found {
		var rooms []models.Room
		if err := json.Unmarshal(raw, &rooms); err != nil {
			return nil, fmt.Errorf("decode room collection: %w", err)
		}
		s.rooms = MigrateRooms(rooms)
	}

	return s, nil
}

// Rooms returns a deep copy of the current collection.
func (s *Store) Rooms() []models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneRooms(s.rooms)
}

// Snapshot is the read side of the snapshot-then-commit-once pattern
// used by batch operations; pair it with Replace.
func (s *Store) Snapshot() []models.Room {
	return s.Rooms()
}

// Replace commits a fully mutated snapshot as the new canonical state
// in one write. Batch operations use this so a later item in the batch
// sees earlier items already moved, and so persistence happens exactly
// once per operation.
func (s *Store) Replace(rooms []models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms = models.CloneRooms(rooms)
	return s.persistLocked()
}

func (s *Store) GetRoom(id string) (models.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rooms {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return models.Room{}, false
}

func (s *Store) AddRoom(room models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rooms {
		if r.ID == room.ID {
			return &custom_error.DuplicateIDError{Resource: "room", ID: room.ID}
		}
	}

	if room.Containers == nil {
		room.Containers = []models.Container{}
	}
	s.rooms = append(s.rooms, room.Clone())

	return s.persistLocked()
}

// UpdateRoom replaces the stored room wholesale.
func (s *Store) UpdateRoom(room models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rooms {
		if r.ID == room.ID {
			s.rooms[i] = room.Clone()
			return s.persistLocked()
		}
	}
	return &custom_error.NotFoundError{Resource: "room", ID: room.ID}
}

// DeleteRoom removes the room with all nested containers and items.
// Idempotent: deleting an absent id is a no-op.
func (s *Store) DeleteRoom(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rooms {
		if r.ID == id {
			s.rooms = append(s.rooms[:i], s.rooms[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

// UpdateContainer replaces one container inside a room. The single
// mutation point for container detail flows, so callers never
// hand-roll the nested replace.
func (s *Store) UpdateContainer(roomID string, container models.Container) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := s.findRoomLocked(roomID)
	if room == nil {
		return &custom_error.NotFoundError{Resource: "room", ID: roomID}
	}

	for i, c := range room.Containers {
		if c.ID == container.ID {
			room.Containers[i] = container.Clone()
			return s.persistLocked()
		}
	}
	return &custom_error.NotFoundError{Resource: "container", ID: container.ID}
}

func (s *Store) AddItem(roomID, containerID string, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.rooms {
		for _, c := range r.Containers {
			for _, existing := range c.Items {
				if existing.ID == item.ID {
					return &custom_error.DuplicateIDError{Resource: "item", ID: item.ID}
				}
			}
		}
	}

	container, err := s.findContainerLocked(roomID, containerID)
	if err != nil {
		return err
	}

	if item.Logs == nil {
		item.Logs = []models.ItemLog{}
	}
	container.Items = append(container.Items, item.Clone())

	return s.persistLocked()
}

func (s *Store) UpdateItem(roomID, containerID string, item models.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	container, err := s.findContainerLocked(roomID, containerID)
	if err != nil {
		return err
	}

	for i, existing := range container.Items {
		if existing.ID == item.ID {
			container.Items[i] = item.Clone()
			return s.persistLocked()
		}
	}
	return &custom_error.NotFoundError{Resource: "item", ID: item.ID}
}

func (s *Store) DeleteItem(roomID, containerID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	container, err := s.findContainerLocked(roomID, containerID)
	if err != nil {
		return err
	}

	for i, existing := range container.Items {
		if existing.ID == itemID {
			container.Items = append(container.Items[:i], container.Items[i+1:]...)
			return s.persistLocked()
		}
	}
	return &custom_error.NotFoundError{Resource: "item", ID: itemID}
}

func (s *Store) findRoomLocked(id string) *models.Room {
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			return &s.rooms[i]
		}
	}
	return nil
}

func (s *Store) findContainerLocked(roomID, containerID string) (*models.Container, error) {
	room := s.findRoomLocked(roomID)
	if room == nil {
		return nil, &custom_error.NotFoundError{Resource: "room", ID: roomID}
	}
	for i := range room.Containers {
		if room.Containers[i].ID == containerID {
			return &room.Containers[i], nil
		}
	}
	return nil, &custom_error.NotFoundError{Resource: "container", ID: containerID}
}

func (s *Store) persistLocked() error {
	raw, err := json.Marshal(s.rooms)
	if err != nil {
		return fmt.Errorf("encode room collection: %w", err)
	}

	if err := s.storage.Save(storage.KeyRooms, raw); err != nil {
		s.log.Error("room collection not persisted, in-memory state kept",
			zap.Error(err))
		return &custom_error.StorageError{Key: storage.KeyRooms, Err: err}
	}
	return nil
}

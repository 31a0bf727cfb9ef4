package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/avolkov/webshop/internal/models"
)

// Store keeps session state server side, one row per session id. Update
// holds a per-session mutex across load-mutate-save, so two requests from
// the same visitor cannot lose each other's writes.
type Store struct {
	DB *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db, locks: make(map[string]*sync.Mutex)}
}

func (s *Store) lock(sid string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sid]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sid] = l
	}
	return l
}

// Load returns the current state for sid, or a zero state for a session
// that has no row yet.
func (s *Store) Load(sid string) (*State, error) {
	var row models.Session
	if err := s.DB.First(&row, "id = ?", sid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("session load: %w", err)
	}
	state := &State{}
	if len(row.Data) > 0 {
		if err := json.Unmarshal(row.Data, state); err != nil {
			return nil, fmt.Errorf("session decode: %w", err)
		}
	}
	return state, nil
}

// Update applies fn to the state for sid and persists the result. The
// whole read-modify-write runs under the session's mutex.
func (s *Store) Update(sid string, fn func(*State)) (*State, error) {
	return s.Mutate(sid, func(state *State) error {
		fn(state)
		return nil
	})
}

// Mutate is Update with a fallible body. When fn returns an error the
// state is not saved, so callers can run a DB transaction against the
// loaded state and only commit the session change on success.
func (s *Store) Mutate(sid string, fn func(*State) error) (*State, error) {
	l := s.lock(sid)
	l.Lock()
	defer l.Unlock()

	state, err := s.Load(sid)
	if err != nil {
		return nil, err
	}
	if err := fn(state); err != nil {
		return nil, err
	}

	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("session encode: %w", err)
	}
	row := models.Session{ID: sid, Data: data}
	err = s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("session save: %w", err)
	}
	return state, nil
}

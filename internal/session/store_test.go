package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/avolkov/webshop/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Session{}))
	return NewStore(db)
}

func TestLoadUnknownSessionIsZeroState(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load("nope")
	require.NoError(t, err)
	require.Empty(t, state.Products)
	require.Zero(t, state.ProductsCount)
}

func TestUpdateAddRemoveProduct(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Update("sid", func(s *State) { s.AddProduct("5") })
	require.NoError(t, err)
	require.Equal(t, []string{"5"}, state.Products)
	require.Equal(t, 1, state.ProductsCount)

	state, err = store.Update("sid", func(s *State) { s.RemoveProduct("5") })
	require.NoError(t, err)
	require.Empty(t, state.Products)
	require.Equal(t, 0, state.ProductsCount)
}

func TestRemoveFirstOccurrenceOnly(t *testing.T) {
	s := &State{}
	s.AddProduct("1")
	s.AddProduct("2")
	s.AddProduct("1")

	s.RemoveProduct("1")
	require.Equal(t, []string{"2", "1"}, s.Products)
	require.Equal(t, 2, s.ProductsCount)

	// removing an absent id is a no-op
	s.RemoveProduct("9")
	require.Equal(t, []string{"2", "1"}, s.Products)
}

func TestUpdatePersistsAcrossLoads(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update("sid", func(s *State) {
		s.AddProduct("1")
		s.RecordVisit("index", time.Now())
	})
	require.NoError(t, err)

	state, err := store.Load("sid")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, state.Products)
	require.Equal(t, 1, state.Visits["index"])
	require.Contains(t, state.StartTimes, "index")
}

func TestMutateErrorDoesNotSave(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update("sid", func(s *State) { s.AddProduct("1") })
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = store.Mutate("sid", func(s *State) error {
		s.ClearBasket()
		return boom
	})
	require.ErrorIs(t, err, boom)

	state, err := store.Load("sid")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, state.Products)
}

func TestConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store := newTestStore(t)

	const n = 20
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := store.Update("sid", func(s *State) { s.AddProduct("7") })
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	state, err := store.Load("sid")
	require.NoError(t, err)
	require.Len(t, state.Products, n)
	require.Equal(t, n, state.ProductsCount)
}

func TestSessionsAreIndependent(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Update("a", func(s *State) { s.AddProduct("1") })
	require.NoError(t, err)
	_, err = store.Update("b", func(s *State) { s.AddProduct("2") })
	require.NoError(t, err)

	a, err := store.Load("a")
	require.NoError(t, err)
	b, err := store.Load("b")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, a.Products)
	require.Equal(t, []string{"2"}, b.Products)
}

package cart

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/koishop/internal/client/storage"
	"github.com/iudanet/koishop/internal/client/storage/boltdb"
	"github.com/iudanet/koishop/pkg/api"
)

// memCartStorage implements storage.CartStorage for testing
type memCartStorage struct {
	loadErr  error
	saveErr  error
	snapshot []byte
	saves    int
	mu       sync.Mutex
}

func (m *memCartStorage) SaveCart(ctx context.Context, snapshot []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snapshot = append([]byte(nil), snapshot...)
	return nil
}

func (m *memCartStorage) LoadCart(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.snapshot == nil {
		return nil, storage.ErrCartNotFound
	}
	return append([]byte(nil), m.snapshot...), nil
}

// recorder collects notifications
type recorder struct {
	messages []string
}

func (r *recorder) Notify(message string) {
	r.messages = append(r.messages, message)
}

func koi(id string, price int64) api.Product {
	return api.Product{ID: id, Name: "Koi " + id, Price: decimal.NewFromInt(price), Type: "Kohaku"}
}

// summary сводит строки к сравнимому виду (decimal сравниваем строкой)
func summary(lines []Line) [][3]string {
	out := make([][3]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, [3]string{l.ProductID, l.Price.String(), decimal.NewFromInt(int64(l.Quantity)).String()})
	}
	return out
}

func TestStore_AddNewThenMerge(t *testing.T) {
	ctx := context.Background()
	st := &memCartStorage{}
	notes := &recorder{}
	store := New(ctx, st, notes, nil)

	outcome, err := store.Add(ctx, koi("k1", 1_000_000), 2)
	require.NoError(t, err)
	assert.Equal(t, Added, outcome)
	assert.Equal(t, [][3]string{{"k1", "1000000", "2"}}, summary(store.Lines()))

	outcome, err = store.Add(ctx, koi("k1", 1_000_000), 1)
	require.NoError(t, err)
	assert.Equal(t, Merged, outcome)
	assert.Equal(t, [][3]string{{"k1", "1000000", "3"}}, summary(store.Lines()))

	assert.Equal(t, []string{MessageAdded, MessageMerged}, notes.messages)
	assert.NotEqual(t, MessageAdded, MessageMerged)
	assert.Equal(t, 2, st.saves)
}

func TestStore_AddMergesQuantities(t *testing.T) {
	ctx := context.Background()
	store := New(ctx, &memCartStorage{}, nil, nil)

	for _, q := range [][2]int{{1, 1}, {2, 5}, {7, 3}} {
		store.Clear(ctx)
		_, err := store.Add(ctx, koi("k1", 10), q[0])
		require.NoError(t, err)
		_, err = store.Add(ctx, koi("k1", 10), q[1])
		require.NoError(t, err)

		require.Equal(t, 1, store.Len())
		line, ok := store.Line("k1")
		require.True(t, ok)
		assert.Equal(t, q[0]+q[1], line.Quantity)
	}
}

func TestStore_AddPrependsNewLines(t *testing.T) {
	ctx := context.Background()
	store := New(ctx, &memCartStorage{}, nil, nil)

	for _, id := range []string{"a", "b", "c"} {
		_, err := store.Add(ctx, koi(id, 1), 1)
		require.NoError(t, err)
	}
	// слияние не меняет позицию строки
	_, err := store.Add(ctx, koi("a", 1), 1)
	require.NoError(t, err)

	ids := make([]string, 0, 3)
	for _, l := range store.Lines() {
		ids = append(ids, l.ProductID)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestStore_AddKeepsSnapshotOfProduct(t *testing.T) {
	ctx := context.Background()
	store := New(ctx, &memCartStorage{}, nil, nil)

	_, err := store.Add(ctx, koi("k1", 100), 1)
	require.NoError(t, err)

	// повторное добавление с новой ценой не меняет сохраненную копию
	_, err = store.Add(ctx, koi("k1", 999), 1)
	require.NoError(t, err)

	line, ok := store.Line("k1")
	require.True(t, ok)
	assert.Equal(t, "100", line.Price.String())
	assert.Equal(t, "Koi k1", line.Name)
}

func TestStore_AddRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	st := &memCartStorage{}
	notes := &recorder{}
	store := New(ctx, st, notes, nil)

	_, err := store.Add(ctx, koi("k1", 1), 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = store.Add(ctx, koi("k1", 1), -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = store.Add(ctx, api.Product{Name: "no id"}, 1)
	assert.Error(t, err)

	assert.Zero(t, store.Len())
	assert.Zero(t, st.saves)
	assert.Empty(t, notes.messages)
}

func TestStore_Remove(t *testing.T) {
	ctx := context.Background()
	st := &memCartStorage{}
	store := New(ctx, st, nil, nil)

	_, _ = store.Add(ctx, koi("a", 1), 1)
	_, _ = store.Add(ctx, koi("b", 1), 1)

	store.Remove(ctx, "a")
	assert.Equal(t, [][3]string{{"b", "1", "1"}}, summary(store.Lines()))

	// отсутствующий id - не ошибка, но снимок все равно пишется
	saves := st.saves
	store.Remove(ctx, "missing")
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, saves+1, st.saves)
}

func TestStore_RemoveMany(t *testing.T) {
	orders := [][]string{{"a", "b"}, {"b", "a"}, {"b", "missing", "a"}}

	for _, ids := range orders {
		ctx := context.Background()
		st := &memCartStorage{}
		store := New(ctx, st, nil, nil)
		_, _ = store.Add(ctx, koi("a", 1), 1)
		_, _ = store.Add(ctx, koi("b", 1), 1)
		_, _ = store.Add(ctx, koi("c", 1), 1)
		saves := st.saves

		store.RemoveMany(ctx, ids)

		assert.Equal(t, [][3]string{{"c", "1", "1"}}, summary(store.Lines()))
		assert.Equal(t, saves+1, st.saves, "RemoveMany persists exactly once")
	}
}

func TestStore_ClearThenReload(t *testing.T) {
	ctx := context.Background()
	st := &memCartStorage{}
	store := New(ctx, st, nil, nil)
	_, _ = store.Add(ctx, koi("a", 1), 3)

	store.Clear(ctx)
	assert.Zero(t, store.Len())
	assert.JSONEq(t, `[]`, string(st.snapshot))

	reloaded := New(ctx, st, nil, nil)
	assert.Zero(t, reloaded.Len())
}

// Total is price * quantity per line, not the price once per line.
func TestStore_TotalMultipliesByQuantity(t *testing.T) {
	ctx := context.Background()
	store := New(ctx, &memCartStorage{}, nil, nil)

	assert.True(t, store.Total().IsZero())

	_, _ = store.Add(ctx, koi("k1", 1_000_000), 2)
	assert.Equal(t, "2000000", store.Total().String(), "one line counts every unit")

	_, _ = store.Add(ctx, api.Product{ID: "k2", Price: decimal.RequireFromString("250000.50")}, 3)
	assert.Equal(t, "2750001.5", store.Total().String())
}

func TestStore_PersistReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "cart.db"))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close())
	}()

	store := New(ctx, db, nil, nil)
	_, _ = store.Add(ctx, koi("a", 100), 1)
	_, _ = store.Add(ctx, koi("b", 200), 2)
	_, _ = store.Add(ctx, koi("a", 100), 4)
	_, _ = store.Add(ctx, koi("c", 300), 1)
	store.Remove(ctx, "b")
	_, _ = store.Add(ctx, koi("d", 400), 6)

	reloaded := New(ctx, db, nil, nil)
	assert.Equal(t, summary(store.Lines()), summary(reloaded.Lines()))
	assert.Equal(t, [][3]string{{"d", "400", "6"}, {"c", "300", "1"}, {"a", "100", "5"}}, summary(reloaded.Lines()))
	assert.True(t, store.Total().Equal(reloaded.Total()))
}

func TestStore_LoadFailsOpen(t *testing.T) {
	tests := []struct {
		storage *memCartStorage
		name    string
	}{
		{name: "missing snapshot", storage: &memCartStorage{}},
		{name: "corrupt snapshot", storage: &memCartStorage{snapshot: []byte("{not json")}},
		{name: "storage error", storage: &memCartStorage{loadErr: errors.New("disk gone")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := New(context.Background(), tt.storage, nil, nil)
			assert.Zero(t, store.Len())
		})
	}
}

func TestStore_LoadDropsInvalidLines(t *testing.T) {
	st := &memCartStorage{snapshot: []byte(`[
		{"_id":"a","price":"10","quantity":2},
		{"_id":"","price":"10","quantity":1},
		{"_id":"b","price":"10","quantity":0},
		{"_id":"a","price":"10","quantity":9}
	]`)}

	store := New(context.Background(), st, nil, nil)
	assert.Equal(t, [][3]string{{"a", "10", "2"}}, summary(store.Lines()))
}

func TestStore_PersistenceFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	st := &memCartStorage{saveErr: errors.New("disk full")}
	store := New(ctx, st, nil, nil)

	outcome, err := store.Add(ctx, koi("k1", 5), 2)
	require.NoError(t, err)
	assert.Equal(t, Added, outcome)
	assert.Equal(t, 1, store.Len())

	// после восстановления диска следующая мутация пишет полный снимок
	st.saveErr = nil
	_, err = store.Add(ctx, koi("k2", 5), 1)
	require.NoError(t, err)

	reloaded := New(ctx, st, nil, nil)
	assert.Equal(t, 2, reloaded.Len())
}

func TestStore_LosesAtMostLastUnpersistedMutation(t *testing.T) {
	ctx := context.Background()
	st := &memCartStorage{}
	store := New(ctx, st, nil, nil)
	_, _ = store.Add(ctx, koi("a", 1), 1)

	// запись последней мутации не удалась - имитация падения до записи
	st.saveErr = errors.New("crash")
	_, _ = store.Add(ctx, koi("b", 1), 1)

	st.saveErr = nil
	reloaded := New(ctx, st, nil, nil)
	assert.Equal(t, [][3]string{{"a", "1", "1"}}, summary(reloaded.Lines()))
}

func TestStore_Details(t *testing.T) {
	ctx := context.Background()
	store := New(ctx, &memCartStorage{}, nil, nil)
	_, _ = store.Add(ctx, koi("a", 1), 2)
	_, _ = store.Add(ctx, koi("b", 1), 1)

	assert.Equal(t, []api.CartDetail{{KoiID: "b", Quantity: 1}, {KoiID: "a", Quantity: 2}}, store.Details())
}

func TestStore_ConcurrentAdds(t *testing.T) {
	ctx := context.Background()
	store := New(ctx, &memCartStorage{}, nil, nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Add(ctx, koi("k1", 1), 1)
		}()
	}
	wg.Wait()

	line, ok := store.Line("k1")
	require.True(t, ok)
	assert.Equal(t, 50, line.Quantity)
	assert.Equal(t, 1, store.Len())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "added", Added.String())
	assert.Equal(t, "merged", Merged.String())
	assert.Equal(t, "unknown", Outcome(0).String())
}

package cart

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/urbanx-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/urbanx-storefront/pkg/errors"
)

func product(id, price string) catalog.Product {
	return catalog.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.RequireFromString(price),
		ImageURL: "https://example.com/" + id + ".jpeg",
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(nil)
	require.NoError(t, err)
	return s
}

func requireTotals(t *testing.T, st State, items int, price string) {
	t.Helper()
	require.Equal(t, items, st.TotalItems, "total items")
	require.Truef(t, st.TotalPrice.Equal(decimal.RequireFromString(price)), "total price: want %s, got %s", price, st.TotalPrice)
}

func TestStoreScenario(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	a := product("A", "89.99")
	b := product("B", "129.99")

	st, err := s.AddItem(ctx, a, 1)
	require.NoError(t, err)
	requireTotals(t, st, 1, "89.99")

	st, err = s.AddItem(ctx, a, 2)
	require.NoError(t, err)
	requireTotals(t, st, 3, "269.97")
	require.Len(t, st.Lines, 1)

	st, err = s.AddItem(ctx, b, 1)
	require.NoError(t, err)
	requireTotals(t, st, 4, "399.96")

	st, err = s.UpdateQuantity(ctx, "A", 1)
	require.NoError(t, err)
	requireTotals(t, st, 2, "219.98")

	st, err = s.RemoveItem(ctx, "B")
	require.NoError(t, err)
	requireTotals(t, st, 1, "89.99")

	st, err = s.Clear(ctx)
	require.NoError(t, err)
	requireTotals(t, st, 0, "0")
	assert.Empty(t, st.Lines)
	assert.Equal(t, uint64(6), st.Version)
}

func TestAddItemMergesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	for _, id := range []string{"1", "2", "3"} {
		_, err := s.AddItem(ctx, product(id, "10"), 1)
		require.NoError(t, err)
	}
	st, err := s.AddItem(ctx, product("2", "10"), 4)
	require.NoError(t, err)

	require.Len(t, st.Lines, 3)
	assert.Equal(t, []string{"1", "2", "3"}, lineIDs(st))
	line, ok := st.Line("2")
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)

	st, err = s.UpdateQuantity(ctx, "1", 9)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, lineIDs(st), "updates must not reorder")

	st, err = s.RemoveItem(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, lineIDs(st))
}

func TestAddItemKeepsSnapshotFromFirstAdd(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	_, err := s.AddItem(ctx, product("1", "10"), 1)
	require.NoError(t, err)

	repriced := product("1", "12")
	repriced.Name = "Renamed"
	st, err := s.AddItem(ctx, repriced, 1)
	require.NoError(t, err)

	line, _ := st.Line("1")
	assert.Equal(t, "Product 1", line.Product.Name)
	requireTotals(t, st, 2, "20")
}

func TestRejectedOperationsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	_, err := s.AddItem(ctx, product("1", "25"), 2)
	require.NoError(t, err)
	before := s.Snapshot()

	notified := 0
	s.Subscribe(func(State) { notified++ })

	cases := []struct {
		name string
		op   func() error
		is   error
		code pkgerrors.Code
	}{
		{"zero quantity", func() error { _, err := s.AddItem(ctx, product("2", "5"), 0); return err }, ErrInvalidQuantity, pkgerrors.CodeInvalidQuantity},
		{"negative quantity", func() error { _, err := s.AddItem(ctx, product("1", "5"), -3); return err }, ErrInvalidQuantity, pkgerrors.CodeInvalidQuantity},
		{"negative price", func() error { _, err := s.AddItem(ctx, product("2", "-1"), 1); return err }, ErrInvalidPrice, pkgerrors.CodeValidation},
		{"missing id", func() error { _, err := s.AddItem(ctx, product("", "1"), 1); return err }, ErrInvalidProduct, pkgerrors.CodeValidation},
		{"update absent", func() error { _, err := s.UpdateQuantity(ctx, "nope", 3); return err }, ErrLineNotFound, pkgerrors.CodeLineNotFound},
		{"update absent to zero", func() error { _, err := s.UpdateQuantity(ctx, "nope", 0); return err }, ErrLineNotFound, pkgerrors.CodeLineNotFound},
	}
	for _, tc := range cases {
		err := tc.op()
		require.Error(t, err, tc.name)
		assert.Truef(t, errors.Is(err, tc.is), "%s: unexpected error %v", tc.name, err)
		assert.Equal(t, tc.code, pkgerrors.As(err).Code(), tc.name)
		assert.Equal(t, before, s.Snapshot(), "%s changed state", tc.name)
	}
	assert.Zero(t, notified)
}

func TestRemoveAbsentIsSilentNoop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	_, err := s.AddItem(ctx, product("1", "25"), 1)
	require.NoError(t, err)
	before := s.Snapshot()

	notified := 0
	s.Subscribe(func(State) { notified++ })

	st, err := s.RemoveItem(ctx, "ghost")
	require.NoError(t, err)
	assert.Equal(t, before, st)
	assert.Zero(t, notified)
}

func TestUpdateToZeroEqualsRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	build := func() *Store {
		s := newTestStore(t)
		_, err := s.AddItem(ctx, product("1", "10"), 2)
		require.NoError(t, err)
		_, err = s.AddItem(ctx, product("2", "20"), 1)
		require.NoError(t, err)
		return s
	}

	viaUpdate := build()
	st1, err := viaUpdate.UpdateQuantity(ctx, "1", 0)
	require.NoError(t, err)

	viaNegative := build()
	st2, err := viaNegative.UpdateQuantity(ctx, "1", -4)
	require.NoError(t, err)

	viaRemove := build()
	st3, err := viaRemove.RemoveItem(ctx, "1")
	require.NoError(t, err)

	assert.Equal(t, st3, st1)
	assert.Equal(t, st3, st2)
	_, ok := st1.Line("1")
	assert.False(t, ok)
}

func TestClearOnEmptyCartStillNotifies(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	var got []State
	s.Subscribe(func(st State) { got = append(got, st) })

	st, err := s.Clear(context.Background())
	require.NoError(t, err)
	requireTotals(t, st, 0, "0")
	require.Len(t, got, 1)
	assert.Equal(t, uint64(1), got[0].Version)
}

func TestClearIfVersion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	st, err := s.AddItem(ctx, product("A", "10.00"), 2)
	require.NoError(t, err)
	read := st.Version

	st, err = s.AddItem(ctx, product("B", "5.00"), 1)
	require.NoError(t, err)

	got, err := s.ClearIfVersion(ctx, read)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionMismatch))
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.As(err).Code())
	assert.Equal(t, st.Version, got.Version)
	requireTotals(t, got, 3, "25.00")

	got, err = s.ClearIfVersion(ctx, st.Version)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
	assert.Equal(t, st.Version+1, got.Version)
}

func TestAddLineReportsCreation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	_, created, err := s.AddLine(ctx, product("A", "10.00"), 1)
	require.NoError(t, err)
	assert.True(t, created)

	st, created, err := s.AddLine(ctx, product("A", "10.00"), 2)
	require.NoError(t, err)
	assert.False(t, created)
	requireTotals(t, st, 3, "30.00")

	_, created, err = s.AddLine(ctx, product("B", "10.00"), 0)
	require.Error(t, err)
	assert.False(t, created)
}

func TestConcurrentAddLineCreatesOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		creates int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, created, err := s.AddLine(ctx, product("A", "10.00"), 1)
			assert.NoError(t, err)
			if created {
				mu.Lock()
				creates++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, creates)
	assert.Equal(t, workers, s.Snapshot().TotalItems)
}

func TestSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	st, err := s.AddItem(ctx, product("1", "10"), 1)
	require.NoError(t, err)

	st.Lines[0].Quantity = 99
	again := s.Snapshot()
	assert.Equal(t, 1, again.Lines[0].Quantity)
}

func TestTotalsHoldAfterEveryMutation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	prices := []string{"0", "9.99", "19.50", "59.99", "89.99", "129.99", "149.99"}
	s := newTestStore(t)

	var observed []State
	s.Subscribe(func(st State) { observed = append(observed, st) })

	model := map[string]int{}
	for step := 0; step < 2000; step++ {
		id := fmt.Sprintf("p%d", rng.Intn(len(prices)))
		p := product(id, prices[id[1]-'0'])
		var (
			st  State
			err error
		)
		switch rng.Intn(5) {
		case 0, 1:
			qty := rng.Intn(5) - 1
			st, err = s.AddItem(ctx, p, qty)
			if qty >= 1 {
				require.NoError(t, err)
				model[id] += qty
			} else {
				require.ErrorIs(t, err, ErrInvalidQuantity)
			}
		case 2:
			n := rng.Intn(6) - 2
			st, err = s.UpdateQuantity(ctx, id, n)
			if _, ok := model[id]; !ok {
				require.ErrorIs(t, err, ErrLineNotFound)
			} else {
				require.NoError(t, err)
				if n <= 0 {
					delete(model, id)
				} else {
					model[id] = n
				}
			}
		case 3:
			st, err = s.RemoveItem(ctx, id)
			require.NoError(t, err)
			delete(model, id)
		case 4:
			if rng.Intn(10) == 0 {
				st, err = s.Clear(ctx)
				require.NoError(t, err)
				model = map[string]int{}
			} else {
				st = s.Snapshot()
			}
		}
		assertConsistent(t, st)
		require.Len(t, st.Lines, len(model), "step %d", step)
		for _, l := range st.Lines {
			require.Equal(t, model[l.ProductID], l.Quantity, "step %d line %s", step, l.ProductID)
		}
	}
	for _, st := range observed {
		assertConsistent(t, st)
	}
}

func assertConsistent(t *testing.T, st State) {
	t.Helper()
	items := 0
	total := decimal.Zero
	seen := map[string]bool{}
	for _, l := range st.Lines {
		require.GreaterOrEqual(t, l.Quantity, 1)
		require.False(t, seen[l.ProductID], "duplicate line %s", l.ProductID)
		seen[l.ProductID] = true
		items += l.Quantity
		total = total.Add(l.Product.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	require.Equal(t, items, st.TotalItems)
	require.True(t, total.Equal(st.TotalPrice), "want %s got %s", total, st.TotalPrice)
}

func TestSubscribersNotifiedInOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	var calls []string
	s.Subscribe(func(State) { calls = append(calls, "first") })
	s.Subscribe(func(State) { calls = append(calls, "second") })

	_, err := s.AddItem(context.Background(), product("1", "1"), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	count := 0
	unsubscribe := s.Subscribe(func(State) { count++ })
	other := 0
	s.Subscribe(func(State) { other++ })

	_, err := s.AddItem(ctx, product("1", "1"), 1)
	require.NoError(t, err)
	unsubscribe()
	unsubscribe()
	_, err = s.AddItem(ctx, product("1", "1"), 1)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
	assert.Equal(t, 2, other)
}

func TestReentrantMutationIsQueued(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	var firstSeen, secondSeen []uint64

	s.Subscribe(func(st State) {
		firstSeen = append(firstSeen, st.Version)
		if st.Version == 1 {
			// Nested mutation: applied now, delivered after this round.
			nested, err := s.AddItem(ctx, product("2", "5"), 1)
			require.NoError(t, err)
			assert.Equal(t, uint64(2), nested.Version)
		}
	})
	s.Subscribe(func(st State) {
		secondSeen = append(secondSeen, st.Version)
	})

	st, err := s.AddItem(ctx, product("1", "10"), 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), st.Version)

	assert.Equal(t, []uint64{1, 2}, firstSeen)
	assert.Equal(t, []uint64{1, 2}, secondSeen, "second subscriber must finish round 1 before round 2")
	requireTotals(t, s.Snapshot(), 2, "15")
}

func TestSubscribeDuringCallbackTakesEffectNextRound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	late := 0
	var unsubscribeSelf func()
	selfCalls := 0
	unsubscribeSelf = s.Subscribe(func(State) {
		selfCalls++
		unsubscribeSelf()
		s.Subscribe(func(State) { late++ })
	})

	_, err := s.AddItem(ctx, product("1", "1"), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, late)

	_, err = s.AddItem(ctx, product("1", "1"), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, late)
	assert.Equal(t, 1, selfCalls)
}

func TestPanickingSubscriberDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	s.Subscribe(func(State) { panic("boom") })
	delivered := 0
	s.Subscribe(func(State) { delivered++ })

	st, err := s.AddItem(context.Background(), product("1", "3"), 2)
	require.NoError(t, err)
	requireTotals(t, st, 2, "6")
	assert.Equal(t, 1, delivered)

	_, err = s.AddItem(context.Background(), product("1", "3"), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, delivered, "store must keep delivering after a panic")
}

func TestNewStoreValidatesInitialLines(t *testing.T) {
	t.Parallel()

	line := func(id string, qty int, price string) Line {
		return Line{ProductID: id, Quantity: qty, Product: ProductSnapshot{UnitPrice: decimal.RequireFromString(price)}}
	}

	s, err := NewStore([]Line{line("1", 2, "10"), line("2", 1, "5.5")})
	require.NoError(t, err)
	requireTotals(t, s.Snapshot(), 3, "25.5")

	_, err = NewStore([]Line{line("1", 0, "10")})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = NewStore([]Line{line("1", 1, "-10")})
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, err = NewStore([]Line{line("1", 1, "1"), line("1", 1, "1")})
	assert.ErrorIs(t, err, ErrDuplicateLine)
	_, err = NewStore([]Line{line("", 1, "1")})
	assert.ErrorIs(t, err, ErrInvalidProduct)
}

func TestConcurrentMutationsStayConsistent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t)
	var mu sync.Mutex
	rounds := 0
	s.Subscribe(func(st State) {
		mu.Lock()
		rounds++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := s.AddItem(ctx, product(fmt.Sprintf("%d", i%5), "2"), 1)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	st := s.Snapshot()
	requireTotals(t, st, 400, "800")
	assert.Len(t, st.Lines, 5)
	assert.Equal(t, uint64(400), st.Version)
	mu.Lock()
	assert.Equal(t, 400, rounds)
	mu.Unlock()
}

func lineIDs(st State) []string {
	out := make([]string, 0, len(st.Lines))
	for _, l := range st.Lines {
		out = append(out, l.ProductID)
	}
	return out
}

package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/metrics"
)

type stubMenuRepository struct {
	items     []*menu.Item
	err       error
	listCalls int
}

func (r *stubMenuRepository) ListItems(ctx context.Context) ([]*menu.Item, error) {
	r.listCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.items, nil
}

func (r *stubMenuRepository) FindByName(ctx context.Context, name string) (*menu.Item, error) {
	return nil, errors.New("unused")
}

func (r *stubMenuRepository) Upsert(ctx context.Context, item *menu.Item) error {
	return errors.New("unused")
}

func TestSnapshotLoadsLazilyOnce(t *testing.T) {
	repo := &stubMenuRepository{items: []*menu.Item{{Name: "チキンカレー"}}}
	cache := NewCache(repo)
	ctx := context.Background()

	first, err := cache.Snapshot(ctx)
	require.NoError(t, err)
	second, err := cache.Snapshot(ctx)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
	assert.Equal(t, 1, repo.listCalls, "snapshot must hit the repository only on first use")
}

func TestRefreshSwapsSnapshotAndUpdatesGauge(t *testing.T) {
	repo := &stubMenuRepository{items: []*menu.Item{
		{Name: "チキンカレー"},
		{Name: "ビーフカレー"},
	}}
	cache := NewCache(repo)
	ctx := context.Background()

	require.NoError(t, cache.Refresh(ctx))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.CatalogItems))

	held, err := cache.Snapshot(ctx)
	require.NoError(t, err)

	repo.items = append(repo.items, &menu.Item{Name: "野菜カレー"})
	require.NoError(t, cache.Refresh(ctx))

	fresh, err := cache.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, fresh, 3)
	assert.Len(t, held, 2, "a snapshot handed out before the refresh stays intact")
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.CatalogItems))
}

func TestRefreshErrorKeepsPreviousSnapshot(t *testing.T) {
	repo := &stubMenuRepository{items: []*menu.Item{{Name: "チキンカレー"}}}
	cache := NewCache(repo)
	ctx := context.Background()

	require.NoError(t, cache.Refresh(ctx))

	repo.err = errors.New("db down")
	require.Error(t, cache.Refresh(ctx))

	snapshot, err := cache.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snapshot, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CatalogItems))
}

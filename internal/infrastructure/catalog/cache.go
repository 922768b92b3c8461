package catalog

import (
	"context"
	"sync"

	"github.com/miuye256/restaurant-chatbot-backend/internal/domain/menu"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/logger"
	"github.com/miuye256/restaurant-chatbot-backend/internal/infrastructure/metrics"
)

// Cache holds an in-memory snapshot of the menu catalog. A user turn reads one
// consistent snapshot for its whole resolution; concurrent refreshes never
// mutate a snapshot already handed out.
type Cache struct {
	repo menu.Repository

	mu     sync.RWMutex
	items  []*menu.Item
	loaded bool
}

func NewCache(repo menu.Repository) *Cache {
	return &Cache{repo: repo}
}

// Snapshot returns the cached catalog, loading it from the repository on first
// use. The returned slice is shared and must be treated as read-only.
func (c *Cache) Snapshot(ctx context.Context) ([]*menu.Item, error) {
	c.mu.RLock()
	if c.loaded {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.items, nil
}

// Refresh reloads the catalog from the repository and swaps in the new
// snapshot. Readers holding the previous snapshot are unaffected.
func (c *Cache) Refresh(ctx context.Context) error {
	items, err := c.repo.ListItems(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()

	metrics.CatalogItems.Set(float64(len(items)))

	log := logger.GetLogger()
	log.Debug().Int("items", len(items)).Msg("catalog snapshot refreshed")
	return nil
}

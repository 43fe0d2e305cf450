package directory

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/openvet/clinic-api/internal/model"
)

// Staff records change rarely but are fetched on every booking, so
// successful lookups are held briefly in memory.
const (
	staffCacheTTL     = 30 * time.Second
	staffCacheCleanup = 5 * time.Minute
)

// StaffClient talks to the staff directory service.
type StaffClient struct {
	httpClient
	cache *gocache.Cache
}

func NewStaffClient(baseURL string, timeout time.Duration, logger *zerolog.Logger) *StaffClient {
	return &StaffClient{
		httpClient: newHTTPClient("staff", baseURL, timeout, logger),
		cache:      gocache.New(staffCacheTTL, staffCacheCleanup),
	}
}

func (c *StaffClient) Get(ctx context.Context, id int64, token string) (*model.Staff, error) {
	key := fmt.Sprintf("staff:%d", id)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(*model.Staff), nil
	}

	var staff model.Staff
	path := fmt.Sprintf("/api/v1/staff/%d", id)
	if err := c.getJSON(ctx, path, token, &staff); err != nil {
		return nil, err
	}

	c.cache.Set(key, &staff, gocache.DefaultExpiration)
	return &staff, nil
}

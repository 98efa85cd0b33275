package market

import (
	"context"
	"time"

	"lever/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a market store with a small read cache for the api view
// paths. Mutating calls pass through and drop the cached copy. The ledger
// write path must use the inner store directly; invalidating from inside
// an open transaction would let a concurrent read re-cache the old row.
func Cache(store core.IMarketStore, exp time.Duration) core.IMarketStore {
	return &cacheMarketStore{
		IMarketStore: store,
		cache:        gcache.New(256).LRU().Expiration(exp).Build(),
		sf:           &singleflight.Group{},
	}
}

type cacheMarketStore struct {
	core.IMarketStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheMarketStore) Find(ctx context.Context, assetID string) (*core.Market, error) {
	if v, err := s.cache.Get(assetID); err == nil {
		if market, ok := v.(*core.Market); ok {
			return market, nil
		}
	}

	v, err, _ := s.sf.Do(assetID, func() (interface{}, error) {
		market, err := s.IMarketStore.Find(ctx, assetID)
		if err != nil {
			return nil, err
		}
		if market.ID > 0 {
			_ = s.cache.Set(assetID, market)
		}
		return market, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Market), nil
}

func (s *cacheMarketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	if err := s.IMarketStore.Save(ctx, tx, market); err != nil {
		return err
	}
	s.cache.Remove(market.AssetID)
	return nil
}

func (s *cacheMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	if err := s.IMarketStore.Update(ctx, tx, market); err != nil {
		return err
	}
	s.cache.Remove(market.AssetID)
	return nil
}

package market

import (
	"context"
	"testing"
	"time"

	"lever/core"
	"lever/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMarketStore struct {
	markets map[string]*core.Market
	finds   int
}

func (s *countingMarketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.markets[market.AssetID] = market
	return nil
}

func (s *countingMarketStore) Find(ctx context.Context, assetID string) (*core.Market, error) {
	s.finds++
	if m, ok := s.markets[assetID]; ok {
		return m, nil
	}
	return &core.Market{}, nil
}

func (s *countingMarketStore) FindBySymbol(ctx context.Context, symbol string) (*core.Market, error) {
	for _, m := range s.markets {
		if m.Symbol == symbol {
			return m, nil
		}
	}
	return &core.Market{}, nil
}

func (s *countingMarketStore) All(ctx context.Context) ([]*core.Market, error) {
	var out []*core.Market
	for _, m := range s.markets {
		out = append(out, m)
	}
	return out, nil
}

func (s *countingMarketStore) AllAsMap(ctx context.Context) (map[string]*core.Market, error) {
	return s.markets, nil
}

func (s *countingMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.markets[market.AssetID] = market
	return nil
}

func TestCacheServesRepeatedFinds(t *testing.T) {
	ctx := context.Background()
	assetID := "4d8c508b-91c5-375b-92b0-ee702ed2dac5"

	inner := &countingMarketStore{markets: map[string]*core.Market{
		assetID: {ID: 1, AssetID: assetID, Symbol: "BTC", TotalSupplied: number.Decimal("100")},
	}}
	cached := Cache(inner, time.Minute)

	m, err := cached.Find(ctx, assetID)
	require.Nil(t, err)
	assert.Equal(t, uint64(1), m.ID)

	_, err = cached.Find(ctx, assetID)
	require.Nil(t, err)
	assert.Equal(t, 1, inner.finds, "second find should be served from cache")
}

func TestCacheInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	assetID := "4d8c508b-91c5-375b-92b0-ee702ed2dac5"

	inner := &countingMarketStore{markets: map[string]*core.Market{
		assetID: {ID: 1, AssetID: assetID, Symbol: "BTC", TotalSupplied: number.Decimal("100")},
	}}
	cached := Cache(inner, time.Minute)

	_, err := cached.Find(ctx, assetID)
	require.Nil(t, err)

	updated := &core.Market{ID: 1, AssetID: assetID, Symbol: "BTC", TotalSupplied: number.Decimal("250")}
	require.Nil(t, cached.Update(ctx, nil, updated))

	m, err := cached.Find(ctx, assetID)
	require.Nil(t, err)
	assert.Equal(t, "250", m.TotalSupplied.String())
	assert.Equal(t, 2, inner.finds, "update should drop the cached copy")
}

func TestCacheSkipsUnknownMarkets(t *testing.T) {
	ctx := context.Background()

	inner := &countingMarketStore{markets: map[string]*core.Market{}}
	cached := Cache(inner, time.Minute)

	m, err := cached.Find(ctx, "965e5c6e-434c-3fa9-b780-c50f43cd955c")
	require.Nil(t, err)
	assert.Equal(t, uint64(0), m.ID)

	_, err = cached.Find(ctx, "965e5c6e-434c-3fa9-b780-c50f43cd955c")
	require.Nil(t, err)
	assert.Equal(t, 2, inner.finds, "zero-valued rows are never cached")
}

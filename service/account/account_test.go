package account

import (
	"context"
	"testing"
	"time"

	"lever/core"
	"lever/internal/ledger"
	"lever/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakeMarketStore struct {
	markets map[string]*core.Market
}

func (s *fakeMarketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.markets[market.AssetID] = market
	return nil
}

func (s *fakeMarketStore) Find(ctx context.Context, assetID string) (*core.Market, error) {
	if m, ok := s.markets[assetID]; ok {
		return m, nil
	}
	return &core.Market{}, nil
}

func (s *fakeMarketStore) FindBySymbol(ctx context.Context, symbol string) (*core.Market, error) {
	for _, m := range s.markets {
		if m.Symbol == symbol {
			return m, nil
		}
	}
	return &core.Market{}, nil
}

func (s *fakeMarketStore) All(ctx context.Context) ([]*core.Market, error) {
	var out []*core.Market
	for _, m := range s.markets {
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeMarketStore) AllAsMap(ctx context.Context) (map[string]*core.Market, error) {
	return s.markets, nil
}

func (s *fakeMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.markets[market.AssetID] = market
	return nil
}

type fakePositionStore struct {
	positions map[string]*core.Position
}

func positionKey(userID, assetID string) string {
	return userID + "/" + assetID
}

func (s *fakePositionStore) Find(ctx context.Context, userID, assetID string) (*core.Position, error) {
	if p, ok := s.positions[positionKey(userID, assetID)]; ok {
		return p, nil
	}
	return &core.Position{UserID: userID, AssetID: assetID}, nil
}

func (s *fakePositionStore) FindByUser(ctx context.Context, userID string) ([]*core.Position, error) {
	var out []*core.Position
	for _, p := range s.positions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakePositionStore) Create(ctx context.Context, tx *db.DB, position *core.Position) error {
	position.ID = uint64(len(s.positions) + 1)
	s.positions[positionKey(position.UserID, position.AssetID)] = position
	return nil
}

func (s *fakePositionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.positions[positionKey(position.UserID, position.AssetID)] = position
	return nil
}

type fakeUserStore struct {
	users map[string]*core.User
}

func (s *fakeUserStore) Find(ctx context.Context, userID string) (*core.User, error) {
	if u, ok := s.users[userID]; ok {
		return u, nil
	}
	return &core.User{UserID: userID}, nil
}

func (s *fakeUserStore) Save(ctx context.Context, tx *db.DB, user *core.User) error {
	s.users[user.UserID] = user
	return nil
}

func (s *fakeUserStore) Touch(ctx context.Context, tx *db.DB, userID, assetID string) error {
	user, _ := s.Find(ctx, userID)
	if !user.Touched(assetID) {
		user.TouchedAssets = append(user.TouchedAssets, assetID)
	}
	s.users[userID] = user
	return nil
}

func (s *fakeUserStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.User, error) {
	var out []*core.User
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

type fakePriceService struct{}

func (s *fakePriceService) GetUnderlyingPrice(ctx context.Context, market *core.Market) (decimal.Decimal, error) {
	if !market.Price.IsPositive() {
		return decimal.Zero, core.ErrInvalidPrice
	}
	return market.Price, nil
}

func (s *fakePriceService) SetPrice(ctx context.Context, assetID string, price decimal.Decimal, updatedBy string) error {
	return nil
}

func (s *fakePriceService) PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*core.PriceTicker, error) {
	return nil, nil
}

const (
	assetA = "9437ab48-1b11-4efa-8a43-1875a9c6b331"
	assetB = "31d2ea9c-95eb-3355-b65b-ba096853bc18"
)

func newFixture(at time.Time) (*fakeMarketStore, *fakePositionStore, *fakeUserStore, core.IAccountService) {
	markets := &fakeMarketStore{markets: map[string]*core.Market{
		assetA: {
			ID: 1, AssetID: assetA, Symbol: "BTC", Active: true,
			CollateralFactor:     number.Decimal("0.8"),
			LiquidationThreshold: number.Decimal("0.85"),
			Price:                number.Decimal("1"),
			SupplyIndex:          ledger.One,
			BorrowIndex:          ledger.One,
			LastUpdateTime:       at,
		},
		assetB: {
			ID: 2, AssetID: assetB, Symbol: "ETH", Active: true,
			CollateralFactor:     number.Decimal("0.8"),
			LiquidationThreshold: number.Decimal("0.85"),
			Price:                number.Decimal("1"),
			SupplyIndex:          ledger.One,
			BorrowIndex:          ledger.One,
			LastUpdateTime:       at,
		},
	}}

	positions := &fakePositionStore{positions: map[string]*core.Position{}}
	users := &fakeUserStore{users: map[string]*core.User{}}
	service := New(markets, positions, users, &fakePriceService{})

	return markets, positions, users, service
}

func TestEvaluateAccountAtBorrowCeiling(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	markets, positions, users, service := newFixture(at)

	_ = positions.Create(ctx, nil, &core.Position{
		UserID: "alice", AssetID: assetA,
		SuppliedAmount:      number.Decimal("1000"),
		SupplyIndexSnapshot: ledger.One,
		IsCollateral:        true,
	})
	_ = positions.Create(ctx, nil, &core.Position{
		UserID: "alice", AssetID: assetB,
		BorrowedAmount:      number.Decimal("800"),
		BorrowIndexSnapshot: ledger.One,
	})
	_ = users.Touch(ctx, nil, "alice", assetA)
	_ = users.Touch(ctx, nil, "alice", assetB)

	liquidity, err := service.EvaluateAccount(ctx, "alice", at)
	require.NoError(t, err)

	require.True(t, liquidity.CollateralValue.Equal(number.Decimal("800")), "collateral value %s", liquidity.CollateralValue)
	require.True(t, liquidity.LiquidationValue.Equal(number.Decimal("850")))
	require.True(t, liquidity.BorrowValue.Equal(number.Decimal("800")))
	require.False(t, liquidity.Liquidatable)

	// exactly at the ceiling, one more unit must be rejected
	ok, err := service.CanBorrow(ctx, "alice", markets.markets[assetB], number.Decimal("1"), at)
	require.NoError(t, err)
	require.False(t, ok)

	// and any collateral withdrawal as well
	ok, err = service.RemainsSolventAfterWithdraw(ctx, "alice", markets.markets[assetA], number.Decimal("1"), at)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = service.RemainsSolventWithoutCollateral(ctx, "alice", markets.markets[assetA], at)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEvaluateAccountLiquidatable(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	_, positions, users, service := newFixture(at)

	_ = positions.Create(ctx, nil, &core.Position{
		UserID: "bob", AssetID: assetA,
		SuppliedAmount:      number.Decimal("1000"),
		SupplyIndexSnapshot: ledger.One,
		IsCollateral:        true,
	})
	_ = positions.Create(ctx, nil, &core.Position{
		UserID: "bob", AssetID: assetB,
		BorrowedAmount:      number.Decimal("851"),
		BorrowIndexSnapshot: ledger.One,
	})
	_ = users.Touch(ctx, nil, "bob", assetA)
	_ = users.Touch(ctx, nil, "bob", assetB)

	liquidity, err := service.EvaluateAccount(ctx, "bob", at)
	require.NoError(t, err)

	require.True(t, liquidity.HealthFactor.LessThan(ledger.One), "health factor %s", liquidity.HealthFactor)
	require.True(t, liquidity.Liquidatable)
}

func TestEvaluateAccountZeroDebt(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	markets, positions, users, service := newFixture(at)

	_ = positions.Create(ctx, nil, &core.Position{
		UserID: "carol", AssetID: assetA,
		SuppliedAmount:      number.Decimal("10"),
		SupplyIndexSnapshot: ledger.One,
		IsCollateral:        true,
	})
	_ = users.Touch(ctx, nil, "carol", assetA)

	liquidity, err := service.EvaluateAccount(ctx, "carol", at)
	require.NoError(t, err)

	require.True(t, liquidity.HealthFactor.Equal(ledger.MaxHealthFactor))
	require.False(t, liquidity.Liquidatable)

	ok, err := service.RemainsSolventWithoutCollateral(ctx, "carol", markets.markets[assetA], at)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHealthFactorMonotonicity(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	_, positions, users, service := newFixture(at)

	_ = positions.Create(ctx, nil, &core.Position{
		UserID: "dave", AssetID: assetA,
		SuppliedAmount:      number.Decimal("1000"),
		SupplyIndexSnapshot: ledger.One,
		IsCollateral:        true,
	})
	debt := &core.Position{
		UserID: "dave", AssetID: assetB,
		BorrowedAmount:      number.Decimal("500"),
		BorrowIndexSnapshot: ledger.One,
	}
	_ = positions.Create(ctx, nil, debt)
	_ = users.Touch(ctx, nil, "dave", assetA)
	_ = users.Touch(ctx, nil, "dave", assetB)

	base, err := service.EvaluateAccount(ctx, "dave", at)
	require.NoError(t, err)

	// more collateral, same debt: health factor never decreases
	collateral, _ := positions.Find(ctx, "dave", assetA)
	collateral.SuppliedAmount = number.Decimal("1500")
	richer, err := service.EvaluateAccount(ctx, "dave", at)
	require.NoError(t, err)
	require.True(t, richer.HealthFactor.GreaterThanOrEqual(base.HealthFactor))

	// more debt, same collateral: health factor never increases
	debt.BorrowedAmount = number.Decimal("900")
	poorer, err := service.EvaluateAccount(ctx, "dave", at)
	require.NoError(t, err)
	require.True(t, poorer.HealthFactor.LessThanOrEqual(richer.HealthFactor))
}

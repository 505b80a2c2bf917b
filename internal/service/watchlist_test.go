package service

import (
	"context"
	"testing"

	"stock-scoring/internal/dto"
	"stock-scoring/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchlistService(t *testing.T) {
	ctx := context.Background()
	repo := &fakeWatchlistRepo{}
	uow := &fakeUnitOfWork{}
	svc := NewWatchlistService(logger.NewNop(), repo, uow)

	added, err := svc.Add(ctx, dto.AddWatchlistRequest{Symbol: " msft ", Note: "cloud"})
	require.NoError(t, err)
	assert.Equal(t, "MSFT", added.Symbol)
	assert.Equal(t, "cloud", added.Note)

	_, err = svc.Add(ctx, dto.AddWatchlistRequest{Symbol: "AAPL"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, dto.AddWatchlistRequest{Symbol: "msft"})
	assert.ErrorIs(t, err, ErrWatchlistItemExists)
	assert.Equal(t, 3, uow.runs)

	items, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "AAPL", items[0].Symbol)

	symbols, err := svc.Symbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)

	require.NoError(t, svc.Remove(ctx, "aapl"))
	assert.ErrorIs(t, svc.Remove(ctx, "AAPL"), ErrWatchlistItemNotFound)
}

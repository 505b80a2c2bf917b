package service

import (
	"context"
	"errors"
	"fmt"

	"stock-scoring/internal/dto"
	"stock-scoring/internal/extractor"
	"stock-scoring/internal/model"
	"stock-scoring/internal/repository"
	"stock-scoring/pkg/logger"
	"stock-scoring/pkg/utils"
)

var (
	ErrWatchlistItemExists   = errors.New("symbol already in watchlist")
	ErrWatchlistItemNotFound = errors.New("symbol not in watchlist")
)

type WatchlistService interface {
	List(ctx context.Context) ([]dto.WatchlistItemResponse, error)
	Symbols(ctx context.Context) ([]string, error)
	Add(ctx context.Context, req dto.AddWatchlistRequest) (*dto.WatchlistItemResponse, error)
	Remove(ctx context.Context, symbol string) error
}

type watchlistService struct {
	log           *logger.Logger
	watchlistRepo repository.WatchlistRepository
	uow           repository.UnitOfWork
}

func NewWatchlistService(log *logger.Logger, watchlistRepo repository.WatchlistRepository, uow repository.UnitOfWork) WatchlistService {
	return &watchlistService{log: log, watchlistRepo: watchlistRepo, uow: uow}
}

func (s *watchlistService) List(ctx context.Context) ([]dto.WatchlistItemResponse, error) {
	items, err := s.watchlistRepo.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to list watchlist", logger.ErrorField(err))
		return nil, err
	}

	out := make([]dto.WatchlistItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toWatchlistResponse(item))
	}
	return out, nil
}

func (s *watchlistService) Symbols(ctx context.Context) ([]string, error) {
	items, err := s.watchlistRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(items))
	for _, item := range items {
		symbols = append(symbols, item.Symbol)
	}
	return symbols, nil
}

func (s *watchlistService) Add(ctx context.Context, req dto.AddWatchlistRequest) (*dto.WatchlistItemResponse, error) {
	item := model.WatchlistItem{
		Symbol: extractor.NormalizeSymbol(req.Symbol),
		Note:   req.Note,
	}

	err := s.uow.Run(ctx, func(opts ...utils.DBOption) error {
		existing, err := s.watchlistRepo.FindBySymbol(ctx, item.Symbol, opts...)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%s: %w", item.Symbol, ErrWatchlistItemExists)
		}
		return s.watchlistRepo.Create(ctx, &item, opts...)
	})
	if err != nil {
		if !errors.Is(err, ErrWatchlistItemExists) {
			s.log.ErrorContext(ctx, "Failed to add watchlist item", logger.ErrorField(err), logger.StringField("symbol", item.Symbol))
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "Watchlist item added", logger.StringField("symbol", item.Symbol))
	resp := toWatchlistResponse(item)
	return &resp, nil
}

func (s *watchlistService) Remove(ctx context.Context, symbol string) error {
	symbol = extractor.NormalizeSymbol(symbol)
	deleted, err := s.watchlistRepo.DeleteBySymbol(ctx, symbol)
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to remove watchlist item", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%s: %w", symbol, ErrWatchlistItemNotFound)
	}
	return nil
}

func toWatchlistResponse(item model.WatchlistItem) dto.WatchlistItemResponse {
	return dto.WatchlistItemResponse{
		Symbol:    item.Symbol,
		Note:      item.Note,
		CreatedAt: item.CreatedAt,
	}
}

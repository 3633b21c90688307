package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/cache"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/internal/domain/repository"
	infraRepo "github.com/kmuteti/restopos-api/internal/infrastructure/repository"
	"github.com/kmuteti/restopos-api/pkg/apperror"
)

// KitchenService drives the kitchen display board: the status lifecycle of
// each ticket and the board of tickets still needing attention.
type KitchenService struct {
	saleRepo   repository.SaleRepository
	boardCache cache.BoardCache
	boardTTL   time.Duration
}

// NewKitchenService creates a new kitchen service
func NewKitchenService(saleRepo repository.SaleRepository, boardCache cache.BoardCache, boardTTL time.Duration) *KitchenService {
	return &KitchenService{
		saleRepo:   saleRepo,
		boardCache: boardCache,
		boardTTL:   boardTTL,
	}
}

// SetStatus moves a ticket along the preparation lifecycle. Setting the
// status it already has is a no-op; any move outside the allowed graph is
// rejected.
func (s *KitchenService) SetStatus(ctx context.Context, saleID uuid.UUID, status enum.KitchenStatus) (*entity.Sale, error) {
	if !status.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown kitchen status")
	}

	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	if sale.KitchenStatus == status {
		return sale, nil
	}

	if !sale.KitchenStatus.CanTransitionTo(status) {
		return nil, apperror.ErrInvalidTransition
	}

	// The write is conditional on the status we validated against, so a
	// concurrent update from another terminal invalidates this one instead
	// of landing a transition the graph forbids.
	if err := s.saleRepo.UpdateKitchenStatus(ctx, saleID, sale.KitchenStatus, status); err != nil {
		if errors.Is(err, infraRepo.ErrTicketStatusChanged) {
			return nil, apperror.ErrInvalidTransition
		}
		return nil, err
	}
	sale.KitchenStatus = status

	_ = s.boardCache.Invalidate(ctx, cache.BoardKey)

	return sale, nil
}

// Board returns the serialized active tickets (pending or preparing, current
// business day, oldest first), served from the cache when fresh.
func (s *KitchenService) Board(ctx context.Context) (json.RawMessage, error) {
	if payload, ok, err := s.boardCache.Get(ctx, cache.BoardKey); err == nil && ok {
		return payload, nil
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	tickets, err := s.saleRepo.ActiveTickets(ctx, dayStart)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(tickets)
	if err != nil {
		return nil, err
	}

	_ = s.boardCache.Set(ctx, cache.BoardKey, payload, s.boardTTL)

	return payload, nil
}

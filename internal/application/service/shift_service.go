package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/repository"
	"github.com/kmuteti/restopos-api/pkg/apperror"
	"gorm.io/gorm"
)

// ShiftService handles the register session ledger: opening a drawer with a
// float, accumulating per-method totals as sales commit, and reconciling the
// counted cash at close.
type ShiftService struct {
	shiftRepo repository.ShiftRepository
	saleRepo  repository.SaleRepository
}

// NewShiftService creates a new shift service
func NewShiftService(shiftRepo repository.ShiftRepository, saleRepo repository.SaleRepository) *ShiftService {
	return &ShiftService{
		shiftRepo: shiftRepo,
		saleRepo:  saleRepo,
	}
}

// OpenShiftInput represents the open shift input
type OpenShiftInput struct {
	StaffID        uuid.UUID
	OpeningBalance float64
}

// Open starts a new shift for the staff member. The database index on open
// shifts turns a concurrent double-open into a duplicate key error, which is
// reported as a conflict.
func (s *ShiftService) Open(ctx context.Context, input *OpenShiftInput) (*entity.Shift, error) {
	if input.OpeningBalance < 0 {
		return nil, apperror.NewBadRequestError("Opening balance cannot be negative")
	}

	shift := &entity.Shift{
		StaffID:        input.StaffID,
		OpenedAt:       time.Now(),
		OpeningBalance: int64(input.OpeningBalance * 100),
	}

	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.ErrShiftAlreadyActive
		}
		return nil, err
	}

	return shift, nil
}

// Active returns the staff member's open shift, or a conflict error when
// there is none.
func (s *ShiftService) Active(ctx context.Context, staffID uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetActiveByStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoActiveShift
	}
	return shift, nil
}

// CloseShiftInput represents the close shift input
type CloseShiftInput struct {
	StaffID             uuid.UUID
	PhysicalCashCounted float64
}

// Close freezes the staff member's open shift with the counted drawer cash
// and returns the reconciliation summary. Tickets still working in the
// kitchen raise a warning flag on the summary but never block the close.
func (s *ShiftService) Close(ctx context.Context, input *CloseShiftInput) (*entity.ShiftSummary, error) {
	shift, err := s.shiftRepo.GetActiveByStaff(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoActiveShift
	}

	counted := int64(input.PhysicalCashCounted * 100)
	now := time.Now()
	shift.PhysicalCashCounted = &counted
	shift.ClosedAt = &now
	shift.IsClosed = true

	closed, err := s.shiftRepo.Close(ctx, shift)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, apperror.ErrShiftClosed
	}

	// Re-read after the freeze so the summary reflects totals from sales
	// that landed between the lookup and the close.
	final, err := s.shiftRepo.GetByID(ctx, shift.ID)
	if err != nil {
		return nil, err
	}
	if final == nil {
		return nil, apperror.ErrShiftNotFound
	}

	openTickets, err := s.saleRepo.CountOpenTickets(ctx, final.ID)
	if err != nil {
		return nil, err
	}

	return entity.NewShiftSummary(final, openTickets > 0), nil
}

// GetByID returns a single shift by id
func (s *ShiftService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	shift, err := s.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrShiftNotFound
	}
	return shift, nil
}

// List returns the staff member's shift history
func (s *ShiftService) List(ctx context.Context, staffID uuid.UUID, includeClosed bool) ([]entity.Shift, error) {
	return s.shiftRepo.List(ctx, staffID, includeClosed)
}

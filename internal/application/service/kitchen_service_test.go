package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/pkg/apperror"
)

func newKitchenTestEnv(t *testing.T) (*KitchenService, *saleTestEnv) {
	t.Helper()
	env := newSaleTestEnv(t)
	return NewKitchenService(env.sales, env.cache, 5*time.Second), env
}

func commitTicket(t *testing.T, env *saleTestEnv, productID uuid.UUID) *entity.Sale {
	t.Helper()
	sale, err := env.svc.Commit(context.Background(), &CommitSaleInput{
		StaffID:       env.staffID,
		OrderType:     enum.OrderTypeDineIn,
		TableNumber:   strptr("T1"),
		PaymentMethod: enum.PaymentMethodCard,
		Items:         []SaleItemInput{{ProductID: productID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	return sale
}

func TestSetStatusLifecycle(t *testing.T) {
	kitchen, env := newKitchenTestEnv(t)
	burger := env.products.add("Beef Burger", 1500, 10)
	sale := commitTicket(t, env, burger.ID)

	for _, status := range []enum.KitchenStatus{
		enum.KitchenStatusPreparing,
		enum.KitchenStatusReady,
		enum.KitchenStatusCompleted,
	} {
		updated, err := kitchen.SetStatus(context.Background(), sale.ID, status)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", status, err)
		}
		if updated.KitchenStatus != status {
			t.Errorf("KitchenStatus = %s, want %s", updated.KitchenStatus, status)
		}
	}
}

func TestSetStatusRejectsSkips(t *testing.T) {
	kitchen, env := newKitchenTestEnv(t)
	burger := env.products.add("Beef Burger", 1500, 10)
	sale := commitTicket(t, env, burger.ID)

	// pending -> ready skips preparing
	_, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusReady)
	if !errors.Is(err, apperror.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}

	// ready -> pending is not an allowed undo
	if _, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusPreparing); err != nil {
		t.Fatalf("to preparing failed: %v", err)
	}
	if _, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusReady); err != nil {
		t.Fatalf("to ready failed: %v", err)
	}
	_, err = kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusPending)
	if !errors.Is(err, apperror.ErrInvalidTransition) {
		t.Fatalf("ready->pending err = %v, want ErrInvalidTransition", err)
	}
}

func TestSetStatusUndoFromPreparing(t *testing.T) {
	kitchen, env := newKitchenTestEnv(t)
	burger := env.products.add("Beef Burger", 1500, 10)
	sale := commitTicket(t, env, burger.ID)

	if _, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusPreparing); err != nil {
		t.Fatalf("to preparing failed: %v", err)
	}
	updated, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusPending)
	if err != nil {
		t.Fatalf("undo to pending failed: %v", err)
	}
	if updated.KitchenStatus != enum.KitchenStatusPending {
		t.Errorf("KitchenStatus = %s, want Pending", updated.KitchenStatus)
	}
}

func TestSetStatusIdempotent(t *testing.T) {
	kitchen, env := newKitchenTestEnv(t)
	burger := env.products.add("Beef Burger", 1500, 10)
	sale := commitTicket(t, env, burger.ID)

	before := env.cache.invalidates
	updated, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusPending)
	if err != nil {
		t.Fatalf("same-status set failed: %v", err)
	}
	if updated.KitchenStatus != enum.KitchenStatusPending {
		t.Errorf("KitchenStatus = %s, want Pending", updated.KitchenStatus)
	}
	if env.cache.invalidates != before {
		t.Error("a no-op status set should not invalidate the board cache")
	}
}

func TestSetStatusStaleReadLosesToConcurrentAdvance(t *testing.T) {
	kitchen, env := newKitchenTestEnv(t)
	burger := env.products.add("Beef Burger", 1500, 10)
	sale := commitTicket(t, env, burger.ID)

	if _, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusPreparing); err != nil {
		t.Fatalf("to preparing failed: %v", err)
	}

	// One terminal reads Preparing and tries the undo, but another terminal
	// advances the ticket to Ready before the write lands. The undo must be
	// rejected, not applied over the newer status.
	env.sales.beforeStatusWrite = func() {
		if _, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusReady); err != nil {
			t.Fatalf("concurrent advance failed: %v", err)
		}
	}
	before := env.cache.invalidates
	_, err := kitchen.SetStatus(context.Background(), sale.ID, enum.KitchenStatusPending)
	if !errors.Is(err, apperror.ErrInvalidTransition) {
		t.Fatalf("stale undo err = %v, want ErrInvalidTransition", err)
	}

	current, err := env.sales.GetByID(context.Background(), sale.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if current.KitchenStatus != enum.KitchenStatusReady {
		t.Errorf("KitchenStatus = %s, want %s", current.KitchenStatus, enum.KitchenStatusReady)
	}
	// only the concurrent advance should have invalidated the board
	if env.cache.invalidates != before+1 {
		t.Errorf("invalidates = %d, want %d", env.cache.invalidates, before+1)
	}
}

func TestSetStatusUnknownSale(t *testing.T) {
	kitchen, _ := newKitchenTestEnv(t)

	_, err := kitchen.SetStatus(context.Background(), uuid.New(), enum.KitchenStatusPreparing)
	if err == nil {
		t.Fatal("expected not found for unknown sale")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Errorf("code = %d, want 404", apperror.GetAppError(err).Code)
	}
}

func TestBoardListsActiveTicketsAndCaches(t *testing.T) {
	kitchen, env := newKitchenTestEnv(t)
	burger := env.products.add("Beef Burger", 1500, 10)
	first := commitTicket(t, env, burger.ID)
	second := commitTicket(t, env, burger.ID)

	// completing one ticket leaves the other on the board
	if _, err := kitchen.SetStatus(context.Background(), first.ID, enum.KitchenStatusPreparing); err != nil {
		t.Fatalf("to preparing failed: %v", err)
	}
	if _, err := kitchen.SetStatus(context.Background(), first.ID, enum.KitchenStatusReady); err != nil {
		t.Fatalf("to ready failed: %v", err)
	}

	payload, err := kitchen.Board(context.Background())
	if err != nil {
		t.Fatalf("board failed: %v", err)
	}

	var tickets []struct {
		ID            uuid.UUID `json:"id"`
		KitchenStatus string    `json:"kitchen_status"`
	}
	if err := json.Unmarshal(payload, &tickets); err != nil {
		t.Fatalf("board payload is not valid JSON: %v", err)
	}
	if len(tickets) != 1 || tickets[0].ID != second.ID {
		t.Fatalf("board = %+v, want only the still-pending ticket", tickets)
	}
	if tickets[0].KitchenStatus != "Pending" {
		t.Errorf("status on board = %q, want Pending", tickets[0].KitchenStatus)
	}

	// the second read is a cache hit
	setsBefore := env.cache.sets
	if _, err := kitchen.Board(context.Background()); err != nil {
		t.Fatalf("cached board failed: %v", err)
	}
	if env.cache.sets != setsBefore {
		t.Error("second board read should come from the cache")
	}

	// a status change invalidates and the next read rebuilds
	if _, err := kitchen.SetStatus(context.Background(), second.ID, enum.KitchenStatusPreparing); err != nil {
		t.Fatalf("to preparing failed: %v", err)
	}
	payload, err = kitchen.Board(context.Background())
	if err != nil {
		t.Fatalf("rebuilt board failed: %v", err)
	}
	if err := json.Unmarshal(payload, &tickets); err != nil {
		t.Fatalf("rebuilt board payload is not valid JSON: %v", err)
	}
	if len(tickets) != 1 || tickets[0].KitchenStatus != "Preparing" {
		t.Errorf("rebuilt board = %+v, want one preparing ticket", tickets)
	}
}

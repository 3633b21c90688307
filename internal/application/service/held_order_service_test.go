package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
)

func newHeldOrderTestEnv() *HeldOrderService {
	return NewHeldOrderService(newFakeHeldOrderRepo())
}

func TestHoldAndResume(t *testing.T) {
	svc := newHeldOrderTestEnv()
	productID := uuid.New()

	held, err := svc.Hold(context.Background(), &HoldOrderInput{
		OwnerSessionID: "terminal-1",
		OrderType:      enum.OrderTypeDineIn,
		TableNumber:    strptr("T3"),
		SubTotal:       35,
		Total:          35,
		Items: []HeldItemInput{
			{ProductID: productID, ProductName: "Beef Burger", Quantity: 2, UnitPrice: 15},
			{ProductID: uuid.New(), ProductName: "Fries", Quantity: 1, UnitPrice: 5},
		},
	})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}
	if held.ID == uuid.Nil {
		t.Fatal("held order should get an id")
	}
	if held.SubTotal != 3500 {
		t.Errorf("SubTotal = %d, want 3500", held.SubTotal)
	}
	if len(held.Items) != 2 || held.Items[0].UnitPrice != 1500 {
		t.Errorf("items not stored as given: %+v", held.Items)
	}

	resumed, err := svc.Resume(context.Background(), held.ID)
	if err != nil {
		t.Fatalf("resume failed: %v", err)
	}
	if resumed.ID != held.ID || len(resumed.Items) != 2 {
		t.Errorf("resumed cart does not match the held cart")
	}

	// resume is destructive; the second attempt finds nothing
	if _, err := svc.Resume(context.Background(), held.ID); err == nil {
		t.Error("expected second resume to fail")
	}
	if orders, _ := svc.List(context.Background(), "terminal-1"); len(orders) != 0 {
		t.Errorf("parked carts after resume = %d, want 0", len(orders))
	}
}

func TestHoldValidation(t *testing.T) {
	svc := newHeldOrderTestEnv()

	_, err := svc.Hold(context.Background(), &HoldOrderInput{
		OwnerSessionID: "terminal-1",
	})
	if err == nil {
		t.Error("expected empty cart to be rejected")
	}

	_, err = svc.Hold(context.Background(), &HoldOrderInput{
		Items: []HeldItemInput{{ProductID: uuid.New(), Quantity: 1}},
	})
	if err == nil {
		t.Error("expected missing owner session to be rejected")
	}
}

func TestListIsScopedToOwnerSession(t *testing.T) {
	svc := newHeldOrderTestEnv()

	hold := func(session string) {
		t.Helper()
		_, err := svc.Hold(context.Background(), &HoldOrderInput{
			OwnerSessionID: session,
			Items:          []HeldItemInput{{ProductID: uuid.New(), ProductName: "Tea", Quantity: 1, UnitPrice: 2}},
		})
		if err != nil {
			t.Fatalf("hold for %s failed: %v", session, err)
		}
	}
	hold("terminal-1")
	hold("terminal-1")
	hold("terminal-2")

	mine, err := svc.List(context.Background(), "terminal-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("terminal-1 carts = %d, want 2", len(mine))
	}

	if _, err := svc.List(context.Background(), ""); err == nil {
		t.Error("expected empty session id to be rejected")
	}
}

func TestDeleteHeldOrder(t *testing.T) {
	svc := newHeldOrderTestEnv()

	held, err := svc.Hold(context.Background(), &HoldOrderInput{
		OwnerSessionID: "terminal-1",
		Items:          []HeldItemInput{{ProductID: uuid.New(), ProductName: "Tea", Quantity: 1, UnitPrice: 2}},
	})
	if err != nil {
		t.Fatalf("hold failed: %v", err)
	}

	if err := svc.Delete(context.Background(), held.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), held.ID); err == nil {
		t.Error("expected second delete to fail")
	}
}

package handlers

import "testing"

func TestValidOrderStatusRejectsUnknownValues(t *testing.T) {
	for _, value := range []string{"", "pending", "Delivered ", "Refunded", "Completed"} {
		if validOrderStatus(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
	for _, value := range []string{
		OrderPending, OrderConfirmed, OrderShipped,
		OrderOutForDel, OrderDelivered, OrderCancelled, OrderReturned,
	} {
		if !validOrderStatus(value) {
			t.Fatalf("expected %q to be accepted", value)
		}
	}
}

func TestOrderTransitionsFollowTheLifecycle(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{OrderPending, OrderConfirmed, true},
		{OrderPending, OrderCancelled, true},
		{OrderConfirmed, OrderShipped, true},
		{OrderShipped, OrderOutForDel, true},
		{OrderOutForDel, OrderDelivered, true},
		{OrderDelivered, OrderReturned, true},
		{OrderDelivered, OrderPending, false},
		{OrderPending, OrderDelivered, false},
		{OrderCancelled, OrderPending, false},
		{OrderReturned, OrderShipped, false},
	}
	for _, tt := range tests {
		if got := canTransitionOrder(tt.from, tt.to); got != tt.want {
			t.Fatalf("canTransitionOrder(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestOrderTransitionSameStatusIsIdempotent(t *testing.T) {
	if !canTransitionOrder(OrderShipped, OrderShipped) {
		t.Fatal("re-setting the current status should be accepted")
	}
}

func TestReturnTransitionsFollowTheLifecycle(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{ReturnPendingApproval, ReturnApproved, true},
		{ReturnPendingApproval, ReturnRejected, true},
		{ReturnApproved, ReturnPickedUp, true},
		{ReturnPickedUp, ReturnRefunded, true},
		{ReturnPendingApproval, ReturnRefunded, false},
		{ReturnRejected, ReturnApproved, false},
		{ReturnRefunded, ReturnPendingApproval, false},
	}
	for _, tt := range tests {
		if got := canTransitionReturn(tt.from, tt.to); got != tt.want {
			t.Fatalf("canTransitionReturn(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidTicketStatus(t *testing.T) {
	for _, value := range []string{TicketOpen, TicketPending, TicketResolved, TicketClosed} {
		if !validTicketStatus(value) {
			t.Fatalf("expected %q to be accepted", value)
		}
	}
	if validTicketStatus("Archived") {
		t.Fatal("expected unknown ticket status to be rejected")
	}
}

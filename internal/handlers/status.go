package handlers

// Order statuses. "Confirmed / Processing" is a single value, matching what
// the admin dashboard renders.
const (
	OrderPending   = "Pending"
	OrderConfirmed = "Confirmed / Processing"
	OrderShipped   = "Shipped"
	OrderOutForDel = "Out for Delivery"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
	OrderReturned  = "Returned"
)

// Return statuses.
const (
	ReturnPendingApproval = "Pending Approval"
	ReturnApproved        = "Approved"
	ReturnRejected        = "Rejected"
	ReturnPickedUp        = "Item Picked Up"
	ReturnRefunded        = "Refunded"
)

// Value written onto the parent order's item when a return is filed.
const returnRequestedMark = "Requested"

// Ticket statuses. Every user reply reopens a ticket, every support reply
// parks it pending the user's response; closing is always explicit.
const (
	TicketOpen     = "Open"
	TicketPending  = "Pending"
	TicketResolved = "Resolved"
	TicketClosed   = "Closed"
)

var orderTransitions = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderOutForDel, OrderCancelled},
	OrderOutForDel: {OrderDelivered},
	OrderDelivered: {OrderReturned},
	OrderCancelled: {},
	OrderReturned:  {},
}

var returnTransitions = map[string][]string{
	ReturnPendingApproval: {ReturnApproved, ReturnRejected},
	ReturnApproved:        {ReturnPickedUp},
	ReturnPickedUp:        {ReturnRefunded},
	ReturnRejected:        {},
	ReturnRefunded:        {},
}

var ticketStatuses = map[string]bool{
	TicketOpen:     true,
	TicketPending:  true,
	TicketResolved: true,
	TicketClosed:   true,
}

// validOrderStatus reports whether value is in the fixed allow-list.
func validOrderStatus(value string) bool {
	_, ok := orderTransitions[value]
	return ok
}

func validReturnStatus(value string) bool {
	_, ok := returnTransitions[value]
	return ok
}

func validTicketStatus(value string) bool {
	return ticketStatuses[value]
}

// canTransition checks a move against a transition table. Re-setting the
// current status is accepted so double-submits stay idempotent.
func canTransition(table map[string][]string, from, to string) bool {
	if from == to {
		_, ok := table[from]
		return ok
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

func canTransitionOrder(from, to string) bool {
	return canTransition(orderTransitions, from, to)
}

func canTransitionReturn(from, to string) bool {
	return canTransition(returnTransitions, from, to)
}

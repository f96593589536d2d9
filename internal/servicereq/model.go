package servicereq

import "time"

const (
	TypeCallWaiter   = "call_waiter"
	TypeRequestSauce = "request_sauce"
	TypeRequestWater = "request_water"
	TypeRequestBill  = "request_bill"
	TypeOther        = "other"
)

const (
	StatusPending      = "pending"
	StatusAcknowledged = "acknowledged"
	StatusCompleted    = "completed"
)

var validTypes = map[string]bool{
	TypeCallWaiter:   true,
	TypeRequestSauce: true,
	TypeRequestWater: true,
	TypeRequestBill:  true,
	TypeOther:        true,
}

// ServiceRequest is a call button press from a table, e.g. a diner
// asking for water or the bill.
type ServiceRequest struct {
	ID             string     `json:"id"`
	RestaurantID   string     `json:"restaurant_id"`
	TableNumber    string     `json:"table_number,omitempty"`
	RequestType    string     `json:"request_type"`
	Note           string     `json:"note,omitempty"`
	Status         string     `json:"status"`
	AcknowledgedBy string     `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

package model

import "time"

// Service request types: shoppers can sell, repair or recycle a device.
const (
	ServiceTypeSell    = "sell"
	ServiceTypeRepair  = "repair"
	ServiceTypeRecycle = "recycle"
)

const (
	ServiceStatusPending   = "pending"
	ServiceStatusReviewed  = "reviewed"
	ServiceStatusCompleted = "completed"
	ServiceStatusRejected  = "rejected"
)

type ServiceRequest struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ValidServiceType(t string) bool {
	switch t {
	case ServiceTypeSell, ServiceTypeRepair, ServiceTypeRecycle:
		return true
	}
	return false
}

// ValidStatusTransition reports whether a request may move from one status
// to another. Terminal states have no outgoing transitions.
func ValidStatusTransition(from, to string) bool {
	switch from {
	case ServiceStatusPending:
		return to == ServiceStatusReviewed || to == ServiceStatusRejected
	case ServiceStatusReviewed:
		return to == ServiceStatusCompleted || to == ServiceStatusRejected
	}
	return false
}

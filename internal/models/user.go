package models

import (
	"time"
)

type Customer struct {
	ID         uint   `gorm:"primaryKey" json:"customer_id"`
	FirstName  string `gorm:"size:100" json:"firstname"`
	MiddleName string `gorm:"size:100" json:"middlename"`
	LastName   string `gorm:"size:100" json:"lastname"`
	MobileNo   string `gorm:"size:20" json:"mobileno"`

	CreatedAt time.Time `json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// ServiceProvider is the minimal provider record the ledger engine needs:
// identity, active flag, and last known coordinates for discovery.
type ServiceProvider struct {
	ID        uint     `gorm:"primaryKey" json:"provider_id"`
	Name      string   `gorm:"size:200" json:"name"`
	MobileNo  string   `gorm:"size:20" json:"mobileno"`
	Active    bool     `gorm:"default:true;index" json:"active"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (ServiceProvider) TableName() string {
	return "service_providers"
}

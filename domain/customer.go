package domain

import (
	"time"
)

// CREATE TABLE public.customer_profiles (
//     customer_id     TEXT PRIMARY KEY,
//     full_name       TEXT,
//     email           TEXT UNIQUE,
//     username        TEXT UNIQUE,
//     phone_number    TEXT,
//     age             INTEGER,
//     gender          TEXT,
//     location        TEXT
// );

type CustomerProfile struct {
	CustomerID  string `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	FullName    string `gorm:"column:full_name;type:text" json:"full_name"`
	Email       string `gorm:"column:email;unique" json:"email"`
	Username    string `gorm:"column:username;unique" json:"username"`
	PhoneNumber string `gorm:"column:phone_number;type:text" json:"phone_number"`
	Age         int    `gorm:"column:age" json:"age"`
	Gender      string `gorm:"column:gender;type:text" json:"gender"`
	Location    string `gorm:"column:location;type:text" json:"location"`
}

func (CustomerProfile) TableName() string {
	return "customer_profiles"
}

const (
	AddressTypeShipping = "shipping"
	AddressTypeBilling  = "billing"
)

type CustomerAddress struct {
	AddressID   uint64 `gorm:"column:address_id;primaryKey;autoIncrement" json:"address_id"`
	CustomerID  string `gorm:"column:customer_id;index;not null" json:"customer_id"`
	AddressType string `gorm:"column:address_type;type:text" json:"address_type"`
	Address     string `gorm:"column:address;type:text" json:"address"`
}

func (CustomerAddress) TableName() string {
	return "customer_addresses"
}

type BrowsingHistory struct {
	HistoryID  uint64    `gorm:"column:history_id;primaryKey;autoIncrement" json:"-"`
	CustomerID string    `gorm:"column:customer_id;index;not null" json:"-"`
	Category   string    `gorm:"column:category;type:text" json:"category"`
	Timestamp  time.Time `gorm:"column:timestamp;index" json:"timestamp"`
}

func (BrowsingHistory) TableName() string {
	return "browsing_history"
}

type PurchaseHistory struct {
	OrderID         uint64    `gorm:"column:order_id;primaryKey;autoIncrement" json:"-"`
	CustomerID      string    `gorm:"column:customer_id;index;not null" json:"-"`
	ProductName     string    `gorm:"column:product_name;type:text" json:"product_name"`
	ProductCategory string    `gorm:"column:product_category;type:text" json:"product_category"`
	Price           float64   `gorm:"column:price" json:"price"`
	OrderDate       time.Time `gorm:"column:order_date;index" json:"order_date"`
}

func (PurchaseHistory) TableName() string {
	return "purchase_history"
}

const (
	SegmentPremium  = "Premium"
	SegmentRegular  = "Regular"
	SegmentBudget   = "Budget"
	SegmentStandard = "Standard"
)

type CustomerSegment struct {
	CustomerID       string  `gorm:"column:customer_id;primaryKey" json:"customer_id"`
	Segment          string  `gorm:"column:customer_segment;type:text;index" json:"segment"`
	AvgOrderValue    float64 `gorm:"column:avg_order_value" json:"avg_order_value"`
	LastActiveSeason string  `gorm:"column:last_active_season;type:text" json:"last_active_season"`
}

func (CustomerSegment) TableName() string {
	return "customer_segments"
}

// SegmentSummary is the segment block of a customer profile response.
type SegmentSummary struct {
	Segment          string     `json:"segment"`
	AvgOrderValue    float64    `json:"avg_order_value"`
	LastActiveSeason string     `json:"last_active_season"`
	TotalOrders      int        `json:"total_orders"`
	TotalSpent       float64    `json:"total_spent"`
	LastPurchaseDate *time.Time `json:"last_purchase_date"`
}

type CustomerDetail struct {
	Profile         CustomerProfile   `json:"profile"`
	Segment         *SegmentSummary   `json:"segment"`
	Addresses       []CustomerAddress `json:"addresses"`
	BrowsingHistory []BrowsingHistory `json:"browsing_history"`
	PurchaseHistory []PurchaseHistory `json:"purchase_history"`
}

// BehaviorUpdate carries either a browsed category or a batch of purchases.
type BehaviorUpdate struct {
	CustomerID       string
	BrowsingCategory string
	Purchases        []PurchaseHistory
}

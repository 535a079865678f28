package model

import "time"

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type Item struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Customer struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type SaleItem struct {
	ItemID   int     `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Sale with a nil CustomerID is a cash sale.
type Sale struct {
	ID         int        `json:"id"`
	CustomerID *int       `json:"customerId,omitempty"`
	Customer   *Customer  `json:"customer,omitempty"`
	Items      []SaleItem `json:"items"`
	Total      float64    `json:"total"`
	Paid       float64    `json:"paid"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type DashboardStats struct {
	TotalItems     int     `json:"totalItems"`
	TotalCustomers int     `json:"totalCustomers"`
	SalesToday     int     `json:"salesToday"`
	RevenueToday   float64 `json:"revenueToday"`
	LowStockItems  []Item  `json:"lowStockItems,omitempty"`
}

type InventoryRow struct {
	ItemID  int    `json:"itemId"`
	Name    string `json:"name"`
	Opening int    `json:"opening"`
	Added   int    `json:"added"`
	Sold    int    `json:"sold"`
	Closing int    `json:"closing"`
}

type PageMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is the list envelope every paginated endpoint returns.
type Page[T any] struct {
	Data []T `json:"data"`
	PageMeta
}

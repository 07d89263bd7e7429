// Package model contains the storefront domain models.
// These are pure data structures shared by the HTTP, service and storage layers;
// they carry no persistence-specific tags.
package model

import "time"

// Role is the authority granted to a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a storefront account. Customers and administrators share the table.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	PhoneNumber string    `json:"phone_number"`
	Role        Role      `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

// Category is a top-level product grouping with a display image.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Subcategory belongs to exactly one category.
type Subcategory struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
}

// Product is a sellable item. Quantity is the stock on hand.
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	Description     string    `json:"description"`
	SubcategoryID   int64     `json:"subcategory_id"`
	SubcategoryName string    `json:"subcategory_name"`
	Brand           string    `json:"brand"`
	Image           string    `json:"image"`
	Rating          float64   `json:"rating"`
	Quantity        int       `json:"quantity"`
	CreatedAt       time.Time `json:"created_at"`
}

package models

import (
	"time"
)

const (
	CategorySmallChops = "Small Chops"
	CategoryShawarma   = "Shawarma"
	CategoryCakes      = "Cakes"
	CategoryDrinks     = "Drinks"
)

var Categories = []string{CategorySmallChops, CategoryShawarma, CategoryCakes, CategoryDrinks}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

const (
	DeliveryTypeDelivery = "Delivery"
	DeliveryTypePickup   = "Pickup"
)

const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// OrderStatuses lists every status the admin interface may assign.
// Reassignment is free-form, there is no transition machine.
var OrderStatuses = []string{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled}

func ValidOrderStatus(s string) bool {
	for _, v := range OrderStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Product prices are whole numbers in the smallest currency unit.
type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Description string    `gorm:"not null"                 json:"description"`
	Price       int       `gorm:"not null"                 json:"price"`
	ImageURL    string    `json:"image_url"`
	Category    string    `gorm:"not null;index"           json:"category"`
	IsAvailable bool      `gorm:"default:true"             json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

type Order struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerName string    `gorm:"not null"                 json:"customer_name"`
	Phone        string    `gorm:"not null"                 json:"phone"`
	DeliveryType string    `gorm:"not null"                 json:"delivery_type"`
	Address      string    `json:"address"`
	TotalPrice   int       `gorm:"not null"                 json:"total_price"`
	Status       string    `gorm:"not null;default:Pending" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderItem carries the price the shopper saw at submission time,
// not a live reference to the product row.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     uint   `gorm:"index;not null"           json:"order_id"`
	ProductID   uint   `gorm:"not null"                 json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `gorm:"not null"                 json:"quantity"`
	Price       int    `gorm:"not null"                 json:"price"`
}

// CartSession is the durable slot for one shopper's cart: the full item
// list serialized as a single JSON array under the session token.
type CartSession struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Token     string    `gorm:"uniqueIndex;not null"     json:"token"`
	Payload   string    `gorm:"not null"                 json:"payload"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Project struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Description string    `gorm:"not null"                 json:"description"`
	URL         string    `gorm:"not null"                 json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProjectComment struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID    uint      `gorm:"index;not null"           json:"project_id"`
	ParentID     *uint     `gorm:"index"                    json:"parent_id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Comment      string    `gorm:"not null"                 json:"comment"`
	IsAdminReply bool      `gorm:"default:false"            json:"is_admin_reply"`
	IsApproved   bool      `gorm:"default:false"            json:"is_approved"`
	CreatedAt    time.Time `json:"created_at"`
}

type Review struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"not null"                 json:"name"`
	Comment    string    `gorm:"not null"                 json:"comment"`
	IsApproved bool      `gorm:"default:false"            json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

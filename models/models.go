package models

import "time"

const (
	OrderPending = "pending"
	OrderPaid    = "paid"

	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"

	PaymentCompleted = "completed"
	PaymentPaid      = "paid"
)

type MenuItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Image       *string `json:"image"`
}

func (MenuItem) TableName() string { return "menu" }

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone"`
	Total         float64     `json:"total"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"-"`
}

// OrderItem keeps the menu price at the time the order was placed.
type OrderItem struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	OrderID  uint      `gorm:"index" json:"order_id"`
	MenuID   uint      `json:"menu_id"`
	Menu     *MenuItem `gorm:"foreignKey:MenuID" json:"-"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
}

// OrderLine is an order item joined with its menu name. Name is nil when
// the menu row no longer exists.
type OrderLine struct {
	ID       uint    `json:"id"`
	OrderID  uint    `json:"order_id"`
	MenuID   uint    `json:"menu_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Name     *string `json:"name"`
}

// OrderWithItems is the public order listing shape.
type OrderWithItems struct {
	Order
	Items []OrderLine `json:"items"`
}

type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	PartySize int       `json:"party_size"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Payment is a ledger entry. Exactly one of OrderID and ReservationID is
// expected to be set; nothing enforces it.
type Payment struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	OrderID       *uint        `gorm:"index" json:"order_id"`
	Order         *Order       `gorm:"foreignKey:OrderID" json:"-"`
	ReservationID *uint        `gorm:"index" json:"reservation_id"`
	Reservation   *Reservation `gorm:"foreignKey:ReservationID" json:"-"`
	Amount        float64      `json:"amount"`
	Method        string       `json:"method"`
	Status        string       `json:"status"`
	Details       string       `json:"details"`
	CreatedAt     time.Time    `json:"created_at"`
}

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func (Feedback) TableName() string { return "feedback" }

// All lists every persisted model in migration order.
func All() []any {
	return []any{&MenuItem{}, &Order{}, &OrderItem{}, &Reservation{}, &Payment{}, &Feedback{}}
}

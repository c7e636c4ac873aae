package models

import (
	"encoding/json"
	"time"
)

type OrderItemRequest struct {
	ID  uint `json:"id"`
	Qty int  `json:"qty"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type CreateOrderRequest struct {
	Items    []OrderItemRequest `json:"items"`
	Customer CustomerInfo       `json:"customer"`
	Total    float64            `json:"total"`
}

type CreateReservationRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"party_size"`
}

type CreateFeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Rating  *int   `json:"rating"`
	Comment string `json:"comment"`
}

const DefaultRating = 5

// RatingOrDefault returns the submitted rating, or DefaultRating when none
// was sent.
func (r CreateFeedbackRequest) RatingOrDefault() int {
	if r.Rating == nil {
		return DefaultRating
	}
	return *r.Rating
}

type CreatePaymentRequest struct {
	OrderID       *uint           `json:"orderId"`
	ReservationID *uint           `json:"reservationId"`
	Amount        float64         `json:"amount"`
	Method        string          `json:"method"`
	Details       json.RawMessage `json:"details"`
}

const DefaultPaymentMethod = "card"

// ToPayment builds the ledger row for the request. Zero ids count as absent
// and details are stored as JSON text, "{}" when none were sent.
func (r CreatePaymentRequest) ToPayment() Payment {
	p := Payment{
		OrderID:       nonZero(r.OrderID),
		ReservationID: nonZero(r.ReservationID),
		Amount:        r.Amount,
		Method:        r.Method,
		Status:        PaymentCompleted,
		Details:       "{}",
	}
	if p.Method == "" {
		p.Method = DefaultPaymentMethod
	}
	if len(r.Details) > 0 && string(r.Details) != "null" {
		p.Details = string(r.Details)
	}
	return p
}

func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	return id
}

// PaymentSummary is the admin view of the latest payment for a parent row.
type PaymentSummary struct {
	Paid           bool  `json:"paid"`
	PaymentRef     *uint `json:"payment_ref"`
	PaymentDetails any   `json:"payment_details"`
}

// Summarize derives the admin payment fields from p, which may be nil.
// Details that are not valid JSON are returned as the raw stored string.
func Summarize(p *Payment) PaymentSummary {
	if p == nil {
		return PaymentSummary{}
	}
	id := p.ID
	s := PaymentSummary{
		Paid:       p.Status == PaymentCompleted || p.Status == PaymentPaid,
		PaymentRef: &id,
	}
	switch {
	case p.Details == "":
		s.PaymentDetails = json.RawMessage("{}")
	case json.Valid([]byte(p.Details)):
		s.PaymentDetails = json.RawMessage(p.Details)
	default:
		s.PaymentDetails = p.Details
	}
	return s
}

type AdminOrder struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderLine `json:"items"`
	PaymentSummary
}

type AdminReservation struct {
	Reservation
	PaymentSummary
}

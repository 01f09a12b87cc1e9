package http

import (
	"time"

	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/domain/model/payment"
	"parcels/internal/core/domain/model/rider"
	"parcels/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// Request and response bodies of the API. Field names follow openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type PartialFailure struct {
	Code           int               `json:"code"`
	Message        string            `json:"message"`
	Saga           string            `json:"saga"`
	FailedStep     string            `json:"failedStep"`
	CompletedSteps []string          `json:"completedSteps"`
	Inconsistency  string            `json:"inconsistency"`
	Entities       map[string]string `json:"entities,omitempty"`
}

type RegisterUserResponse struct {
	Inserted bool `json:"inserted"`
}

type Role struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

type NewParcel struct {
	Title           string  `json:"title"`
	Kind            string  `json:"kind"`
	WeightKg        float64 `json:"weightKg"`
	SenderRegion    string  `json:"senderRegion"`
	ReceiverName    string  `json:"receiverName"`
	ReceiverRegion  string  `json:"receiverRegion"`
	ReceiverAddress string  `json:"receiverAddress"`
	Cost            int64   `json:"cost"`
}

type Parcel struct {
	ID              uuid.UUID `json:"id"`
	TrackingID      string    `json:"trackingId"`
	OwnerEmail      string    `json:"ownerEmail"`
	Title           string    `json:"title"`
	Kind            string    `json:"kind"`
	WeightKg        float64   `json:"weightKg"`
	SenderRegion    string    `json:"senderRegion"`
	ReceiverName    string    `json:"receiverName"`
	ReceiverRegion  string    `json:"receiverRegion"`
	ReceiverAddress string    `json:"receiverAddress"`
	Cost            int64     `json:"cost"`
	Status          string    `json:"status"`
	AssignedRider   *string   `json:"assignedRider"`
	PaymentStatus   string    `json:"paymentStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toParcel(p *parcel.Parcel) Parcel {
	details := p.Details()
	response := Parcel{
		ID:              p.ID().Bytes(),
		TrackingID:      p.TrackingID(),
		OwnerEmail:      p.Owner().String(),
		Title:           details.Title,
		Kind:            details.Kind,
		WeightKg:        details.WeightKg,
		SenderRegion:    details.SenderRegion,
		ReceiverName:    details.ReceiverName,
		ReceiverRegion:  details.ReceiverRegion,
		ReceiverAddress: details.ReceiverAddress,
		Cost:            p.Cost(),
		Status:          p.Status().String(),
		PaymentStatus:   p.PaymentStatus().String(),
		CreatedAt:       p.CreatedAt(),
	}
	if assigned := p.AssignedRider(); assigned != nil {
		email := assigned.String()
		response.AssignedRider = &email
	}
	return response
}

type RiderApplication struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Region  string `json:"region"`
	Vehicle string `json:"vehicle"`
}

type Rider struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	Region     string    `json:"region"`
	Vehicle    string    `json:"vehicle"`
	Status     string    `json:"status"`
	WorkStatus string    `json:"workStatus"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toRider(r *rider.Rider) Rider {
	profile := r.Profile()
	return Rider{
		ID:         r.ID().Bytes(),
		Email:      r.Email().String(),
		Name:       profile.Name,
		Phone:      profile.Phone,
		Region:     profile.Region,
		Vehicle:    profile.Vehicle,
		Status:     r.Status().String(),
		WorkStatus: r.WorkStatus().String(),
		CreatedAt:  r.CreatedAt(),
	}
}

type Created struct {
	InsertedID uuid.UUID `json:"insertedId"`
}

type ReviewRequest struct {
	Action string `json:"action"`
}

type ReviewResult struct {
	Success      bool      `json:"success"`
	RiderID      uuid.UUID `json:"riderId"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	RolePromoted bool      `json:"rolePromoted"`
}

type AssignRequest struct {
	RiderID uuid.UUID `json:"riderId"`
}

type AssignResult struct {
	Success    bool      `json:"success"`
	ParcelID   uuid.UUID `json:"parcelId"`
	RiderID    uuid.UUID `json:"riderId"`
	RiderEmail string    `json:"riderEmail"`
}

type DeliverResult struct {
	Success    bool      `json:"success"`
	ParcelID   uuid.UUID `json:"parcelId"`
	RiderID    uuid.UUID `json:"riderId"`
	RiderEmail string    `json:"riderEmail"`
}

type NewPayment struct {
	ParcelID      uuid.UUID `json:"parcelId"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	TransactionID string    `json:"transactionId"`
}

type Payment struct {
	ID            uuid.UUID `json:"id"`
	ParcelID      uuid.UUID `json:"parcelId"`
	Email         string    `json:"email"`
	Amount        int64     `json:"amount"`
	PaymentMethod string    `json:"paymentMethod"`
	TransactionID string    `json:"transactionId"`
	PaidAt        time.Time `json:"paidAt"`
}

func toPayment(p *payment.Payment) Payment {
	return Payment{
		ID:            p.ID().Bytes(),
		ParcelID:      p.ParcelID().Bytes(),
		Email:         p.Payer().String(),
		Amount:        p.Amount(),
		PaymentMethod: p.Method(),
		TransactionID: p.TransactionID(),
		PaidAt:        p.PaidAt(),
	}
}

type PaymentIntentRequest struct {
	AmountInCents int64 `json:"amountInCents"`
}

type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

type NewTrackingEntry struct {
	TrackingID string     `json:"trackingId"`
	ParcelID   *uuid.UUID `json:"parcelId,omitempty"`
	Status     string     `json:"status"`
	Message    string     `json:"message"`
}

type TrackingEntry struct {
	ID         uuid.UUID  `json:"id"`
	TrackingID string     `json:"trackingId"`
	ParcelID   *uuid.UUID `json:"parcelId"`
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	Time       time.Time  `json:"time"`
	UpdatedBy  string     `json:"updatedBy"`
}

func toTrackingEntry(e *tracking.Entry) TrackingEntry {
	response := TrackingEntry{
		ID:         e.ID().Bytes(),
		TrackingID: e.TrackingID(),
		Status:     e.Status(),
		Message:    e.Message(),
		Time:       e.Time(),
		UpdatedBy:  e.UpdatedBy(),
	}
	if parcelID := e.ParcelID(); parcelID != nil {
		id := parcelID.Bytes()
		response.ParcelID = &id
	}
	return response
}

package handler

import (
	"time"

	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/google/uuid"
)

// CreateDonationRequest represents the request body for a new donation.
// Money donations send amount; every other type sends quantity, unit and
// delivery_date.
type CreateDonationRequest struct {
	NGOID         string   `json:"ngo_id" binding:"required,uuid"`
	DonationType  string   `json:"donation_type" binding:"omitempty,oneof=money food daily_essentials essentials services"`
	Amount        *float64 `json:"amount" binding:"omitempty,gt=0"`
	Currency      string   `json:"currency" binding:"omitempty,len=3"`
	PaymentMethod string   `json:"payment_method" binding:"max=50"`
	TransactionID string   `json:"transaction_id" binding:"max=100"`
	Quantity      *float64 `json:"quantity" binding:"omitempty,gt=0"`
	Unit          string   `json:"unit" binding:"max=50"`
	EssentialType string   `json:"essential_type" binding:"max=100"`
	Message       string   `json:"message" binding:"max=1000"`
	Anonymous     bool     `json:"is_anonymous"`
	DeliveryDate  string   `json:"delivery_date"`
	Status        string   `json:"status" binding:"omitempty,oneof=pending confirmed completed failed cancelled"`
}

// ToInput converts the request to the domain input
func (r CreateDonationRequest) ToInput() (donation.NewDonationInput, error) {
	deliveryDate, err := parseDate("delivery_date", r.DeliveryDate)
	if err != nil {
		return donation.NewDonationInput{}, err
	}
	return donation.NewDonationInput{
		NGOID:         uuid.MustParse(r.NGOID),
		Type:          donation.Type(r.DonationType),
		Amount:        r.Amount,
		Currency:      r.Currency,
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		Quantity:      r.Quantity,
		Unit:          r.Unit,
		EssentialType: r.EssentialType,
		Message:       r.Message,
		Anonymous:     r.Anonymous,
		DeliveryDate:  deliveryDate,
		Status:        donation.Status(r.Status),
	}, nil
}

// UpdateDonationStatusRequest represents the request body for a status change
type UpdateDonationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RequestAgainRequest optionally carries the new delivery date
type RequestAgainRequest struct {
	NewDeliveryDate string `json:"new_delivery_date"`
}

// DonationResponse is the public view of a donation. donor_name already
// honours the anonymous flag.
type DonationResponse struct {
	ID            uuid.UUID  `json:"id"`
	DonorID       uuid.UUID  `json:"donor_id"`
	NGOID         uuid.UUID  `json:"ngo_id"`
	DonorName     string     `json:"donor_name"`
	NGOName       string     `json:"ngo_name"`
	DonationType  string     `json:"donation_type"`
	Amount        *float64   `json:"amount,omitempty"`
	Currency      string     `json:"currency,omitempty"`
	PaymentMethod string     `json:"payment_method,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
	Quantity      *float64   `json:"quantity,omitempty"`
	Unit          string     `json:"unit,omitempty"`
	EssentialType string     `json:"essential_type,omitempty"`
	Message       string     `json:"message,omitempty"`
	Anonymous     bool       `json:"is_anonymous"`
	DeliveryDate  *time.Time `json:"delivery_date,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ToDonationResponse converts a donation to its public view
func ToDonationResponse(d *donation.Donation) DonationResponse {
	return DonationResponse{
		ID:            d.ID,
		DonorID:       d.DonorID,
		NGOID:         d.NGOID,
		DonorName:     d.PublicDonorName(),
		NGOName:       d.NGOName,
		DonationType:  string(d.Type),
		Amount:        d.Amount,
		Currency:      d.Currency,
		PaymentMethod: d.PaymentMethod,
		TransactionID: d.TransactionID,
		Quantity:      d.Quantity,
		Unit:          d.Unit,
		EssentialType: d.EssentialType,
		Message:       d.Message,
		Anonymous:     d.Anonymous,
		DeliveryDate:  d.DeliveryDate,
		Status:        string(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDonationResponses converts a list of donations
func ToDonationResponses(items []*donation.Donation) []DonationResponse {
	out := make([]DonationResponse, 0, len(items))
	for _, d := range items {
		out = append(out, ToDonationResponse(d))
	}
	return out
}

// DonationEnvelope wraps a single donation
type DonationEnvelope struct {
	Donation DonationResponse `json:"donation"`
}

// DonationListEnvelope wraps a donation list
type DonationListEnvelope struct {
	Donations []DonationResponse `json:"donations"`
}

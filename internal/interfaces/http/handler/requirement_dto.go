package handler

import (
	"time"

	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/google/uuid"
)

// RequirementRequest is shared by create and update. Absent fields are left
// untouched on update.
type RequirementRequest struct {
	Title        *string  `json:"title" binding:"omitempty,max=200"`
	Description  *string  `json:"description" binding:"omitempty,max=5000"`
	Category     *string  `json:"category" binding:"omitempty,max=100"`
	RequestType  *string  `json:"request_type" binding:"omitempty,max=50"`
	AmountNeeded *float64 `json:"amount_needed" binding:"omitempty,gte=0"`
	Currency     *string  `json:"currency" binding:"omitempty,len=3"`
	Priority     *string  `json:"priority" binding:"omitempty,oneof=urgent high medium low"`
	Status       *string  `json:"status" binding:"omitempty,oneof=active fulfilled cancelled partially_fulfilled"`
	Deadline     *string  `json:"deadline"`
	Quantity     *float64 `json:"quantity" binding:"omitempty,gte=0"`
	Unit         *string  `json:"unit" binding:"omitempty,max=50"`
}

// ToFields converts the request to a domain patch
func (r RequirementRequest) ToFields() (requirement.Fields, error) {
	f := requirement.Fields{
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		RequestType:  r.RequestType,
		AmountNeeded: r.AmountNeeded,
		Currency:     r.Currency,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
	}
	if r.Priority != nil {
		p := requirement.Priority(*r.Priority)
		f.Priority = &p
	}
	if r.Status != nil {
		s := requirement.Status(*r.Status)
		f.Status = &s
	}
	if r.Deadline != nil {
		deadline, err := parseDate("deadline", *r.Deadline)
		if err != nil {
			return requirement.Fields{}, err
		}
		f.Deadline = deadline
	}
	return f, nil
}

// RequirementResponse is the public view of a requirement
type RequirementResponse struct {
	ID           uuid.UUID  `json:"id"`
	NGOID        uuid.UUID  `json:"ngo_id"`
	NGOName      string     `json:"ngo_name"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Category     string     `json:"category,omitempty"`
	RequestType  string     `json:"request_type,omitempty"`
	AmountNeeded *float64   `json:"amount_needed,omitempty"`
	Currency     string     `json:"currency,omitempty"`
	Priority     string     `json:"priority"`
	Status       string     `json:"status"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Quantity     *float64   `json:"quantity,omitempty"`
	Unit         string     `json:"unit,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ToRequirementResponse converts a requirement to its public view
func ToRequirementResponse(r *requirement.Requirement) RequirementResponse {
	return RequirementResponse{
		ID:           r.ID,
		NGOID:        r.NGOID,
		NGOName:      r.NGOName,
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		RequestType:  r.RequestType,
		AmountNeeded: r.AmountNeeded,
		Currency:     r.Currency,
		Priority:     string(r.Priority),
		Status:       string(r.Status),
		Deadline:     r.Deadline,
		Quantity:     r.Quantity,
		Unit:         r.Unit,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToRequirementResponses converts a list of requirements
func ToRequirementResponses(items []*requirement.Requirement) []RequirementResponse {
	out := make([]RequirementResponse, 0, len(items))
	for _, r := range items {
		out = append(out, ToRequirementResponse(r))
	}
	return out
}

// RequirementEnvelope wraps a single requirement
type RequirementEnvelope struct {
	Requirement RequirementResponse `json:"requirement"`
}

// RequirementListEnvelope wraps a requirement list
type RequirementListEnvelope struct {
	Requirements []RequirementResponse `json:"requirements"`
}

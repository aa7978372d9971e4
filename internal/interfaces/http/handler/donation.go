package handler

import (
	donationapp "github.com/donorlink/backend/internal/application/donation"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/gin-gonic/gin"
)

// DonationHandler handles donation HTTP requests
type DonationHandler struct {
	BaseHandler
	donationService *donationapp.Service
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(donationService *donationapp.Service) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

// Create godoc
// @Summary      Create a donation to an NGO
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateDonationRequest true "Donation"
// @Success      201 {object} DonationEnvelope
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /donations [post]
func (h *DonationHandler) Create(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}

	var req CreateDonationRequest
	if !h.BindJSON(c, &req) {
		return
	}
	input, err := req.ToInput()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	d, err := h.donationService.Create(c.Request.Context(), actor, input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, DonationEnvelope{Donation: ToDonationResponse(d)})
}

// ListCompleted godoc
// @Summary      Public feed of completed donations
// @Tags         donations
// @Produce      json
// @Success      200 {object} DonationListEnvelope
// @Router       /donations [get]
func (h *DonationHandler) ListCompleted(c *gin.Context) {
	items, err := h.donationService.ListCompleted(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DonationListEnvelope{Donations: ToDonationResponses(items)})
}

// ListByDonor godoc
// @Summary      List the caller's own donations
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        donorId path string true "Donor ID"
// @Success      200 {object} DonationListEnvelope
// @Failure      403 {object} dto.ErrorResponse
// @Router       /donations/donor/{donorId} [get]
func (h *DonationHandler) ListByDonor(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	donorID, ok := h.ParamUUID(c, "donorId", "donor")
	if !ok {
		return
	}

	items, err := h.donationService.ListByDonor(c.Request.Context(), donorID, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DonationListEnvelope{Donations: ToDonationResponses(items)})
}

// ListByNGO godoc
// @Summary      List donations received by an NGO
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        ngoId path string true "NGO ID"
// @Success      200 {object} DonationListEnvelope
// @Router       /donations/ngo/{ngoId} [get]
func (h *DonationHandler) ListByNGO(c *gin.Context) {
	ngoID, ok := h.ParamUUID(c, "ngoId", "NGO")
	if !ok {
		return
	}

	items, err := h.donationService.ListByNGO(c.Request.Context(), ngoID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DonationListEnvelope{Donations: ToDonationResponses(items)})
}

// Get godoc
// @Summary      Get a donation
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Donation ID"
// @Success      200 {object} DonationEnvelope
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /donations/{id} [get]
func (h *DonationHandler) Get(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id", "donation")
	if !ok {
		return
	}

	d, err := h.donationService.Get(c.Request.Context(), id, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DonationEnvelope{Donation: ToDonationResponse(d)})
}

// UpdateStatus godoc
// @Summary      Change a donation's status
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Donation ID"
// @Param        request body UpdateDonationStatusRequest true "New status"
// @Success      200 {object} DonationEnvelope
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /donations/{id}/status [put]
func (h *DonationHandler) UpdateStatus(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id", "donation")
	if !ok {
		return
	}

	var req UpdateDonationStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	d, err := h.donationService.UpdateStatus(c.Request.Context(), id, donation.Status(req.Status), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DonationEnvelope{Donation: ToDonationResponse(d)})
}

// RequestAgain godoc
// @Summary      Reschedule a lapsed delivery
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Donation ID"
// @Param        request body RequestAgainRequest false "Optional new delivery date"
// @Success      200 {object} DonationEnvelope
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Router       /donations/{id}/request-again [post]
func (h *DonationHandler) RequestAgain(c *gin.Context) {
	actor, ok := h.CurrentUserID(c)
	if !ok {
		return
	}
	id, ok := h.ParamUUID(c, "id", "donation")
	if !ok {
		return
	}

	var req RequestAgainRequest
	if !h.BindOptionalJSON(c, &req) {
		return
	}
	newDate, err := parseDate("new_delivery_date", req.NewDeliveryDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	d, err := h.donationService.RequestAgain(c.Request.Context(), id, actor, newDate)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, DonationEnvelope{Donation: ToDonationResponse(d)})
}

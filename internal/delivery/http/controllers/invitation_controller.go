package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	h "guestportal/internal/delivery/http/helpers"
	"guestportal/internal/domain"
)

// CreateInvitationRequest is the request body for POST /api/invitations
type CreateInvitationRequest struct {
	GuestName   string `json:"guestName"`
	GuestEmail  string `json:"guestEmail"`
	CollegeName string `json:"collegeName"`
	EventTitle  string `json:"eventTitle"`
	Subject     string `json:"subject"`
	StaffNumber string `json:"staffNumber"`
	StaffEmail  string `json:"staffEmail"`
}

func (c CreateInvitationRequest) invitation() *domain.Invitation {
	return &domain.Invitation{
		GuestName:   c.GuestName,
		GuestEmail:  c.GuestEmail,
		CollegeName: c.CollegeName,
		EventTitle:  c.EventTitle,
		Subject:     c.Subject,
		StaffNumber: c.StaffNumber,
		StaffEmail:  c.StaffEmail,
	}
}

// Validate implements helpers.Validator.
func (c CreateInvitationRequest) Validate() []domain.FieldViolation {
	return c.invitation().Validate()
}

// UpdateInvitationRequest is the request body for PUT /api/invitations/{id}.
// Absent fields are left unchanged.
type UpdateInvitationRequest struct {
	GuestName   *string `json:"guestName"`
	GuestEmail  *string `json:"guestEmail"`
	CollegeName *string `json:"collegeName"`
	EventTitle  *string `json:"eventTitle"`
	Subject     *string `json:"subject"`
	StaffNumber *string `json:"staffNumber"`
	StaffEmail  *string `json:"staffEmail"`
	Status      *string `json:"status"`
}

func (u UpdateInvitationRequest) update() domain.InvitationUpdate {
	upd := domain.InvitationUpdate{
		GuestName:   u.GuestName,
		GuestEmail:  u.GuestEmail,
		CollegeName: u.CollegeName,
		EventTitle:  u.EventTitle,
		Subject:     u.Subject,
		StaffNumber: u.StaffNumber,
		StaffEmail:  u.StaffEmail,
	}
	if u.Status != nil {
		status := domain.InvitationStatus(*u.Status)
		upd.Status = &status
	}
	return upd
}

// Validate implements helpers.Validator.
func (u UpdateInvitationRequest) Validate() []domain.FieldViolation {
	return u.update().Validate()
}

type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{
		Logger:  logger,
		Service: svc,
	}
}

// pathID parses the {id} path segment. Writes a 400 and returns false when
// the segment is not a positive integer.
func (c *InvitationController) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.WriteError(w, http.StatusBadRequest, "Invalid invitation id")
		return 0, false
	}
	return id, true
}

func (c *InvitationController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *domain.ValidationError
	switch {
	case errors.As(err, &valErr):
		h.WriteValidationError(w, valErr.Violations)
	case errors.Is(err, domain.ErrNotFound):
		h.WriteError(w, http.StatusNotFound, "Invitation not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		h.WriteError(w, http.StatusConflict, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// Create godoc
// @Summary Create an invitation
// @Description Create a guest invitation. New invitations always start in status "pending"; all field violations are reported together.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInvitationRequest true "Invitation data"
// @Success 201 {object} helpers.DataResponse "data contains the created invitation"
// @Failure 400 {object} helpers.ErrorResponse "errors lists every field violation"
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations [post]
func (c *InvitationController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateInvitationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	inv := req.invitation()
	if err := c.Service.Create(r.Context(), inv); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteData(w, http.StatusCreated, inv)
}

// List godoc
// @Summary List invitations
// @Description List invitations, newest filter first. Optional status filter and page/pageSize pagination; without paging parameters the full list is returned.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(pending, sent, accepted, declined)
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size (max 100)"
// @Success 200 {object} helpers.DataResponse "data contains the invitation list"
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations [get]
func (c *InvitationController) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.InvitationFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.InvitationStatus(raw)
		if !status.Valid() {
			h.WriteError(w, http.StatusBadRequest, "Status must be one of pending, sent, accepted, declined")
			return
		}
		filter.Status = &status
	}

	params, paged := h.ParsePagination(r)
	if paged {
		filter.Limit = params.PageSize
		filter.Offset = (params.Page - 1) * params.PageSize
	}

	invitations, total, err := c.Service.List(r.Context(), filter)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	if paged {
		h.WritePagedData(w, http.StatusOK, invitations, h.NewPaginationMeta(params, total))
		return
	}
	h.WriteData(w, http.StatusOK, invitations)
}

// GetByID godoc
// @Summary Get an invitation
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} helpers.DataResponse "data contains the invitation"
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations/{id} [get]
func (c *InvitationController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	inv, err := c.Service.GetByID(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteData(w, http.StatusOK, inv)
}

// Update godoc
// @Summary Update an invitation
// @Description Partially update an invitation. Status changes must follow pending to sent or declined, and sent to accepted or declined; setting the current status again is a no-op.
// @Tags invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Param body body UpdateInvitationRequest true "Fields to update"
// @Success 200 {object} helpers.DataResponse "data contains the updated invitation"
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse "invalid status transition"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations/{id} [put]
func (c *InvitationController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	var req UpdateInvitationRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	inv, err := c.Service.Update(r.Context(), id, req.update())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteData(w, http.StatusOK, inv)
}

// Delete godoc
// @Summary Delete an invitation
// @Description Soft-delete an invitation. The record is retained but disappears from all reads.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} helpers.MessageResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations/{id} [delete]
func (c *InvitationController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteMessage(w, http.StatusOK, "Invitation deleted successfully")
}

// Send godoc
// @Summary Send an invitation email
// @Description Email the guest their invitation and move the invitation from pending to sent. Only pending invitations can be sent; a delivery failure leaves the invitation pending.
// @Tags invitations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invitation ID"
// @Success 200 {object} helpers.DataResponse "data contains the sent invitation"
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse
// @Failure 404 {object} helpers.ErrorResponse
// @Failure 409 {object} helpers.ErrorResponse "invitation is not pending"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /invitations/{id}/send [post]
func (c *InvitationController) Send(w http.ResponseWriter, r *http.Request) {
	id, ok := c.pathID(w, r)
	if !ok {
		return
	}
	inv, err := c.Service.Send(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	h.WriteData(w, http.StatusOK, inv)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/parcel-service/internal/core/domain"
	"github.com/99minutos/parcel-service/internal/core/ports"
)

// ParcelHandler handles HTTP requests for parcel operations. Errors are
// returned to Echo and rendered by the central error handler.
type ParcelHandler struct {
	service ports.ParcelService
}

func NewParcelHandler(service ports.ParcelService) *ParcelHandler {
	return &ParcelHandler{service: service}
}

// Create handles POST /v1/parcels.
//
// @Summary      Book a parcel
// @Description  Prices the parcel, assigns a tracking number and stores it as PENDING.
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Param        body  body      parcelRequest  true  "Parcel details"
// @Success      201   {object}  parcelResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/parcels [post]
func (h *ParcelHandler) Create(c echo.Context) error {
	in, err := bindParcel(c)
	if err != nil {
		return err
	}

	p, err := h.service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toParcelResponse(p))
}

// List handles GET /v1/parcels.
//
// @Summary      List all parcels
// @Tags         parcels
// @Produce      json
// @Success      200  {array}   parcelResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/parcels [get]
func (h *ParcelHandler) List(c echo.Context) error {
	parcels, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponses(parcels))
}

// Get handles GET /v1/parcels/:id.
//
// @Summary      Get a parcel by id
// @Tags         parcels
// @Produce      json
// @Param        id   path      string  true  "Parcel id"
// @Success      200  {object}  parcelResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/parcels/{id} [get]
func (h *ParcelHandler) Get(c echo.Context) error {
	p, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponse(p))
}

// Track handles GET /v1/parcels/track/:tracking_number.
//
// @Summary      Track a parcel
// @Tags         parcels
// @Produce      json
// @Param        tracking_number  path      string  true  "Tracking number (e.g. TRK1A2B3C4D)"
// @Success      200              {object}  parcelResponse
// @Failure      404              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /v1/parcels/track/{tracking_number} [get]
func (h *ParcelHandler) Track(c echo.Context) error {
	p, err := h.service.GetByTrackingNumber(c.Request().Context(), c.Param("tracking_number"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponse(p))
}

// ListBySender handles GET /v1/parcels/sender/:email.
//
// @Summary      List parcels sent by an email address
// @Tags         parcels
// @Produce      json
// @Param        email  path      string  true  "Sender email"
// @Success      200    {array}   parcelResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /v1/parcels/sender/{email} [get]
func (h *ParcelHandler) ListBySender(c echo.Context) error {
	parcels, err := h.service.ListBySenderEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponses(parcels))
}

// ListByRecipient handles GET /v1/parcels/recipient/:email.
//
// @Summary      List parcels addressed to an email address
// @Tags         parcels
// @Produce      json
// @Param        email  path      string  true  "Recipient email"
// @Success      200    {array}   parcelResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /v1/parcels/recipient/{email} [get]
func (h *ParcelHandler) ListByRecipient(c echo.Context) error {
	parcels, err := h.service.ListByRecipientEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponses(parcels))
}

// ListByUser handles GET /v1/parcels/user/:email.
//
// @Summary      List parcels a user sent or receives
// @Tags         parcels
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {array}   parcelResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /v1/parcels/user/{email} [get]
func (h *ParcelHandler) ListByUser(c echo.Context) error {
	parcels, err := h.service.ListByUserEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponses(parcels))
}

// ListByStatus handles GET /v1/parcels/status/:status.
//
// @Summary      List parcels in a status
// @Tags         parcels
// @Produce      json
// @Param        status  path      string  true  "Status (case-insensitive)"  Enums(PENDING, CONFIRMED, PICKED_UP, IN_TRANSIT, OUT_FOR_DELIVERY, DELIVERED, CANCELLED, RETURNED)
// @Success      200     {array}   parcelResponse
// @Failure      422     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /v1/parcels/status/{status} [get]
func (h *ParcelHandler) ListByStatus(c echo.Context) error {
	status, err := domain.ParseStatus(c.Param("status"))
	if err != nil {
		return err
	}

	parcels, err := h.service.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponses(parcels))
}

// UpdateStatus handles PATCH /v1/parcels/:id/status.
//
// @Summary      Change a parcel's status
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Parcel id"
// @Param        body  body      statusRequest  true  "New status"
// @Success      200   {object}  parcelResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/parcels/{id}/status [patch]
func (h *ParcelHandler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		return err
	}

	p, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponse(p))
}

// Update handles PUT /v1/parcels/:id.
//
// @Summary      Replace a parcel's booking details
// @Description  Recomputes cost and ETA. Tracking number, status and creation time are kept.
// @Tags         parcels
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Parcel id"
// @Param        body  body      parcelRequest  true  "Parcel details"
// @Success      200   {object}  parcelResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /v1/parcels/{id} [put]
func (h *ParcelHandler) Update(c echo.Context) error {
	in, err := bindParcel(c)
	if err != nil {
		return err
	}

	p, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toParcelResponse(p))
}

// Delete handles DELETE /v1/parcels/:id.
//
// @Summary      Delete a parcel
// @Tags         parcels
// @Produce      json
// @Param        id   path      string  true  "Parcel id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/parcels/{id} [delete]
func (h *ParcelHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "parcel deleted"})
}

func bindParcel(c echo.Context) (ports.BookingInput, error) {
	var req parcelRequest
	if err := c.Bind(&req); err != nil {
		return ports.BookingInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.BookingInput{}, err
	}
	return toBookingInput(req), nil
}

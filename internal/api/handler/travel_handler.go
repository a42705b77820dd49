package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/traveldesk/travel-requests/internal/core/domain"
	"github.com/traveldesk/travel-requests/internal/core/ports"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TravelHandler handles HTTP requests for travel request operations.
type TravelHandler struct {
	service ports.TravelService
	export  ports.ExportService
}

func NewTravelHandler(service ports.TravelService, export ports.ExportService) *TravelHandler {
	return &TravelHandler{service: service, export: export}
}

// pathID parses the {id} segment. Anything unparsable cannot exist.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrTravelRequestNotFound
	}
	return id, nil
}

// List returns the travel requests visible to the caller.
//
// @Summary      List travel requests
// @Description  Staff see every request; other users only their own.
// @Tags         travel-requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   travelRequestResponse
// @Failure      401  {object}  map[string]string
// @Router       /travel-requests/ [get]
func (h *TravelHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	list, err := h.service.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTravelResponses(list))
}

// Create submits a new travel request owned by the caller.
//
// @Summary      Create a travel request
// @Tags         travel-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTravelRequestRequest  true  "Travel request"
// @Success      201   {object}  travelRequestResponse
// @Failure      400   {object}  map[string][]string
// @Failure      401   {object}  map[string]string
// @Router       /travel-requests/ [post]
func (h *TravelHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTravelRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := toCreateInput(req)
	if err != nil {
		return err
	}

	tr, err := h.service.Create(c.Request().Context(), actor, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toTravelResponse(tr))
}

// Get returns one travel request.
//
// @Summary      Get a travel request
// @Tags         travel-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Travel request ID"
// @Success      200  {object}  travelRequestResponse
// @Failure      404  {object}  map[string]string
// @Router       /travel-requests/{id}/ [get]
func (h *TravelHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	tr, err := h.service.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTravelResponse(tr))
}

// Update merges the provided fields into a travel request. Staff only.
//
// @Summary      Update a travel request
// @Description  PUT and PATCH both apply a partial update.
// @Tags         travel-requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "Travel request ID"
// @Param        body  body      updateTravelRequestRequest  true  "Fields to change"
// @Success      200   {object}  travelRequestResponse
// @Failure      400   {object}  map[string][]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /travel-requests/{id}/ [put]
// @Router       /travel-requests/{id}/ [patch]
func (h *TravelHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	// refuse before looking at the payload or the record
	if !actor.IsStaff {
		return domain.ErrUpdateForbidden
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateTravelRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input, err := toUpdateInput(req)
	if err != nil {
		return err
	}

	tr, err := h.service.Update(c.Request().Context(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTravelResponse(tr))
}

// Delete removes a travel request.
//
// @Summary      Delete a travel request
// @Tags         travel-requests
// @Security     BearerAuth
// @Param        id   path  int  true  "Travel request ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /travel-requests/{id}/ [delete]
func (h *TravelHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// History returns the status audit trail of a travel request. Staff only.
//
// @Summary      Status history of a travel request
// @Tags         travel-requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Travel request ID"
// @Success      200  {array}   statusChangeResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /travel-requests/{id}/history/ [get]
func (h *TravelHandler) History(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	changes, err := h.service.History(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(changes))
}

// Export downloads every travel request as a spreadsheet. Staff only.
//
// @Summary      Export travel requests
// @Tags         travel-requests
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  map[string]string
// @Router       /travel-requests/export/ [get]
func (h *TravelHandler) Export(c echo.Context) error {
	buf, name, err := h.export.ExportTravelRequests(c.Request().Context())
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

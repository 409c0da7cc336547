package api

import (
	"net/http"
	"time"

	reqdto "fieldbook/internal/handler/dto/request"
	resdto "fieldbook/internal/handler/dto/response"
	"fieldbook/internal/handler/httperr"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FieldHandler struct {
	q queries.BookingQueries
}

func NewFieldHandler(q queries.BookingQueries) *FieldHandler {
	return &FieldHandler{q: q}
}

// @Summary Check availability
// @Description Check whether an interval is free on a field; conflicts come with alternative slots
// @Tags fields
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Field ID"
// @Param request body reqdto.AvailabilityRequest true "Interval to check"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fields/{id}/availability [post]
func (h *FieldHandler) CheckAvailability(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid field ID format", nil)
		return
	}

	var req reqdto.AvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.q.CheckAvailability(c.Request.Context(), fieldID, req.StartTime, req.EndTime)
	if err != nil {
		abortBookingError(c, err, "Availability check failed")
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}

// @Summary Field day schedule
// @Description List blocking bookings on a field for one calendar day
// @Tags fields
// @Produce json
// @Security BearerAuth
// @Param id path string true "Field ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {array} resdto.ScheduleEntryResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fields/{id}/schedule [get]
func (h *FieldHandler) Schedule(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid field ID format", nil)
		return
	}

	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date, expected YYYY-MM-DD", nil)
		return
	}

	entries, err := h.q.FieldSchedule(c.Request.Context(), fieldID, day)
	if err != nil {
		abortBookingError(c, err, "Failed to load schedule")
		return
	}

	c.JSON(http.StatusOK, resdto.FromScheduleEntries(entries))
}

// @Summary Field utilization
// @Description Booked hours versus available hours over a date range (manager only)
// @Tags fields
// @Produce json
// @Security BearerAuth
// @Param id path string true "Field ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end, inclusive (YYYY-MM-DD)"
// @Success 200 {object} resdto.UtilizationResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /fields/{id}/utilization [get]
func (h *FieldHandler) Utilization(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid field ID format", nil)
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from date, expected YYYY-MM-DD", nil)
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to date, expected YYYY-MM-DD", nil)
		return
	}
	if to.Before(from) {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("invalid range"), "Range end before range start", nil)
		return
	}

	// Inclusive end date: report through the end of the "to" day.
	result, err := h.q.FieldUtilization(c.Request.Context(), fieldID, from, to.AddDate(0, 0, 1))
	if err != nil {
		abortBookingError(c, err, "Failed to compute utilization")
		return
	}

	c.JSON(http.StatusOK, resdto.FromUtilizationResult(result))
}

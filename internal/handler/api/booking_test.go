//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"fieldbook/internal/domain/actor"
	"fieldbook/internal/domain/booking"
	"fieldbook/internal/handler/api"
	resdto "fieldbook/internal/handler/dto/response"
	"fieldbook/internal/pkg/errs"
	"fieldbook/internal/usecase/commands"
	"fieldbook/internal/usecase/queries"
	"fieldbook/tests/common/builder"
	"fieldbook/tests/common/httptest"
	commandsmock "fieldbook/tests/mock/commands"
	queriesmock "fieldbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actorID      uuid.UUID
	actorRole    actor.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.actorID = uuid.New()
	s.actorRole = actor.RoleMember

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("actor", actor.New(s.actorID, s.actorRole))
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.Create)
	s.router.GET("/bookings", authMiddleware, s.handler.ListMine)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.Get)
	s.router.PATCH("/bookings/:id", authMiddleware, s.handler.Reschedule)
	s.router.POST("/bookings/:id/confirm", authMiddleware, s.handler.Confirm)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.Cancel)
	s.router.POST("/bookings/:id/complete", authMiddleware, s.handler.Complete)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	s.Run("successful creation returns the priced booking", func() {
		b := builder.NewBookingBuilder().WithBookedBy(s.actorID)
		reqBody := b.BuildCreateRequestDTO()
		returnView := b.BuildView()

		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(returnView, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal(returnView.ID, resp.ID)
		s.Equal("pending", resp.Status)
		s.Equal("300.00", resp.TotalCost)
	})

	s.Run("unauthenticated request rejected", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("missing required fields rejected", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{
			"start_time": time.Now().Format(time.RFC3339),
		}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("conflict returns clashes and alternative slots", func() {
		b := builder.NewBookingBuilder()
		reqBody := b.BuildCreateRequestDTO()

		clash := queries.BookingSummary{
			ID:        uuid.New(),
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Status:    "confirmed",
		}
		alternative := queries.IntervalView{
			StartTime: b.EndTime,
			EndTime:   b.EndTime.Add(2 * time.Hour),
		}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &commands.ConflictError{
				Conflicts:   []queries.BookingSummary{clash},
				Suggestions: []queries.IntervalView{alternative},
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		s.Equal(http.StatusConflict, w.Code)

		var resp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
			Detail resdto.ConflictDetail `json:"detail"`
		}
		s.Require().NoError(httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		s.Require().Len(resp.Detail.Conflicts, 1)
		s.Equal(clash.ID, resp.Detail.Conflicts[0].ID)
		s.Require().Len(resp.Detail.Suggestions, 1)
		s.True(resp.Detail.Suggestions[0].StartTime.Equal(alternative.StartTime))
	})

	s.Run("invalid interval maps to bad request", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidInterval)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "End time must be after start time")
	})

	s.Run("interval error wrapped by the usecase still maps to bad request", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("end must be after start"), errs.ErrInvalidInterval))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "End time must be after start time")
	})

	s.Run("unknown field maps to not found", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrFieldNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Field not found")
	})

	s.Run("lock timeout maps to service unavailable", func() {
		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrLockTimeout)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusServiceUnavailable, "Field is busy")
	})
}

// ================================================================================
// TestGet / TestListMine
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	s.Run("found", func() {
		view := builder.NewBookingBuilder().BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+view.ID.String(), nil, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(view.ID, resp.ID)
	})

	s.Run("invalid id format", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("not found", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).Return(nil, errs.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestListMine() {
	s.Run("lists bookings for the authenticated actor", func() {
		item := builder.NewBookingBuilder().WithBookedBy(s.actorID).BuildListItem()
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actorID).
			Return([]*queries.BookingListItem{item}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		var resp []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Require().Len(resp, 1)
		s.Equal(item.ID, resp[0].ID)
	})

	s.Run("empty result is an empty array", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.actorID).
			Return([]*queries.BookingListItem{}, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		var resp []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp)
	})
}

// ================================================================================
// Lifecycle transitions
// ================================================================================

func (s *BookingHandlerTestSuite) TestConfirm() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/confirm"

	s.Run("confirmed", func() {
		view := builder.NewBookingBuilder().WithID(id).BuildView()
		view.Status = "confirmed"
		s.mockCommands.EXPECT().Transition(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("confirmed", resp.Status)
	})

	s.Run("permission denied", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrPermissionDenied)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("illegal transition", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrInvalidTransition)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Transition not allowed")
	})

	s.Run("transition error wrapped by the usecase keeps its status", func() {
		s.mockCommands.EXPECT().Transition(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(nil, errs.Mark(errs.New("no edge from completed"), errs.ErrInvalidTransition))

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnprocessableEntity, "Transition not allowed")
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/cancel"

	s.Run("cancelled", func() {
		view := builder.NewBookingBuilder().WithID(id).BuildView()
		view.Status = "cancelled"
		s.mockCommands.EXPECT().Transition(gomock.Any(), id, gomock.Any(), gomock.Any()).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("cancelled", resp.Status)
	})
}

func (s *BookingHandlerTestSuite) TestComplete() {
	id := uuid.New()
	url := "/bookings/" + id.String() + "/complete"

	s.Run("override flag is forwarded", func() {
		view := builder.NewBookingBuilder().WithID(id).BuildView()
		view.Status = "completed"
		s.mockCommands.EXPECT().
			Transition(gomock.Any(), id, commands.TransitionParams{Event: booking.EventComplete, Override: true}, gomock.Any()).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"override": true}, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("completed", resp.Status)
	})

	s.Run("body is optional", func() {
		view := builder.NewBookingBuilder().WithID(id).BuildView()
		view.Status = "completed"
		s.mockCommands.EXPECT().
			Transition(gomock.Any(), id, commands.TransitionParams{Event: booking.EventComplete}, gomock.Any()).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, nil)
	})
}

// ================================================================================
// TestReschedule
// ================================================================================

func (s *BookingHandlerTestSuite) TestReschedule() {
	id := uuid.New()
	url := "/bookings/" + id.String()
	start := time.Date(2026, 9, 14, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	body := map[string]any{
		"start_time": start.Format(time.RFC3339),
		"end_time":   end.Format(time.RFC3339),
	}

	s.Run("moved", func() {
		view := builder.NewBookingBuilder().WithID(id).WithInterval(start, end).BuildView()
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), id, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.True(resp.StartTime.Equal(start))
	})

	s.Run("missing interval rejected", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("new slot taken", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), id, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &commands.ConflictError{Conflicts: []queries.BookingSummary{{ID: uuid.New()}}})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, body, "token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "Requested interval is not available")
	})
}

package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ZygmuntJakub/bridge/internal/config"
	"github.com/ZygmuntJakub/bridge/internal/engine"
	"github.com/ZygmuntJakub/bridge/internal/store"
	"github.com/ZygmuntJakub/bridge/internal/table"
)

// HandStore reads archived hands.
type HandStore interface {
	ListHands(ctx context.Context, tableID uuid.UUID, limit int) ([]store.HandRecord, error)
	GetHand(ctx context.Context, id uuid.UUID) (store.HandRecord, error)
}

type Handler struct {
	Tables  *table.Registry
	Config  *config.Config // defaults for new tables
	Archive table.Archive  // nil disables archiving
	Hands   HandStore      // nil disables /hands
	Logger  *zap.Logger
}

// Register mounts every route on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	e.POST("/tables", h.CreateTable)
	e.GET("/tables", h.ListTables)
	e.GET("/tables/:id", h.GetTable)
	e.DELETE("/tables/:id", h.DeleteTable)
	e.POST("/tables/:id/hands", h.StartHand)
	e.GET("/tables/:id/seats/:seat/hand", h.GetHand)
	e.GET("/tables/:id/seats/:seat/calls", h.LegalCalls)
	e.POST("/tables/:id/calls", h.PlaceCall)
	e.GET("/tables/:id/auction", h.GetAuction)
	e.GET("/tables/:id/seats/:seat/cards", h.LegalCards)
	e.POST("/tables/:id/plays", h.PlayCard)
	e.GET("/tables/:id/trick", h.GetTrick)
	e.GET("/tables/:id/tally", h.GetTally)

	e.GET("/hands", h.ListHands)
	e.GET("/hands/:id", h.GetArchivedHand)
}

func (h *Handler) table(c echo.Context) (*table.Table, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
	}
	t, err := h.Tables.Get(id)
	if err != nil {
		return nil, httpError(err)
	}
	return t, nil
}

func seatParam(c echo.Context) (engine.Seat, error) {
	seat, err := engine.ParseSeat(c.Param("seat"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
	}
	return seat, nil
}

func errorBody(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

// httpError maps engine and table errors to status codes: unknown ids are
// 404, malformed input 400, moves the game state does not allow 409.
func httpError(err error) error {
	var phase engine.PhaseError
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, table.ErrTableNotFound), errors.Is(err, store.ErrHandNotFound):
		code = http.StatusNotFound
	case errors.Is(err, engine.ErrInvalidBidText),
		errors.Is(err, engine.ErrInvalidCardText),
		errors.Is(err, engine.ErrInvalidDeal):
		code = http.StatusBadRequest
	case errors.Is(err, engine.ErrIllegalCall),
		errors.Is(err, engine.ErrOutOfTurn),
		errors.Is(err, engine.ErrCardNotHeld),
		errors.Is(err, engine.ErrSuitFollowViolation),
		errors.Is(err, table.ErrSeatNotRemote),
		errors.Is(err, table.ErrHandInProgress),
		errors.As(err, &phase):
		code = http.StatusConflict
	}
	return echo.NewHTTPError(code, errorBody(err)).SetInternal(err)
}

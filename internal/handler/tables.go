package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ZygmuntJakub/bridge/internal/config"
	"github.com/ZygmuntJakub/bridge/internal/engine"
	"github.com/ZygmuntJakub/bridge/internal/store"
	"github.com/ZygmuntJakub/bridge/internal/table"
)

type createTableRequest struct {
	Seats        []config.SeatConfig `json:"seats"`
	Dealer       string              `json:"dealer"`
	RotateDealer *bool               `json:"rotate_dealer"`
	Seed         int64               `json:"seed"`
}

func (h *Handler) CreateTable(c echo.Context) error {
	var req createTableRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	cfg := *config.Default()
	if h.Config != nil {
		cfg = *h.Config
	}
	if len(req.Seats) > 0 {
		cfg.Seats = req.Seats
	}
	if req.Dealer != "" {
		cfg.Dealer = req.Dealer
	}
	if req.RotateDealer != nil {
		cfg.RotateDealer = *req.RotateDealer
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	if err := cfg.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
	}
	t, err := table.New(table.Options{
		Params:  cfg.GameParams(),
		Bots:    cfg.Bots(),
		Seed:    cfg.Seed,
		Logger:  h.Logger,
		Archive: h.Archive,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
	}
	h.Tables.Add(t)
	return c.JSON(http.StatusCreated, t.Snapshot())
}

func (h *Handler) ListTables(c echo.Context) error {
	tables := h.Tables.List()
	out := make([]table.Snapshot, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.Snapshot())
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTable(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t.Snapshot())
}

func (h *Handler) DeleteTable(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	h.Tables.Remove(t.ID)
	return c.NoContent(http.StatusNoContent)
}

// startHandRequest optionally carries a predetermined deal keyed by seat.
type startHandRequest struct {
	Hands map[string][]string `json:"hands"`
}

func (h *Handler) StartHand(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	var req startHandRequest
	if c.Request().ContentLength != 0 {
		if err := c.Bind(&req); err != nil {
			return err
		}
	}
	ctx := c.Request().Context()
	if len(req.Hands) == 0 {
		err = t.StartHand(ctx)
	} else {
		var hands [engine.NumSeats][]engine.Card
		hands, err = parseDeal(req.Hands)
		if err == nil {
			err = t.StartDealtHand(ctx, hands)
		}
	}
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, t.Snapshot())
}

func parseDeal(in map[string][]string) ([engine.NumSeats][]engine.Card, error) {
	var hands [engine.NumSeats][]engine.Card
	for name, cards := range in {
		seat, err := engine.ParseSeat(name)
		if err != nil {
			return hands, echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
		}
		for _, text := range cards {
			card, err := engine.ParseCard(text)
			if err != nil {
				return hands, err
			}
			hands[seat] = append(hands[seat], card)
		}
	}
	return hands, nil
}

type seatCards struct {
	Seat  engine.Seat   `json:"seat"`
	Cards []engine.Card `json:"cards"`
}

func (h *Handler) GetHand(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	seat, err := seatParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seatCards{Seat: seat, Cards: nonNil(t.Hand(seat))})
}

func (h *Handler) LegalCards(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	seat, err := seatParam(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seatCards{Seat: seat, Cards: nonNil(t.LegalCards(seat))})
}

func (h *Handler) LegalCalls(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	seat, err := seatParam(c)
	if err != nil {
		return err
	}
	calls := t.LegalCalls(seat)
	if calls == nil {
		calls = []engine.Bid{}
	}
	return c.JSON(http.StatusOK, map[string]any{"seat": seat, "calls": calls})
}

func nonNil(cards []engine.Card) []engine.Card {
	if cards == nil {
		return []engine.Card{}
	}
	return cards
}

type callRequest struct {
	Seat string `json:"seat"`
	Bid  string `json:"bid"`
}

func (h *Handler) PlaceCall(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	var req callRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	seat, err := engine.ParseSeat(req.Seat)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
	}
	bid, err := engine.ParseBid(req.Bid)
	if err != nil {
		return httpError(err)
	}
	if err := t.PlaceCall(c.Request().Context(), seat, bid); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, t.Snapshot())
}

type playRequest struct {
	Seat string `json:"seat"`
	Card string `json:"card"`
}

func (h *Handler) PlayCard(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	var req playRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	seat, err := engine.ParseSeat(req.Seat)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
	}
	card, err := engine.ParseCard(req.Card)
	if err != nil {
		return httpError(err)
	}
	if err := t.PlayCard(c.Request().Context(), seat, card); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, t.Snapshot())
}

func (h *Handler) GetAuction(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	v, ok := t.Auction()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, errorBody(engine.ErrNotAuctionPhase))
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) GetTrick(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	v, ok := t.Trick()
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, errorBody(engine.ErrNotPlayPhase))
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) GetTally(c echo.Context) error {
	t, err := h.table(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t.Tally())
}

func (h *Handler) ListHands(c echo.Context) error {
	if h.Hands == nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "hand archive disabled"})
	}
	var tableID uuid.UUID
	if v := c.QueryParam("table"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
		}
		tableID = id
	}
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
		}
		limit = n
	}
	hands, err := h.Hands.ListHands(c.Request().Context(), tableID, limit)
	if err != nil {
		return httpError(err)
	}
	if hands == nil {
		hands = []store.HandRecord{}
	}
	return c.JSON(http.StatusOK, hands)
}

func (h *Handler) GetArchivedHand(c echo.Context) error {
	if h.Hands == nil {
		return echo.NewHTTPError(http.StatusNotFound, map[string]string{"error": "hand archive disabled"})
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errorBody(err))
	}
	rec, err := h.Hands.GetHand(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rec)
}

package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ZygmuntJakub/bridge/internal/config"
	"github.com/ZygmuntJakub/bridge/internal/engine"
	"github.com/ZygmuntJakub/bridge/internal/store"
	"github.com/ZygmuntJakub/bridge/internal/table"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "hands.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	cfg := config.Default()
	cfg.Seed = 7
	h := &Handler{
		Tables:  table.NewRegistry(),
		Config:  cfg,
		Archive: s,
		Hands:   s,
		Logger:  zap.NewNop(),
	}
	e := echo.New()
	h.Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

type snapshot struct {
	ID          string  `json:"id"`
	Phase       string  `json:"phase"`
	HandsPlayed int     `json:"hands_played"`
	ToAct       *string `json:"to_act"`
	Controller  *string `json:"controller"`
	Result      *struct {
		Contract string `json:"contract"`
		Declarer string `json:"declarer"`
	} `json:"result"`
	Tally engine.Tally `json:"tally"`
}

func TestPing(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodGet, "/ping", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("unexpected ping response %d %q", rec.Code, rec.Body.String())
	}
}

func TestBotTableAndArchive(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodPost, "/tables", `{}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create table: %d %s", rec.Code, rec.Body.String())
	}
	tbl := decode[snapshot](t, rec)
	if tbl.Phase != "init" {
		t.Fatalf("new table in phase %q", tbl.Phase)
	}

	rec = do(t, e, http.MethodPost, "/tables/"+tbl.ID+"/hands", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("start hand: %d %s", rec.Code, rec.Body.String())
	}
	after := decode[snapshot](t, rec)
	if after.HandsPlayed != 1 || (after.Phase != "hand complete" && after.Phase != "passed out") {
		t.Fatalf("bots should finish the hand, got %+v", after)
	}

	rec = do(t, e, http.MethodGet, "/hands?table="+tbl.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list hands: %d %s", rec.Code, rec.Body.String())
	}
	hands := decode[[]store.HandRecord](t, rec)
	if len(hands) != 1 || hands[0].TableID.String() != tbl.ID {
		t.Fatalf("expected one archived hand, got %+v", hands)
	}
	rec = do(t, e, http.MethodGet, "/hands/"+hands[0].ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get hand: %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodGet, "/tables", "")
	if list := decode[[]snapshot](t, rec); len(list) != 1 {
		t.Fatalf("expected one table, got %d", len(list))
	}
	if rec := do(t, e, http.MethodDelete, "/tables/"+tbl.ID, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/tables/"+tbl.ID, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("deleted table should be gone, got %d", rec.Code)
	}
}

const strongSouthDeal = `{"hands": {
	"South": ["AS","KS","QS","JS","AH","KH","QH","AD","KD","QD","AC","KC","QC"],
	"West":  ["JH","10S","9S","8S","7S","6S","5S","4S","3S","2S","10H","9H","8H"],
	"North": ["JD","7H","6H","5H","4H","3H","2H","10D","9D","8D","7D","6D","5D"],
	"East":  ["JC","4D","3D","2D","10C","9C","8C","7C","6C","5C","4C","3C","2C"]
}}`

func TestRemoteSeatFlow(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodPost, "/tables", `{"seats":[{"name":"Ann","role":"remote"}],"rotate_dealer":false}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create table: %d %s", rec.Code, rec.Body.String())
	}
	base := "/tables/" + decode[snapshot](t, rec).ID

	if rec := do(t, e, http.MethodGet, base+"/auction", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("auction before the deal: %d", rec.Code)
	}
	rec = do(t, e, http.MethodPost, base+"/hands", strongSouthDeal)
	if rec.Code != http.StatusCreated {
		t.Fatalf("deal: %d %s", rec.Code, rec.Body.String())
	}
	if s := decode[snapshot](t, rec); s.ToAct == nil || *s.ToAct != "South" {
		t.Fatalf("South should be on call, got %+v", s)
	}

	rec = do(t, e, http.MethodGet, base+"/seats/S/calls", "")
	calls := decode[struct {
		Calls []string `json:"calls"`
	}](t, rec)
	if len(calls.Calls) != 36 || calls.Calls[0] != "Pass" {
		t.Fatalf("expected Pass and 35 bids, got %v", calls.Calls)
	}
	rec = do(t, e, http.MethodGet, base+"/seats/West/calls", "")
	if c := decode[struct {
		Calls []string `json:"calls"`
	}](t, rec); len(c.Calls) != 0 {
		t.Fatalf("West is not on call, got %v", c.Calls)
	}

	tests := []struct {
		name string
		body string
		code int
	}{
		{"bot seat", `{"seat":"West","bid":"Pass"}`, http.StatusConflict},
		{"bad bid text", `{"seat":"South","bid":"8NT"}`, http.StatusBadRequest},
		{"bad seat", `{"seat":"Centre","bid":"Pass"}`, http.StatusBadRequest},
		{"double with no bid", `{"seat":"South","bid":"Double"}`, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, e, http.MethodPost, base+"/calls", tt.body); rec.Code != tt.code {
				t.Fatalf("status %d, want %d: %s", rec.Code, tt.code, rec.Body.String())
			}
		})
	}

	rec = do(t, e, http.MethodPost, base+"/calls", `{"seat":"South","bid":"7NT"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("call: %d %s", rec.Code, rec.Body.String())
	}
	s := decode[snapshot](t, rec)
	if s.Phase != "play" || s.Result == nil || s.Result.Contract != "7NT" || s.Result.Declarer != "South" {
		t.Fatalf("unexpected state after the auction %+v", s)
	}
	if *s.ToAct != "North" || *s.Controller != "South" {
		t.Fatalf("South should play for the dummy, got %s/%s", *s.ToAct, *s.Controller)
	}

	rec = do(t, e, http.MethodGet, base+"/trick", "")
	trick := decode[struct {
		Plays []struct {
			Seat string `json:"seat"`
			Card string `json:"card"`
		} `json:"plays"`
	}](t, rec)
	if len(trick.Plays) != 1 || trick.Plays[0].Seat != "West" {
		t.Fatalf("West should have led, got %+v", trick.Plays)
	}

	if rec := do(t, e, http.MethodPost, base+"/plays", `{"seat":"North","card":"AS"}`); rec.Code != http.StatusConflict {
		t.Fatalf("North does not hold AS: %d", rec.Code)
	}
	if rec := do(t, e, http.MethodPost, base+"/plays", `{"seat":"North","card":"ZZ"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad card text: %d", rec.Code)
	}

	// Play out the hand for South and the dummy.
	for i := 0; i < 40; i++ {
		rec = do(t, e, http.MethodGet, base, "")
		s = decode[snapshot](t, rec)
		if s.ToAct == nil {
			break
		}
		rec = do(t, e, http.MethodGet, base+"/seats/"+*s.ToAct+"/cards", "")
		legal := decode[struct {
			Cards []string `json:"cards"`
		}](t, rec)
		if len(legal.Cards) == 0 {
			t.Fatalf("%s to act with no legal cards", *s.ToAct)
		}
		body := `{"seat":"` + *s.ToAct + `","card":"` + legal.Cards[0] + `"}`
		if rec := do(t, e, http.MethodPost, base+"/plays", body); rec.Code != http.StatusOK {
			t.Fatalf("play %s: %d %s", body, rec.Code, rec.Body.String())
		}
	}
	if s.Phase != "hand complete" {
		t.Fatalf("hand should be complete, got %q", s.Phase)
	}
	rec = do(t, e, http.MethodGet, base+"/tally", "")
	if tally := decode[engine.Tally](t, rec); tally.NorthSouth != 13 {
		t.Fatalf("unexpected tally %+v", tally)
	}
	if rec := do(t, e, http.MethodPost, base+"/calls", `{"seat":"South","bid":"Pass"}`); rec.Code != http.StatusConflict {
		t.Fatalf("call after the hand: %d", rec.Code)
	}
}

func TestBadRequests(t *testing.T) {
	e := newTestServer(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
	}{
		{"bad table id", http.MethodGet, "/tables/nope", "", http.StatusBadRequest},
		{"unknown table", http.MethodGet, "/tables/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "", http.StatusNotFound},
		{"bad bot kind", http.MethodPost, "/tables", `{"seats":[{"bot":"oracle"}]}`, http.StatusBadRequest},
		{"bad hand id", http.MethodGet, "/hands/nope", "", http.StatusBadRequest},
		{"unknown hand", http.MethodGet, "/hands/6ba7b810-9dad-11d1-80b4-00c04fd430c8", "", http.StatusNotFound},
		{"bad limit", http.MethodGet, "/hands?limit=many", "", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, e, tt.method, tt.path, tt.body); rec.Code != tt.code {
				t.Fatalf("status %d, want %d: %s", rec.Code, tt.code, rec.Body.String())
			}
		})
	}
}

func TestShortDealRejected(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodPost, "/tables", `{}`)
	id := decode[snapshot](t, rec).ID
	rec = do(t, e, http.MethodPost, "/tables/"+id+"/hands", `{"hands":{"South":["AS"]}}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short deal: %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid deal") {
		t.Fatalf("expected an invalid deal message, got %s", rec.Body.String())
	}
}

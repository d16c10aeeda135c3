package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"hisab/internal/core"
	"hisab/internal/services"
	"hisab/internal/store/memory"
)

func newTestServer(t *testing.T, teams []core.Team) *Server {
	t.Helper()
	mem := memory.New()
	mem.Seed(teams)
	svc := services.NewTeamService(mem, nil, NewConfirmer())
	srv := NewServer(":0", svc, core.DefaultShareRules(), core.SortEntryFeeDesc)
	t.Cleanup(func() { srv.cacheManager.Stop(); srv.rateLimiter.stop() })
	return srv
}

func postForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t, []core.Team{{TeamName: "Alpha"}})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Alpha") {
		t.Fatalf("index body missing team name")
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("missing security header, X-Frame-Options=%q", got)
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestCreateTeamValidationAndSuccess(t *testing.T) {
	srv := newTestServer(t, []core.Team{{TeamName: "Alpha"}})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	rr = postForm(srv, "/teams", url.Values{"teamName": {"   "}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for blank name, got %d", rr.Code)
	}

	rr = postForm(srv, "/teams", url.Values{"teamName": {"Alpha"}})
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate, got %d", rr.Code)
	}

	rr = postForm(srv, "/teams", url.Values{"teamName": {"Bravo"}})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "team:created") {
		t.Fatalf("missing team:created trigger: %s", rr.Header().Get("HX-Trigger"))
	}
}

func TestAddBookingFanOut(t *testing.T) {
	srv := newTestServer(t, []core.Team{{TeamName: "Alpha"}, {TeamName: "Bravo"}})

	rr := postForm(srv, "/bookings", url.Values{})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 with no teams, got %d", rr.Code)
	}

	rr = postForm(srv, "/bookings", url.Values{
		"teams":    {"Alpha", "Bravo"},
		"entryFee": {"150"},
		"winning":  {"20"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	trigger := rr.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, `"created":2`) {
		t.Fatalf("expected 2 created legs in trigger: %s", trigger)
	}

	teams := srv.svc.Snapshot()
	for _, team := range teams {
		if len(team.Bookings) != 1 {
			t.Fatalf("team %s has %d bookings, want 1", team.TeamName, len(team.Bookings))
		}
		if team.Bookings[0].ID == "" {
			t.Fatalf("booking in %s missing generated id", team.TeamName)
		}
	}
}

func TestAddBookingPartialFailure(t *testing.T) {
	srv := newTestServer(t, []core.Team{{TeamName: "Alpha"}})

	rr := postForm(srv, "/bookings", url.Values{
		"teams":    {"Alpha", "Ghost"},
		"entryFee": {"100"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200 for partial success, got %d", rr.Code)
	}
	trigger := rr.Header().Get("HX-Trigger")
	if !strings.Contains(trigger, `"created":1`) || !strings.Contains(trigger, `"failed":1`) {
		t.Fatalf("expected partial result in trigger: %s", trigger)
	}
}

func TestDeleteTeamConfirmation(t *testing.T) {
	srv := newTestServer(t, []core.Team{{TeamName: "Alpha"}})

	rr := postForm(srv, "/teams/delete", url.Values{"teamName": {"Alpha"}, "confirm": {"false"}})
	if rr.Code != 200 {
		t.Fatalf("declined confirm status=%d", rr.Code)
	}
	if len(srv.svc.Snapshot()) == 0 {
		t.Fatalf("team deleted without confirmation")
	}

	rr = postForm(srv, "/teams/delete", url.Values{"teamName": {"Alpha"}, "confirm": {"true"}})
	if rr.Code != 200 {
		t.Fatalf("confirmed delete status=%d: %s", rr.Code, rr.Body.String())
	}
	if len(srv.svc.Snapshot()) != 0 {
		t.Fatalf("team still present after confirmed delete")
	}
}

func TestDeleteBookingStaleID(t *testing.T) {
	srv := newTestServer(t, []core.Team{{TeamName: "Alpha", Bookings: []core.Booking{{ID: "bk_aabb", EntryFee: 50}}}})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)

	rr = postForm(srv, "/bookings/delete", url.Values{
		"team":      {"Alpha"},
		"bookingId": {"bk_gone"},
		"confirm":   {"true"},
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for stale id, got %d", rr.Code)
	}

	rr = postForm(srv, "/bookings/delete", url.Values{
		"team":      {"Alpha"},
		"bookingId": {"bk_aabb"},
		"confirm":   {"true"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := len(srv.svc.Snapshot()[0].Bookings); got != 0 {
		t.Fatalf("booking not deleted, %d left", got)
	}
}

func TestUpdateBookingByID(t *testing.T) {
	srv := newTestServer(t, []core.Team{{TeamName: "Alpha", Bookings: []core.Booking{{ID: "bk_aabb", EntryFee: 50}}}})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srv.Handler.ServeHTTP(rr, req)

	rr = postForm(srv, "/bookings/update", url.Values{
		"team":      {"Alpha"},
		"bookingId": {"bk_aabb"},
		"entryFee":  {"75"},
		"winning":   {"10"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	b := srv.svc.Snapshot()[0].Bookings[0]
	if float64(b.EntryFee) != 75 {
		t.Fatalf("entry fee not updated: %v", b.EntryFee)
	}
	if b.ID != "bk_aabb" {
		t.Fatalf("booking id changed on update: %q", b.ID)
	}
}

func TestOverviewPartial(t *testing.T) {
	srv := newTestServer(t, []core.Team{
		{TeamName: "Alpha", Bookings: []core.Booking{{EntryFee: 500, Winning: 100}}},
		{TeamName: "Bravo"},
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ui/overview?search=alp", nil)
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("overview status=%d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Alpha") || strings.Contains(body, "Bravo") {
		t.Fatalf("search filter not applied: %s", body)
	}
	if !strings.Contains(body, "Rs 400") {
		t.Fatalf("team amount missing from render: %s", body)
	}

	// Second fetch is served from cache and must match.
	rr2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ui/overview?search=alp", nil)
	srv.Handler.ServeHTTP(rr2, req2)
	if rr2.Body.String() != body {
		t.Fatalf("cached overview differs from first render")
	}
}

func TestOverviewInlineEdit(t *testing.T) {
	srv := newTestServer(t, []core.Team{
		{TeamName: "Alpha", Bookings: []core.Booking{{ID: "bk_aabb", EntryFee: 50, Production: "studio"}}},
	})

	get := func(path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		srv.Handler.ServeHTTP(rr, req)
		return rr
	}

	rr := get("/ui/overview")
	if rr.Code != 200 {
		t.Fatalf("overview status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "editTeam=Alpha") {
		t.Fatalf("row is missing its edit control: %s", rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), `hx-post="/bookings/update"`) {
		t.Fatalf("edit form rendered without an edit target")
	}

	rr = get("/ui/overview?editTeam=Alpha&editId=bk_aabb")
	body := rr.Body.String()
	if !strings.Contains(body, `hx-post="/bookings/update"`) {
		t.Fatalf("edit form not rendered for targeted booking: %s", body)
	}
	if !strings.Contains(body, `name="bookingId" value="bk_aabb"`) {
		t.Fatalf("edit form missing booking id: %s", body)
	}
	if !strings.Contains(body, `name="entryFee" step="any" min="0" value="50"`) {
		t.Fatalf("edit form not prefilled with current values: %s", body)
	}

	rr = get("/ui/overview?editTeam=Alpha&editId=bk_gone")
	if strings.Contains(rr.Body.String(), `hx-post="/bookings/update"`) {
		t.Fatalf("edit form rendered for unknown booking id")
	}

	// Edit renders are never cached; the plain overview comes back clean.
	rr = get("/ui/overview")
	if strings.Contains(rr.Body.String(), `hx-post="/bookings/update"`) {
		t.Fatalf("edit row leaked into cached overview")
	}

	rr = postForm(srv, "/bookings/update", url.Values{
		"team":      {"Alpha"},
		"bookingId": {"bk_aabb"},
		"entryFee":  {"75"},
	})
	if rr.Code != 200 {
		t.Fatalf("update status=%d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(get("/ui/overview").Body.String(), "Rs 75") {
		t.Fatalf("updated amount not rendered")
	}
}

func TestRateLimitOnMutations(t *testing.T) {
	srv := newTestServer(t, nil)

	var last int
	for i := 0; i < rateLimitPerMinute+1; i++ {
		rr := postForm(srv, "/teams", url.Values{"teamName": {"x"}})
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", last)
	}
}

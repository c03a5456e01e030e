package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padelgestionado/padel-club-api/internal/model"
	"github.com/padelgestionado/padel-club-api/internal/queue"
	"github.com/padelgestionado/padel-club-api/internal/repository"
)

// In-memory stores backing the handler tests. They reproduce the
// repository semantics the handlers rely on (sentinel errors, conflict
// detection, non-idempotent cancel) without a database.

type fakeUserStore struct {
	users map[int]model.User
}

func newFakeUserStore(users ...model.User) *fakeUserStore {
	s := &fakeUserStore{users: map[int]model.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetByID(_ context.Context, id int) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type fakeBookingStore struct {
	nextID   int
	bookings map[int]model.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{nextID: 1, bookings: map[int]model.Booking{}}
}

func (s *fakeBookingStore) ListActiveForDate(_ context.Context, fecha string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.Fecha == fecha && b.Estado != model.BookingCancelled {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id int) (model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrBookingNotFound
	}
	return b, nil
}

func (s *fakeBookingStore) Create(_ context.Context, usuarioID, canchaID int, fecha, hora string) (model.Booking, error) {
	for _, b := range s.bookings {
		if b.CanchaID == canchaID && b.Fecha == fecha && b.Hora == hora && b.Estado == model.BookingActive {
			return model.Booking{}, repository.ErrSlotTaken
		}
	}
	b := model.Booking{
		ID:        s.nextID,
		UsuarioID: usuarioID,
		CanchaID:  canchaID,
		Fecha:     fecha,
		Hora:      hora,
		Estado:    model.BookingActive,
	}
	s.nextID++
	s.bookings[b.ID] = b
	return b, nil
}

func (s *fakeBookingStore) Cancel(_ context.Context, reservaID, usuarioID int, motivo string) (time.Time, error) {
	b, ok := s.bookings[reservaID]
	if !ok {
		return time.Time{}, repository.ErrBookingNotFound
	}
	if b.Estado == model.BookingCancelled {
		return time.Time{}, repository.ErrAlreadyCancelled
	}
	now := time.Now().UTC().Truncate(time.Second)
	b.Estado = model.BookingCancelled
	b.FechaCancelacion = &now
	s.bookings[reservaID] = b
	return now, nil
}

func (s *fakeBookingStore) ListByUser(_ context.Context, usuarioID int) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.UsuarioID == usuarioID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeRegistrationStore struct {
	nextID int
	regs   map[int]model.Registration
	list   []repository.RegistrationDetail
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{nextID: 1, regs: map[int]model.Registration{}}
}

func (s *fakeRegistrationStore) Create(_ context.Context, usuarioID, torneoID int) (model.Registration, error) {
	for _, r := range s.regs {
		if r.UsuarioID == usuarioID && r.TorneoID == torneoID && r.Estado == model.RegistrationActive {
			return model.Registration{}, repository.ErrAlreadyRegistered
		}
	}
	r := model.Registration{ID: s.nextID, UsuarioID: usuarioID, TorneoID: torneoID, Estado: model.RegistrationActive}
	s.nextID++
	s.regs[r.ID] = r
	return r, nil
}

func (s *fakeRegistrationStore) ListByUser(_ context.Context, usuarioID int) ([]repository.RegistrationDetail, error) {
	if s.list == nil {
		return []repository.RegistrationDetail{}, nil
	}
	return s.list, nil
}

func (s *fakeRegistrationStore) Withdraw(_ context.Context, inscripcionID, usuarioID int) error {
	r, ok := s.regs[inscripcionID]
	if !ok {
		return repository.ErrRegistrationNotFound
	}
	if r.UsuarioID != usuarioID {
		return repository.ErrForbidden
	}
	if r.Estado == model.RegistrationCancelled {
		return repository.ErrRegistrationCancelled
	}
	r.Estado = model.RegistrationCancelled
	s.regs[inscripcionID] = r
	return nil
}

type fakeTournamentStore struct {
	nextID      int
	tournaments map[int]model.Tournament
}

func newFakeTournamentStore(ts ...model.Tournament) *fakeTournamentStore {
	s := &fakeTournamentStore{nextID: 1, tournaments: map[int]model.Tournament{}}
	for _, t := range ts {
		s.tournaments[t.ID] = t
		if t.ID >= s.nextID {
			s.nextID = t.ID + 1
		}
	}
	return s
}

func (s *fakeTournamentStore) GetByID(_ context.Context, id int) (model.Tournament, error) {
	t, ok := s.tournaments[id]
	if !ok {
		return model.Tournament{}, repository.ErrTournamentNotFound
	}
	return t, nil
}

func (s *fakeTournamentStore) List(_ context.Context) ([]model.Tournament, error) {
	out := make([]model.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		out = append(out, t)
	}
	return out, nil
}

func (s *fakeTournamentStore) Create(_ context.Context, nombre, descripcion, fecha string) (model.Tournament, error) {
	t := model.Tournament{ID: s.nextID, Nombre: nombre, Descripcion: descripcion, Fecha: fecha, Estado: model.TournamentOpen}
	s.nextID++
	s.tournaments[t.ID] = t
	return t, nil
}

type fakePairStore struct {
	nextID    int
	pairs     map[int]model.Pair
	assigned  map[int][]int // torneoID -> parejaIDs in assignment order
	pairList  []repository.PairDetail
	assignErr error
}

func newFakePairStore() *fakePairStore {
	return &fakePairStore{nextID: 1, pairs: map[int]model.Pair{}, assigned: map[int][]int{}}
}

func (s *fakePairStore) Create(_ context.Context, jugador1ID, jugador2ID int) (model.Pair, error) {
	if jugador2ID < jugador1ID {
		jugador1ID, jugador2ID = jugador2ID, jugador1ID
	}
	for _, p := range s.pairs {
		if p.Jugador1ID == jugador1ID && p.Jugador2ID == jugador2ID {
			return model.Pair{}, repository.ErrPairExists
		}
	}
	p := model.Pair{ID: s.nextID, Jugador1ID: jugador1ID, Jugador2ID: jugador2ID}
	s.nextID++
	s.pairs[p.ID] = p
	return p, nil
}

func (s *fakePairStore) List(_ context.Context) ([]repository.PairDetail, error) {
	if s.pairList == nil {
		return []repository.PairDetail{}, nil
	}
	return s.pairList, nil
}

func (s *fakePairStore) GetByID(_ context.Context, id int) (model.Pair, error) {
	p, ok := s.pairs[id]
	if !ok {
		return model.Pair{}, repository.ErrPairNotFound
	}
	return p, nil
}

func (s *fakePairStore) Assign(_ context.Context, torneoID, parejaID int) error {
	if s.assignErr != nil {
		return s.assignErr
	}
	for _, id := range s.assigned[torneoID] {
		if id == parejaID {
			return repository.ErrPairAssigned
		}
	}
	s.assigned[torneoID] = append(s.assigned[torneoID], parejaID)
	return nil
}

func (s *fakePairStore) ListAssigned(_ context.Context, torneoID int) ([]int, error) {
	ids := s.assigned[torneoID]
	if ids == nil {
		return []int{}, nil
	}
	return ids, nil
}

// fakeMatchStore is scripted rather than simulated: bracket pairing is
// covered by its own package tests and round generation lives in SQL,
// so the handler tests only need the error-to-response mapping.
type fakeMatchStore struct {
	startMatches  []model.Match
	startErr      error
	listMatches   []model.Match
	listErr       error
	recordedMatch model.Match
	recordErr     error
}

func (s *fakeMatchStore) StartTournament(_ context.Context, torneoID int) ([]model.Match, error) {
	return s.startMatches, s.startErr
}

func (s *fakeMatchStore) ListByTournament(_ context.Context, torneoID int) ([]model.Match, error) {
	return s.listMatches, s.listErr
}

func (s *fakeMatchStore) RecordResult(_ context.Context, partidoID, resultado1, resultado2 int) (model.Match, error) {
	return s.recordedMatch, s.recordErr
}

type fakePublisher struct {
	events []queue.ReservaEvent
}

func (p *fakePublisher) Publish(_ context.Context, event queue.ReservaEvent) error {
	p.events = append(p.events, event)
	return nil
}

// doJSON runs a handler against a JSON body and decodes the response.
func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return rec.Code, out
}

func wantError(t *testing.T, code int, body map[string]any, wantCode int, wantMessage string) {
	t.Helper()
	if code != wantCode {
		t.Fatalf("status = %d, want %d (body %v)", code, wantCode, body)
	}
	if body["status"] != "error" {
		t.Fatalf("status field = %v, want error", body["status"])
	}
	if body["message"] != wantMessage {
		t.Fatalf("message = %q, want %q", body["message"], wantMessage)
	}
}

func wantOK(t *testing.T, code int, body map[string]any) {
	t.Helper()
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %v)", code, body)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field = %v, want ok", body["status"])
	}
}

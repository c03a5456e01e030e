package handler

import (
	"net/http"
	"testing"

	"github.com/padelgestionado/padel-club-api/internal/model"
	"github.com/padelgestionado/padel-club-api/internal/repository"
)

func registrationFixture() (*RegistrationHandler, *fakeRegistrationStore) {
	users := newFakeUserStore(
		model.User{ID: 1, Nombre: "Ana", Admin: false},
		model.User{ID: 9, Nombre: "Admin", Admin: true},
	)
	tournaments := newFakeTournamentStore(
		model.Tournament{ID: 1, Nombre: "Torneo Apertura", Fecha: "2025-07-01", Estado: model.TournamentOpen},
	)
	regs := newFakeRegistrationStore()
	return NewRegistrationHandler(users, tournaments, regs), regs
}

func TestInscribirTorneoSuccess(t *testing.T) {
	h, _ := registrationFixture()
	code, body := doJSON(t, h.InscribirTorneo, http.MethodPost, "/api/inscribir_torneo",
		`{"usuario_id":1,"torneo_id":1}`)
	wantOK(t, code, body)
	if body["message"] != "Inscripción realizada exitosamente" {
		t.Fatalf("message = %v", body["message"])
	}
	torneo := body["torneo"].(map[string]any)
	if torneo["nombre"] != "Torneo Apertura" {
		t.Fatalf("torneo = %v", torneo)
	}
	if body["inscripcion_id"] != float64(1) {
		t.Fatalf("inscripcion_id = %v", body["inscripcion_id"])
	}
}

func TestInscribirTorneoDuplicate(t *testing.T) {
	h, _ := registrationFixture()
	doJSON(t, h.InscribirTorneo, http.MethodPost, "/api/inscribir_torneo", `{"usuario_id":1,"torneo_id":1}`)

	code, body := doJSON(t, h.InscribirTorneo, http.MethodPost, "/api/inscribir_torneo", `{"usuario_id":1,"torneo_id":1}`)
	wantError(t, code, body, http.StatusBadRequest, "Ya estás inscrito en este torneo")
}

func TestInscribirTorneoAdminBlocked(t *testing.T) {
	h, _ := registrationFixture()
	code, body := doJSON(t, h.InscribirTorneo, http.MethodPost, "/api/inscribir_torneo", `{"usuario_id":9,"torneo_id":1}`)
	wantError(t, code, body, http.StatusBadRequest, "Los administradores no pueden inscribirse a torneos")
}

func TestInscribirTorneoValidation(t *testing.T) {
	h, _ := registrationFixture()
	cases := []struct {
		name, payload, message string
	}{
		{"missing fields", `{"torneo_id":1}`, "Campos usuario_id y torneo_id son obligatorios"},
		{"unknown user", `{"usuario_id":77,"torneo_id":1}`, "Usuario no encontrado"},
		{"unknown tournament", `{"usuario_id":1,"torneo_id":42}`, "Torneo no encontrado"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := doJSON(t, h.InscribirTorneo, http.MethodPost, "/api/inscribir_torneo", tc.payload)
			wantError(t, code, body, http.StatusBadRequest, tc.message)
		})
	}
}

func TestMisInscripciones(t *testing.T) {
	h, regs := registrationFixture()

	code, body := doJSON(t, h.MisInscripciones, http.MethodPost, "/api/mis_inscripciones", `{"usuario_id":1}`)
	wantOK(t, code, body)
	if body["message"] != "Inscripciones obtenidas exitosamente" {
		t.Fatalf("message = %v", body["message"])
	}
	if body["total"] != float64(0) {
		t.Fatalf("total = %v", body["total"])
	}

	regs.list = []repository.RegistrationDetail{{
		InscripcionID:    1,
		TorneoID:         1,
		FechaInscripcion: "2025-06-01 12:00:00",
		Estado:           model.RegistrationActive,
		TorneoNombre:     "Torneo Apertura",
		TorneoFecha:      "2025-07-01",
	}}
	code, body = doJSON(t, h.MisInscripciones, http.MethodPost, "/api/mis_inscripciones", `{"usuario_id":1}`)
	wantOK(t, code, body)
	if body["total"] != float64(1) {
		t.Fatalf("total = %v", body["total"])
	}

	code, body = doJSON(t, h.MisInscripciones, http.MethodPost, "/api/mis_inscripciones", `{}`)
	wantError(t, code, body, http.StatusBadRequest, "Campo usuario_id es obligatorio")
}

func TestCancelarInscripcion(t *testing.T) {
	h, _ := registrationFixture()
	doJSON(t, h.InscribirTorneo, http.MethodPost, "/api/inscribir_torneo", `{"usuario_id":1,"torneo_id":1}`)

	code, body := doJSON(t, h.CancelarInscripcion, http.MethodPost, "/api/cancelar_inscripcion",
		`{"usuario_id":1,"inscripcion_id":1}`)
	wantOK(t, code, body)
	if body["message"] != "Inscripción cancelada exitosamente" {
		t.Fatalf("message = %v", body["message"])
	}

	// A second withdrawal fails: the operation is not idempotent.
	code, body = doJSON(t, h.CancelarInscripcion, http.MethodPost, "/api/cancelar_inscripcion",
		`{"usuario_id":1,"inscripcion_id":1}`)
	wantError(t, code, body, http.StatusBadRequest, "Esta inscripción ya fue cancelada")
}

func TestCancelarInscripcionErrors(t *testing.T) {
	h, _ := registrationFixture()
	doJSON(t, h.InscribirTorneo, http.MethodPost, "/api/inscribir_torneo", `{"usuario_id":1,"torneo_id":1}`)

	cases := []struct {
		name, payload string
		wantCode      int
		message       string
	}{
		{"missing fields", `{"usuario_id":1}`, http.StatusBadRequest, "Faltan campos obligatorios: usuario_id e inscripcion_id"},
		{"bad ids", `{"usuario_id":0,"inscripcion_id":1}`, http.StatusBadRequest, "IDs inválidos"},
		{"unknown registration", `{"usuario_id":1,"inscripcion_id":42}`, http.StatusBadRequest, "Inscripción no encontrada"},
		{"not the owner", `{"usuario_id":9,"inscripcion_id":1}`, http.StatusForbidden, "No tienes permisos para cancelar esta inscripción"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, body := doJSON(t, h.CancelarInscripcion, http.MethodPost, "/api/cancelar_inscripcion", tc.payload)
			wantError(t, code, body, tc.wantCode, tc.message)
		})
	}
}

package assistant

import (
	"encoding/json"
	"net/http"

	"pet-house/internal/platform/textclean"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /assistant. mw se aplica al grupo (rate limit).
func RegisterRoutes(r chi.Router, svc *Service, mw ...func(http.Handler) http.Handler) {
	r.Route("/assistant", func(ar chi.Router) {
		ar.Use(mw...)

		ar.Get("/", introHandler(svc))
		ar.Post("/messages", messageHandler(svc))
		ar.Post("/quick", quickHandler(svc))
		ar.Post("/emergency", emergencyHandler(svc))
	})
}

type introResponse struct {
	Greeting     Message       `json:"greeting"`
	QuickPrompts []QuickPrompt `json:"quickPrompts"`
	Disclaimer   string        `json:"disclaimer"`
}

type messageRequest struct {
	Message string `json:"message"`
}

type quickRequest struct {
	Text string `json:"text"`
}

// introHandler godoc
// @Summary Inicio del asistente
// @Description Saludo inicial, atajos de síntomas comunes y aviso legal.
// @Tags assistant
// @Produce json
// @Success 200 {object} introResponse
// @Router /assistant [get]
func introHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, introResponse{
			Greeting:     svc.Greeting(),
			QuickPrompts: svc.QuickPrompts(),
			Disclaimer:   svc.Disclaimer(),
		})
	}
}

// messageHandler godoc
// @Summary Enviar mensaje
// @Description Responde según palabras clave (vômito, apetite, diarreia, coceira) con preguntas de seguimiento.
// @Tags assistant
// @Accept json
// @Produce json
// @Param payload body messageRequest true "Mensaje del usuario"
// @Success 200 {object} Reply
// @Failure 400 {string} string "invalid json / message is required"
// @Failure 429 {string} string "too many requests"
// @Router /assistant/messages [post]
func messageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req messageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		msg := textclean.Clean(req.Message)
		if msg == "" {
			http.Error(w, "message is required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, svc.Reply(msg))
	}
}

// quickHandler godoc
// @Summary Atajo de síntoma
// @Tags assistant
// @Accept json
// @Produce json
// @Param payload body quickRequest true "Texto del atajo"
// @Success 200 {object} Reply
// @Failure 400 {string} string "invalid json / text is required"
// @Router /assistant/quick [post]
func quickHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req quickRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		text := textclean.Clean(req.Text)
		if text == "" {
			http.Error(w, "text is required", http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, svc.Quick(text))
	}
}

// emergencyHandler godoc
// @Summary Aviso de emergencia
// @Tags assistant
// @Produce json
// @Success 200 {object} EmergencyNotice
// @Router /assistant/emergency [post]
func emergencyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Emergency())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

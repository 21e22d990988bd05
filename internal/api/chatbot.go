package api

import (
	"net/http"

	"github.com/motorlot/catalog-api/internal/dialogflow"
)

func (s *Server) dialogflowWebhook(w http.ResponseWriter, r *http.Request) {
	var req dialogflow.WebhookRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	// Always 200 toward DialogFlow; failures are in-band fulfillment texts.
	writeJSON(w, http.StatusOK, s.webhook.Handle(r.Context(), &req))
}

func (s *Server) dialogflowTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "DialogFlow webhook endpoint is reachable",
	})
}

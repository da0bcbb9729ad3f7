package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"partyhub-backend/internal/domain"
	"partyhub-backend/internal/service"
)

// PartyHandler exposes the party lifecycle and admission commands.
type PartyHandler struct {
	partySvc  service.PartyService
	ratingSvc service.RatingService
}

func NewPartyHandler(partySvc service.PartyService, ratingSvc service.RatingService) *PartyHandler {
	return &PartyHandler{partySvc: partySvc, ratingSvc: ratingSvc}
}

func (h *PartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft domain.PartyDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	party, err := h.partySvc.Create(r.Context(), UserID(r), &draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, party)
}

func (h *PartyHandler) Get(w http.ResponseWriter, r *http.Request) {
	partyID := mux.Vars(r)["id"]
	party, err := h.partySvc.GetParty(r.Context(), partyID)
	if err != nil {
		writeError(w, err)
		return
	}
	status, err := h.partySvc.VisibleGuestStatus(r.Context(), partyID, UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		*domain.Party
		CallerStatus domain.GuestVisibleStatus `json:"caller_status"`
	}{party, status})
}

func (h *PartyHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.partySvc.Cancel(r.Context(), mux.Vars(r)["id"], UserID(r)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *PartyHandler) End(w http.ResponseWriter, r *http.Request) {
	var body struct {
		SkipRating bool `json:"skip_rating"`
	}
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body) // empty body = defaults
	}
	if err := h.partySvc.End(r.Context(), mux.Vars(r)["id"], UserID(r), body.SkipRating); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *PartyHandler) RequestToJoin(w http.ResponseWriter, r *http.Request) {
	req, err := h.partySvc.RequestToJoin(r.Context(), mux.Vars(r)["id"], UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *PartyHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.partySvc.ListGuestRequests(r.Context(), mux.Vars(r)["id"], UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *PartyHandler) Approve(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	req, err := h.partySvc.Approve(r.Context(), vars["id"], UserID(r), vars["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *PartyHandler) Deny(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	req, err := h.partySvc.Deny(r.Context(), vars["id"], UserID(r), vars["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// SubmitPaymentProof is guest-initiated: the authenticated caller submits
// proof for their own request.
func (h *PartyHandler) SubmitPaymentProof(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if vars["uid"] != UserID(r) {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	req, err := h.partySvc.SubmitPaymentProof(r.Context(), vars["id"], vars["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *PartyHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	req, err := h.partySvc.VerifyPayment(r.Context(), vars["id"], UserID(r), vars["uid"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *PartyHandler) PendingRequestCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.partySvc.PendingRequestCount(r.Context(), mux.Vars(r)["id"], UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"pending_requests": count})
}

func (h *PartyHandler) HostEarnings(w http.ResponseWriter, r *http.Request) {
	earnings, err := h.partySvc.HostEarnings(r.Context(), mux.Vars(r)["id"], UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"earnings_cents": earnings})
}

func (h *PartyHandler) CanCreate(w http.ResponseWriter, r *http.Request) {
	ok, err := h.partySvc.CanCreateParty(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"can_create": ok})
}

func (h *PartyHandler) Rate(w http.ResponseWriter, r *http.Request) {
	var rating domain.PartyRating
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	rating.PartyID = mux.Vars(r)["id"]
	if err := h.ratingSvc.RecordRating(r.Context(), UserID(r), &rating); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rating)
}

func (h *PartyHandler) HostRating(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ratingSvc.AggregateForHost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"partyhub-backend/internal/service"
)

// LedgerHandler exposes the prepaid balance and the purchase callback.
type LedgerHandler struct {
	ledgerSvc   service.LedgerService
	purchaseSvc service.PurchaseService
}

func NewLedgerHandler(ledgerSvc service.LedgerService, purchaseSvc service.PurchaseService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc, purchaseSvc: purchaseSvc}
}

func (h *LedgerHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledgerSvc.GetBalance(r.Context(), UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"balance_subcredits": balance})
}

func (h *LedgerHandler) Entries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := h.ledgerSvc.ListEntries(r.Context(), UserID(r), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *LedgerHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	bundles, err := h.purchaseSvc.ListBundles(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundles)
}

// ConfirmPurchase is the purchase-completion callback: the store layer
// confirmed the transaction and the buyer's balance is credited. Replays of
// the same receipt are no-ops.
func (h *LedgerHandler) ConfirmPurchase(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID string `json:"product_id"`
		ReceiptID string `json:"receipt_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if body.ProductID == "" || body.ReceiptID == "" {
		writeErrorMessage(w, http.StatusBadRequest, "product_id and receipt_id are required")
		return
	}
	bundle, err := h.purchaseSvc.CompletePurchase(r.Context(), UserID(r), body.ProductID, body.ReceiptID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

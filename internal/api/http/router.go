package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the API surface. Every route requires a verified caller.
func NewRouter(verifier TokenVerifier, parties *PartyHandler, ledger *LedgerHandler) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/v1").Subrouter()
	api.Use(AuthMiddleware(verifier))

	api.HandleFunc("/parties", parties.Create).Methods(http.MethodPost)
	api.HandleFunc("/parties/can-create", parties.CanCreate).Methods(http.MethodGet)
	api.HandleFunc("/parties/{id}", parties.Get).Methods(http.MethodGet)
	api.HandleFunc("/parties/{id}/cancel", parties.Cancel).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/end", parties.End).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/earnings", parties.HostEarnings).Methods(http.MethodGet)
	api.HandleFunc("/parties/{id}/requests", parties.RequestToJoin).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/requests", parties.ListRequests).Methods(http.MethodGet)
	api.HandleFunc("/parties/{id}/requests/pending-count", parties.PendingRequestCount).Methods(http.MethodGet)
	api.HandleFunc("/parties/{id}/requests/{uid}/approve", parties.Approve).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/requests/{uid}/deny", parties.Deny).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/requests/{uid}/payment-proof", parties.SubmitPaymentProof).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/requests/{uid}/verify-payment", parties.VerifyPayment).Methods(http.MethodPost)
	api.HandleFunc("/parties/{id}/ratings", parties.Rate).Methods(http.MethodPost)
	api.HandleFunc("/hosts/{id}/rating", parties.HostRating).Methods(http.MethodGet)

	api.HandleFunc("/ledger/balance", ledger.Balance).Methods(http.MethodGet)
	api.HandleFunc("/ledger/entries", ledger.Entries).Methods(http.MethodGet)
	api.HandleFunc("/products", ledger.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/purchases/confirm", ledger.ConfirmPurchase).Methods(http.MethodPost)

	return router
}

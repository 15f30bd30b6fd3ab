// Package httpapi maps the HTTP surface onto the services. Every handler is
// a thin translation layer: decode, call, encode.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/bistro-boss/backend/internal/auth"
	"github.com/bistro-boss/backend/internal/metrics"
	"github.com/bistro-boss/backend/internal/services/carts"
	"github.com/bistro-boss/backend/internal/services/menusvc"
	"github.com/bistro-boss/backend/internal/services/payments"
	"github.com/bistro-boss/backend/internal/services/reviews"
	"github.com/bistro-boss/backend/internal/services/users"

	cartdom "github.com/bistro-boss/backend/internal/domain/cart"
	menudom "github.com/bistro-boss/backend/internal/domain/menu"
	paymentdom "github.com/bistro-boss/backend/internal/domain/payment"
	userdom "github.com/bistro-boss/backend/internal/domain/user"
	"github.com/bistro-boss/backend/pkg/logger"
)

// Handler bundles the HTTP endpoints and their dependencies.
type Handler struct {
	tokens   *auth.TokenService
	users    *users.Service
	menu     *menusvc.Service
	reviews  *reviews.Service
	carts    *carts.Service
	payments *payments.Service
	log      *logger.Logger
}

// New creates a Handler over the given services.
func New(tokens *auth.TokenService, usersSvc *users.Service, menuSvc *menusvc.Service, reviewsSvc *reviews.Service, cartsSvc *carts.Service, paymentsSvc *payments.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewDefault("httpapi")
	}
	return &Handler{
		tokens:   tokens,
		users:    usersSvc,
		menu:     menuSvc,
		reviews:  reviewsSvc,
		carts:    cartsSvc,
		payments: paymentsSvc,
		log:      log,
	}
}

// Router builds the full route table wrapped with CORS, metrics and request
// logging.
func (h *Handler) Router(allowedOrigins string) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/jwt", h.issueToken).Methods(http.MethodPost)

	r.Handle("/users", h.authenticate(h.requireAdmin(http.HandlerFunc(h.listUsers)))).Methods(http.MethodGet)
	r.HandleFunc("/users", h.registerUser).Methods(http.MethodPost)
	r.Handle("/users/admin/{email}", h.authenticate(http.HandlerFunc(h.checkAdmin))).Methods(http.MethodGet)
	r.Handle("/users/admin/{id}", h.authenticate(h.requireAdmin(http.HandlerFunc(h.promoteUser)))).Methods(http.MethodPatch)
	r.Handle("/users/{id}", h.authenticate(h.requireAdmin(http.HandlerFunc(h.deleteUser)))).Methods(http.MethodDelete)

	r.HandleFunc("/menu", h.listMenu).Methods(http.MethodGet)
	r.Handle("/menu", h.authenticate(h.requireAdmin(http.HandlerFunc(h.createMenuItem)))).Methods(http.MethodPost)
	r.HandleFunc("/menu/{id}", h.getMenuItem).Methods(http.MethodGet)
	r.HandleFunc("/menu/{id}", h.updateMenuItem).Methods(http.MethodPatch)
	r.Handle("/menu/{id}", h.authenticate(h.requireAdmin(http.HandlerFunc(h.deleteMenuItem)))).Methods(http.MethodDelete)

	r.HandleFunc("/reviews", h.listReviews).Methods(http.MethodGet)

	r.HandleFunc("/carts", h.listCarts).Methods(http.MethodGet)
	r.HandleFunc("/carts", h.addCartItem).Methods(http.MethodPost)
	r.HandleFunc("/carts/{id}", h.deleteCartItem).Methods(http.MethodDelete)

	r.HandleFunc("/create-payment-intent", h.createPaymentIntent).Methods(http.MethodPost)
	r.Handle("/payments/{email}", h.authenticate(http.HandlerFunc(h.listPayments))).Methods(http.MethodGet)
	r.HandleFunc("/payments", h.recordPayment).Methods(http.MethodPost)

	r.HandleFunc("/admin-stats", h.adminStats).Methods(http.MethodGet)
	r.Handle("/order-stats", h.authenticate(h.requireAdmin(http.HandlerFunc(h.orderStats)))).Methods(http.MethodGet)

	wrapped := requestLogger(h.log)(r)
	wrapped = metrics.InstrumentHandler(wrapped)
	return corsMiddleware(allowedOrigins)(wrapped)
}

// Health ----------------------------------------------------------------------

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "bistro-api",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Auth ------------------------------------------------------------------------

func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	token, err := h.tokens.Issue(payload.Email)
	if err != nil {
		jsonError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Users -----------------------------------------------------------------------

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.users.List(r.Context())
	if err != nil {
		jsonError(w, "failed to list users", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) registerUser(w http.ResponseWriter, r *http.Request) {
	var u userdom.User
	if err := decodeJSON(r.Body, &u); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, inserted, err := h.users.Register(r.Context(), u)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !inserted {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message":    "user already exists",
			"insertedId": nil,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"insertedId": created.ID})
}

func (h *Handler) checkAdmin(w http.ResponseWriter, r *http.Request) {
	email, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	isAdmin, err := h.users.IsAdmin(r.Context(), email)
	if err != nil {
		jsonError(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"admin": isAdmin})
}

func (h *Handler) promoteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.users.Promote(r.Context(), id); err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.users.Delete(r.Context(), id); err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}

// Menu ------------------------------------------------------------------------

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	list, err := h.menu.List(r.Context())
	if err != nil {
		jsonError(w, "failed to list menu", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	it, err := h.menu.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var it menudom.Item
	if err := decodeJSON(r.Body, &it); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, err := h.menu.Create(r.Context(), it)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": created.ID})
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var upd menudom.Update
	if err := decodeJSON(r.Body, &upd); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	if err := h.menu.Update(r.Context(), mux.Vars(r)["id"], upd); err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"modifiedCount": 1})
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.menu.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}

// Reviews ---------------------------------------------------------------------

func (h *Handler) listReviews(w http.ResponseWriter, r *http.Request) {
	list, err := h.reviews.List(r.Context())
	if err != nil {
		jsonError(w, "failed to list reviews", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Carts -----------------------------------------------------------------------

func (h *Handler) listCarts(w http.ResponseWriter, r *http.Request) {
	list, err := h.carts.List(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		jsonError(w, "failed to list carts", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var it cartdom.Item
	if err := decodeJSON(r.Body, &it); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, err := h.carts.Add(r.Context(), it)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"insertedId": created.ID})
}

func (h *Handler) deleteCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}

// Payments --------------------------------------------------------------------

func (h *Handler) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Price float64 `json:"price"`
	}
	if err := decodeJSON(r.Body, &payload); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	secret, err := h.payments.CreateIntent(r.Context(), payload.Price)
	if err != nil {
		h.log.WithError(err).Error("payment intent failed")
		jsonError(w, "failed to create payment intent", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": secret})
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	email, ok := h.requireSelf(w, r)
	if !ok {
		return
	}

	list, err := h.payments.ListByEmail(r.Context(), email)
	if err != nil {
		jsonError(w, "failed to list payments", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) recordPayment(w http.ResponseWriter, r *http.Request) {
	var p paymentdom.Payment
	if err := decodeJSON(r.Body, &p); err != nil {
		jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	created, deleted, err := h.payments.Record(r.Context(), p)
	if err != nil {
		jsonError(w, err.Error(), storeStatus(err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"insertedId":   created.ID,
		"deletedCount": deleted,
	})
}

// Stats -----------------------------------------------------------------------

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.payments.AdminStats(r.Context())
	if err != nil {
		jsonError(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) orderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.payments.OrderStats(r.Context())
	if err != nil {
		jsonError(w, "failed to compute stats", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

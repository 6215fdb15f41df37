package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/ecommerce-gateway/internal/api-gateway/core/services"
)

// maxBodyBytes caps request bodies read by the create handlers.
const maxBodyBytes = 1 << 20

// Handler serves the product and order routes of the gateway.
type Handler struct {
	gateway *services.Gateway
}

func NewHandler(gateway *services.Gateway) *Handler {
	return &Handler{gateway: gateway}
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.gateway.GetProduct(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProductToResponse(*p))
}

// DeleteProduct responds with the product as it was before deletion.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.gateway.DeleteProduct(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProductToResponse(*p))
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	p, err := parseProduct(body)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	id, err := h.gateway.CreateProduct(r.Context(), p)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "product created", "product_id", id, "request_id", middleware.GetReqID(r.Context()))
	writeJSON(w, http.StatusCreated, CreatedProductResponse{ID: id})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.gateway.ListOrders(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrdersToResponse(orders))
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "order_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// Only digits reach here; an overflowing id cannot exist.
		h.writeDomainError(w, r, &entity.NotFoundError{Resource: entity.ResourceOrder, ID: raw})
		return
	}

	order, err := h.gateway.GetOrder(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrderToResponse(*order))
}

// CreateOrder validates every product reference before the ledger is called.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	items, err := parseOrder(body)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	id, err := h.gateway.CreateOrder(r.Context(), items)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "order created",
		"order_id", id,
		"items", len(items),
		"request_id", middleware.GetReqID(r.Context()),
	)
	writeJSON(w, http.StatusCreated, CreatedOrderResponse{ID: id})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return nil, &entity.PayloadTooLargeError{Limit: tooLarge.Limit}
	case err != nil:
		return nil, &entity.MalformedInputError{Err: err}
	}
	return body, nil
}

// writeDomainError maps gateway errors to status codes. Anything unmapped is
// a server fault: logged in full, reported to the client generically.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound      *entity.NotFoundError
		productAbsent *entity.ProductNotFoundError
		conflict      *entity.ConflictError
		invalid       *entity.ValidationError
		malformed     *entity.MalformedInputError
		tooLarge      *entity.PayloadTooLargeError
	)

	switch {
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", tooLarge.Error(), nil)
	case errors.As(err, &malformed):
		writeError(w, http.StatusBadRequest, "invalid_json", malformed.Error(), nil)
	case errors.As(err, &invalid):
		writeError(w, http.StatusBadRequest, "validation_failed", "request payload failed validation", invalid.Fields)
	case errors.As(err, &productAbsent):
		writeError(w, http.StatusNotFound, "product_not_found", productAbsent.Error(), nil)
	case errors.As(err, &notFound):
		writeError(w, http.StatusNotFound, notFound.Resource+"_not_found", notFound.Error(), nil)
	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, conflict.Resource+"_exists", conflict.Error(), nil)
	default:
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string, details map[string]string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
		Details: details,
	})
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/tai160903/viet-coffee-server/internal/order"
	"github.com/tai160903/viet-coffee-server/internal/orderview"
	"github.com/tai160903/viet-coffee-server/internal/pricing"
)

// Page size shown by the order table footer. Display-only: the endpoint
// always returns the full filtered set.
const orderPageSize = 10

type OrderHandler struct {
	svc      order.Service
	taxRate  decimal.Decimal
	validate *validator.Validate
}

func NewOrderHandler(svc order.Service, taxRate decimal.Decimal) *OrderHandler {
	return &OrderHandler{
		svc:      svc,
		taxRate:  taxRate,
		validate: validator.New(),
	}
}

func (h *OrderHandler) RegisterRoutes(router chi.Router) {
	router.Get("/orders", h.handleListOrders)
	router.Get("/orders/{code}", h.handleGetOrder)
	router.Patch("/orders/{code}/status", h.handleUpdateStatus)
}

type OrderListResponse struct {
	Orders   []order.Order `json:"orders"`
	Showing  int           `json:"showing"`
	Total    int           `json:"total"`
	PageSize int           `json:"page_size"`
}

// handleListOrders serves the manager order table. Search, status filter and
// sort arrive as query parameters and run through the view-state engine; the
// response carries the pagination footer's metadata alongside the full
// filtered set.
func (h *OrderHandler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.ListOrders(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list orders")
		respondWithError(w, mapErrorToStatusCode(err), "Failed to list orders")
		return
	}

	params := r.URL.Query()

	q := orderview.Query{
		Search: params.Get("search"),
		Status: params.Get("status"),
	}
	if key := params.Get("sortBy"); key != "" {
		q.Sort = orderview.SortConfig{Key: orderview.SortKey(key), Direction: orderview.Ascending}
		if params.Get("sortDir") == string(orderview.Descending) {
			q.Sort.Direction = orderview.Descending
		}
	}

	visible := orderview.Apply(orders, q)

	respondWithJSON(w, http.StatusOK, OrderListResponse{
		Orders:   visible,
		Showing:  len(visible),
		Total:    len(orders),
		PageSize: orderPageSize,
	})
}

// OrderSummary is the totals block of the manager details modal, which
// displays the tax-inclusive formula.
type OrderSummary struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	TotalWithTax    decimal.Decimal `json:"total_with_tax"`
	SubtotalDisplay string          `json:"subtotal_display"`
	TaxDisplay      string          `json:"tax_display"`
	TotalDisplay    string          `json:"total_display"`
}

type OrderDetailResponse struct {
	Order   *order.Order `json:"order"`
	Summary OrderSummary `json:"summary"`
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "order code is required")
		return
	}

	o, err := h.svc.GetOrderByCode(r.Context(), code)
	if err != nil {
		log.Error().Err(err).Str("order_code", code).Msg("Failed to get order")

		message := "Failed to get order"
		if mapErrorToStatusCode(err) == http.StatusNotFound {
			message = "Order not found"
		}

		respondWithError(w, mapErrorToStatusCode(err), message)
		return
	}

	summary := pricing.Summary{Subtotal: o.Total, TaxRate: h.taxRate}

	respondWithJSON(w, http.StatusOK, OrderDetailResponse{
		Order: o,
		Summary: OrderSummary{
			Subtotal:        summary.Subtotal,
			Tax:             summary.Tax(),
			TotalWithTax:    summary.TotalWithTax(),
			SubtotalDisplay: pricing.FormatUSD(summary.Subtotal),
			TaxDisplay:      pricing.FormatUSD(summary.Tax()),
			TotalDisplay:    pricing.FormatUSD(summary.TotalWithTax()),
		},
	})
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Processing Shipped Completed"`
}

func (h *OrderHandler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "order code is required")
		return
	}

	var requestPayload UpdateStatusRequest
	if !decodeStrict(w, r, &requestPayload) {
		return
	}
	if !validateStruct(w, h.validate, requestPayload) {
		return
	}

	err := h.svc.UpdateOrderStatus(r.Context(), code, order.Status(requestPayload.Status))
	if err != nil {
		log.Error().Err(err).Str("order_code", code).Msg("Failed to update order status")

		statusCode := mapErrorToStatusCode(err)
		message := "Failed to update order status"
		switch statusCode {
		case http.StatusNotFound:
			message = "Order not found"
		case http.StatusUnprocessableEntity:
			message = "Invalid status transition"
		}

		respondWithError(w, statusCode, message)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": requestPayload.Status})
}

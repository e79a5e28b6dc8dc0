package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/tai160903/viet-coffee-server/internal/checkout"
	"github.com/tai160903/viet-coffee-server/internal/order"
	"github.com/tai160903/viet-coffee-server/internal/pricing"
	"github.com/tai160903/viet-coffee-server/internal/product"
)

type CheckoutItemRequest struct {
	ProductID     string `json:"product_id" validate:"required"`
	SizeID        string `json:"size_id"`
	TemperatureID string `json:"temperature_id"`
	Quantity      int    `json:"quantity"`
	Notes         string `json:"notes"`
}

// CheckoutRequest is the storefront's submit payload. The payment form is
// excluded from tag validation here; checkout.Validate owns its per-field
// messages.
type CheckoutRequest struct {
	Items      []CheckoutItemRequest `json:"items" validate:"required,min=1,dive"`
	Payment    checkout.PaymentForm  `json:"payment" validate:"-"`
	PickupTime string                `json:"pickup_time"`
	OrderNotes string                `json:"order_notes"`
}

// CheckoutSummary mirrors the payment page's totals block: the discount
// formula, rendered in đồng.
type CheckoutSummary struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	SubtotalDisplay string          `json:"subtotal_display"`
	DiscountDisplay string          `json:"discount_display"`
	TotalDisplay    string          `json:"total_display"`
}

type CheckoutResponse struct {
	Order   *order.Order    `json:"order"`
	Summary CheckoutSummary `json:"summary"`
}

type CheckoutHandler struct {
	svc      *checkout.Service
	products product.Service
	validate *validator.Validate
}

func NewCheckoutHandler(svc *checkout.Service, products product.Service) *CheckoutHandler {
	return &CheckoutHandler{
		svc:      svc,
		products: products,
		validate: validator.New(),
	}
}

func (h *CheckoutHandler) RegisterRoutes(router chi.Router) {
	router.Post("/checkout", h.handleCheckout)
}

func (h *CheckoutHandler) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var requestPayload CheckoutRequest
	if !decodeStrict(w, r, &requestPayload) {
		return
	}
	if !validateStruct(w, h.validate, requestPayload) {
		return
	}

	drafts := make([]*checkout.Draft, 0, len(requestPayload.Items))
	for _, item := range requestPayload.Items {
		p, err := h.products.GetProduct(r.Context(), item.ProductID)
		if err != nil {
			log.Error().Err(err).Str("product_id", item.ProductID).Msg("Failed to resolve checkout product")

			message := "Failed to resolve product"
			if mapErrorToStatusCode(err) == http.StatusNotFound {
				message = "Unknown product: " + item.ProductID
			}

			respondWithError(w, mapErrorToStatusCode(err), message)
			return
		}

		draft := checkout.NewDraft(*p, h.svc.Limits())
		if item.SizeID != "" {
			if err := draft.SelectSize(item.SizeID); err != nil {
				respondWithError(w, http.StatusBadRequest, "Unknown size for product "+item.ProductID)
				return
			}
		}
		if item.TemperatureID != "" {
			if err := draft.SelectTemperature(item.TemperatureID); err != nil {
				respondWithError(w, http.StatusBadRequest, "Unknown temperature for product "+item.ProductID)
				return
			}
		}
		if item.Quantity > 0 {
			draft.SetQuantity(item.Quantity)
		}
		draft.SetNotes(item.Notes)

		drafts = append(drafts, draft)
	}

	created, fieldErrors, err := h.svc.Submit(r.Context(), checkout.Submission{
		Drafts:     drafts,
		Form:       requestPayload.Payment,
		PickupTime: requestPayload.PickupTime,
		OrderNotes: requestPayload.OrderNotes,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to submit checkout")

		clientMessage := "Failed to submit order"
		if errors.Is(err, checkout.ErrEmptyOrder) {
			clientMessage = "Order must contain at least one item"
		}

		respondWithError(w, mapErrorToStatusCode(err), clientMessage)
		return
	}
	if len(fieldErrors) > 0 {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Validation failed",
			Details: fieldErrors,
		})
		return
	}

	summary := h.svc.Summarize(drafts)

	respondWithJSON(w, http.StatusCreated, CheckoutResponse{
		Order: created,
		Summary: CheckoutSummary{
			Subtotal:        summary.Subtotal,
			Discount:        summary.Discount,
			Total:           summary.TotalAfterDiscount(),
			SubtotalDisplay: pricing.FormatVND(summary.Subtotal),
			DiscountDisplay: pricing.FormatVND(summary.Discount),
			TotalDisplay:    pricing.FormatVND(summary.TotalAfterDiscount()),
		},
	})
}

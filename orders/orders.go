package orders

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"amardoctor/globals"
	"amardoctor/state"
	"amardoctor/utils"

	"github.com/julienschmidt/httprouter"
	qrcode "github.com/skip2/go-qrcode"
)

type Handler struct {
	App *state.App
}

func NewHandler(app *state.App) *Handler {
	return &Handler{App: app}
}

func actorID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}

func isAdmin(r *http.Request) bool {
	roles, _ := r.Context().Value(globals.RoleKey).([]string)
	for _, role := range roles {
		if role == globals.AdminActor {
			return true
		}
	}
	return false
}

// Submit turns the caller's cart into a pending order.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Address string `json:"address"`
		Phone   string `json:"phone"`
		Note    string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, ok := h.App.UserByID(actorID(r))
	if !ok {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return
	}

	order, err := h.App.SubmitOrder(r.Context(), user, input.Address, input.Phone, input.Note)
	if err != nil {
		if errors.Is(err, state.ErrValidation) {
			http.Error(w, "আপনার কার্ট খালি", http.StatusBadRequest)
			return
		}
		log.Printf("submitOrder: %v", err)
		http.Error(w, "Failed to submit order", http.StatusInternalServerError)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, order)
}

// ListMine returns the caller's retained orders, newest first.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.App.OrdersFor(actorID(r)))
}

// ListAll returns every retained order across patients. Admin only.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	utils.RespondWithJSON(w, http.StatusOK, h.App.AllOrders())
}

// StagePrice records a per-item price override without touching the stored
// order; overrides take effect only when the order is replied. Admin only.
func (h *Handler) StagePrice(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		Index int    `json:"index"`
		Price string `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := h.App.StageItemPrice(ps.ByName("id"), input.Index, input.Price); err != nil {
		if errors.Is(err, state.ErrNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Invalid item index", http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reply applies staged price overrides, recomputes the total and moves the
// order to replied. A second reply on the same order is rejected. Admin only.
func (h *Handler) Reply(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var input struct {
		ReplyText string `json:"replyText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	order, err := h.App.ReplyOrder(r.Context(), ps.ByName("id"), input.ReplyText)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrNotFound):
			http.Error(w, "Order not found", http.StatusNotFound)
		case errors.Is(err, state.ErrInvalidState):
			http.Error(w, "Order already replied", http.StatusConflict)
		default:
			log.Printf("replyOrder: %v", err)
			http.Error(w, "Failed to reply to order", http.StatusInternalServerError)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, order)
}

// Remove deletes an order without notifying the owner. Admin only.
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.App.RemoveOrder(r.Context(), ps.ByName("id")); err != nil {
		if errors.Is(err, state.ErrNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Printf("removeOrder: %v", err)
		http.Error(w, "Failed to remove order", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// InvoiceQR renders a PNG QR code summarizing the order invoice. Patients can
// fetch their own orders; the admin can fetch any.
func (h *Handler) InvoiceQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	order, ok := h.App.OrderByID(ps.ByName("id"))
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if !isAdmin(r) && order.UserID != actorID(r) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Invoice #%s\n", order.ID)
	fmt.Fprintf(&b, "%s\n", order.UserName)
	fmt.Fprintf(&b, "%s\n", time.UnixMilli(order.Timestamp).Format("2006-01-02"))
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%s x%s @%s\n", item.MedicineName, item.Quantity, item.PricePerUnit)
	}
	fmt.Fprintf(&b, "Total: %.2f", order.TotalPrice)

	png, err := qrcode.Encode(b.String(), qrcode.Medium, 256)
	if err != nil {
		log.Printf("invoiceQR: %v", err)
		http.Error(w, "Failed to generate QR", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fjod/go_shop/internal/domain"
	"go.uber.org/zap"
)

type customerService interface {
	customerLookup
	UpdateAddress(customerID int64, address string) (domain.Customer, error)
}

type CustomerHandler struct {
	customers customerService
	log       *zap.Logger
}

func NewCustomerHandler(customers customerService, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{customers: customers, log: log}
}

type UpdateAddressRequestDTO struct {
	Address string `json:"address"`
}

func toCustomerDTO(c domain.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID, Name: c.Name, Email: c.Email, Address: c.Address}
}

// GET /api/v1/customer
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID := getCustomerID(r.Context())
	if customerID == 0 {
		respondError(w, h.log, http.StatusUnauthorized, "unauthorized", "missing customer authentication")
		return
	}

	c, err := h.customers.Customer(customerID)
	if err != nil {
		handleDomainError(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, toCustomerDTO(c))
}

// PUT /api/v1/customer/address
func (h *CustomerHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	customerID := getCustomerID(r.Context())
	if customerID == 0 {
		respondError(w, h.log, http.StatusUnauthorized, "unauthorized", "missing customer authentication")
		return
	}

	var req UpdateAddressRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.log, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	address := strings.TrimSpace(req.Address)
	if address == "" {
		respondError(w, h.log, http.StatusBadRequest, "invalid_address", "address is required")
		return
	}

	c, err := h.customers.UpdateAddress(customerID, address)
	if err != nil {
		handleDomainError(w, h.log, err)
		return
	}
	respondJSON(w, h.log, http.StatusOK, toCustomerDTO(c))
}

package api

import (
	"net/http"

	"github.com/motorlot/catalog-api/internal/models"
)

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.db.ListCustomers(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	writeJSON(w, http.StatusOK, customers)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	customer, err := s.db.GetCustomer(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, "Customer not found")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	var in models.CustomerInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.FullName == "" {
		writeError(w, http.StatusBadRequest, "Full name is required")
		return
	}

	customer, err := s.db.CreateCustomer(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	var in models.CustomerUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	customer, err := s.db.UpdateCustomer(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if customer == nil {
		writeError(w, http.StatusNotFound, "Customer not found")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	deleted, err := s.db.DeleteCustomer(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Customer not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) customerLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.Email == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	customer, err := s.db.Authenticate(r.Context(), in.Email, in.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if customer == nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (s *Server) changeCustomerPassword(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid customer id")
		return
	}

	var in struct {
		NewPassword string `json:"new_password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "New password is required")
		return
	}

	updated, err := s.db.UpdateCustomerPassword(r.Context(), id, in.NewPassword)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "Customer not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password updated"})
}

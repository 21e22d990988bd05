package api

import (
	"net/http"
	"strconv"

	"github.com/motorlot/catalog-api/internal/models"
)

func (s *Server) listSales(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := models.SaleFilters{
		StartDate: q.Get("start_date"),
		EndDate:   q.Get("end_date"),
	}

	for name, dst := range map[string]*int{
		"customer_id": &f.CustomerID,
		"vehicle_id":  &f.VehicleID,
		"limit":       &f.Limit,
		"offset":      &f.Offset,
	} {
		if raw := q.Get(name); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid value for "+name)
				return
			}
			*dst = n
		}
	}

	sales, err := s.db.ListSales(r.Context(), f)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if sales == nil {
		sales = []models.SaleView{}
	}
	writeJSON(w, http.StatusOK, sales)
}

func (s *Server) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sale id")
		return
	}

	sale, err := s.db.GetSale(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if sale == nil {
		writeError(w, http.StatusNotFound, "Sale not found")
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (s *Server) createSale(w http.ResponseWriter, r *http.Request) {
	var in models.SaleInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	switch {
	case in.VehicleID == 0:
		writeError(w, http.StatusBadRequest, "Vehicle id is required")
		return
	case in.CustomerID == 0:
		writeError(w, http.StatusBadRequest, "Customer id is required")
		return
	case in.SalePrice == 0:
		writeError(w, http.StatusBadRequest, "Sale price is required")
		return
	}

	sale, err := s.db.CreateSale(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sale)
}

func (s *Server) updateSale(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sale id")
		return
	}

	var in models.SaleUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	sale, err := s.db.UpdateSale(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if sale == nil {
		writeError(w, http.StatusNotFound, "Sale not found")
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (s *Server) deleteSale(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sale id")
		return
	}

	deleted, err := s.db.DeleteSale(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Sale not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

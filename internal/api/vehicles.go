package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/motorlot/catalog-api/internal/models"
)

func (s *Server) listVehicles(w http.ResponseWriter, r *http.Request) {
	filters, err := parseVehicleFilters(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	vehicles, err := s.db.ListVehicles(r.Context(), *filters)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if vehicles == nil {
		vehicles = []models.VehicleView{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (s *Server) getVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	vehicle, err := s.db.GetVehicle(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if vehicle == nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) createVehicle(w http.ResponseWriter, r *http.Request) {
	var in models.VehicleInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	// Validate before opening a transaction
	switch {
	case in.Brand == "":
		writeError(w, http.StatusBadRequest, "Brand is required")
		return
	case in.Model == "":
		writeError(w, http.StatusBadRequest, "Model is required")
		return
	case in.YearManufacture == 0:
		writeError(w, http.StatusBadRequest, "Year of manufacture is required")
		return
	case in.FuelType == "":
		writeError(w, http.StatusBadRequest, "Fuel type is required")
		return
	}

	vehicle, err := s.db.CreateVehicle(r.Context(), in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (s *Server) updateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	var in models.VehicleUpdate
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	vehicle, err := s.db.UpdateVehicle(r.Context(), id, in)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if vehicle == nil {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (s *Server) deleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	deleted, err := s.db.DeleteVehicle(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Vehicle not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Photos sub-resource ---

func (s *Server) listVehiclePhotos(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	photos, err := s.db.ListVehiclePhotos(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if photos == nil {
		photos = []models.VehiclePhoto{}
	}
	writeJSON(w, http.StatusOK, photos)
}

func (s *Server) addVehiclePhoto(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	var in struct {
		PhotoURL string `json:"photo_url"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.PhotoURL == "" {
		writeError(w, http.StatusBadRequest, "Photo URL is required")
		return
	}

	photo, err := s.db.AddVehiclePhoto(r.Context(), id, in.PhotoURL)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (s *Server) deleteVehiclePhoto(w http.ResponseWriter, r *http.Request) {
	photoID, err := urlParamInt(r, "photoID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid photo id")
		return
	}

	deleted, err := s.db.DeleteVehiclePhoto(r.Context(), photoID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Photo not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Query parsing ---

func parseVehicleFilters(r *http.Request) (*models.VehicleFilters, error) {
	q := r.URL.Query()
	f := models.VehicleFilters{
		Brand:    q.Get("brand"),
		Model:    q.Get("model"),
		FuelType: q.Get("fuel_type"),
	}

	var err error
	if f.MinPrice, err = queryFloat(q.Get("min_price"), "min_price"); err != nil {
		return nil, err
	}
	if f.MaxPrice, err = queryFloat(q.Get("max_price"), "max_price"); err != nil {
		return nil, err
	}
	if f.MinYear, err = queryInt(q.Get("min_year"), "min_year"); err != nil {
		return nil, err
	}
	if f.MaxYear, err = queryInt(q.Get("max_year"), "max_year"); err != nil {
		return nil, err
	}

	limit, err := queryInt(q.Get("limit"), "limit")
	if err != nil {
		return nil, err
	}
	if limit != nil {
		f.Limit = *limit
	}
	offset, err := queryInt(q.Get("offset"), "offset")
	if err != nil {
		return nil, err
	}
	if offset != nil {
		f.Offset = *offset
	}

	return &f, nil
}

func queryFloat(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &paramError{name}
	}
	return &f, nil
}

func queryInt(raw, name string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{name}
	}
	return &n, nil
}

type paramError struct{ name string }

func (e *paramError) Error() string { return "Invalid value for " + e.name }

func urlParamInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

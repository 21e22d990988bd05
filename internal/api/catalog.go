package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/motorlot/catalog-api/internal/models"
)

// --- Brands ---

func (s *Server) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := s.db.ListBrands(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if brands == nil {
		brands = []models.Brand{}
	}
	writeJSON(w, http.StatusOK, brands)
}

func (s *Server) getBrand(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid brand id")
		return
	}

	brand, err := s.db.GetBrand(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if brand == nil {
		writeError(w, http.StatusNotFound, "Brand not found")
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (s *Server) createBrand(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	brand, err := s.db.CreateBrand(r.Context(), in.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, brand)
}

func (s *Server) updateBrand(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid brand id")
		return
	}

	var in struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	brand, err := s.db.UpdateBrand(r.Context(), id, in.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if brand == nil {
		writeError(w, http.StatusNotFound, "Brand not found")
		return
	}
	writeJSON(w, http.StatusOK, brand)
}

func (s *Server) deleteBrand(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid brand id")
		return
	}

	deleted, err := s.db.DeleteBrand(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Brand not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Models ---

func (s *Server) listModels(w http.ResponseWriter, r *http.Request) {
	brandID := 0
	if raw := r.URL.Query().Get("brand_id"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid value for brand_id")
			return
		}
		brandID = n
	}

	rows, err := s.db.ListModels(r.Context(), brandID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if rows == nil {
		rows = []models.Model{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) getModel(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid model id")
		return
	}

	model, err := s.db.GetModel(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if model == nil {
		writeError(w, http.StatusNotFound, "Model not found")
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) createModel(w http.ResponseWriter, r *http.Request) {
	var in struct {
		BrandID int    `json:"brand_id"`
		Name    string `json:"name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.BrandID == 0 || in.Name == "" {
		writeError(w, http.StatusBadRequest, "Brand id and name are required")
		return
	}

	model, err := s.db.CreateModel(r.Context(), in.BrandID, in.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, model)
}

func (s *Server) updateModel(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid model id")
		return
	}

	var in struct {
		BrandID int    `json:"brand_id"`
		Name    string `json:"name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.BrandID == 0 || in.Name == "" {
		writeError(w, http.StatusBadRequest, "Brand id and name are required")
		return
	}

	model, err := s.db.UpdateModel(r.Context(), id, in.BrandID, in.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if model == nil {
		writeError(w, http.StatusNotFound, "Model not found")
		return
	}
	writeJSON(w, http.StatusOK, model)
}

func (s *Server) deleteModel(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid model id")
		return
	}

	deleted, err := s.db.DeleteModel(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Model not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Items ---

func (s *Server) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.db.ListItems(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	item, err := s.db.GetItem(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"item_name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "Item name is required")
		return
	}

	item, err := s.db.CreateItem(r.Context(), in.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var in struct {
		Name string `json:"item_name"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if in.Name == "" {
		writeError(w, http.StatusBadRequest, "Item name is required")
		return
	}

	item, err := s.db.UpdateItem(r.Context(), id, in.Name)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) deleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	deleted, err := s.db.DeleteItem(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Item not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Fuel Types ---

func (s *Server) listFuelTypes(w http.ResponseWriter, r *http.Request) {
	fuelTypes, err := s.db.ListFuelTypes(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fuelTypes)
}

func (s *Server) getFuelType(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	ft, err := s.db.GetFuelType(r.Context(), code)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if ft == nil {
		writeError(w, http.StatusNotFound, "Fuel type not found")
		return
	}
	writeJSON(w, http.StatusOK, ft)
}

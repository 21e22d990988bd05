package database

import (
	"context"
	"errors"
	"testing"

	"github.com/motorlot/catalog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrandLifecycle(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created, err := db.CreateBrand(ctx, "Fiat")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Fiat", created.Name)

	got, err := db.GetBrand(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)

	updated, err := db.UpdateBrand(ctx, created.ID, "FIAT")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "FIAT", updated.Name)

	deleted, err := db.DeleteBrand(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	missing, err := db.GetBrand(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateBrandDuplicate(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	_, err := db.CreateBrand(ctx, "Fiat")
	require.NoError(t, err)

	_, err = db.CreateBrand(ctx, "Fiat")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)
}

func TestBrandsSortedByName(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	for _, name := range []string{"Volkswagen", "Chevrolet", "Fiat"} {
		_, err := db.CreateBrand(ctx, name)
		require.NoError(t, err)
	}

	brands, err := db.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 3)
	assert.Equal(t, "Chevrolet", brands[0].Name)
	assert.Equal(t, "Fiat", brands[1].Name)
	assert.Equal(t, "Volkswagen", brands[2].Name)
}

func TestModelLifecycle(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	brand, err := db.CreateBrand(ctx, "Fiat")
	require.NoError(t, err)

	created, err := db.CreateModel(ctx, brand.ID, "Uno")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "Uno", created.Name)
	assert.Equal(t, "Fiat", created.BrandName)

	// Same name under another brand is allowed
	other, err := db.CreateBrand(ctx, "VW")
	require.NoError(t, err)
	_, err = db.CreateModel(ctx, other.ID, "Uno")
	require.NoError(t, err)

	// Same brand and name is not
	_, err = db.CreateModel(ctx, brand.ID, "Uno")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

	// Unknown brand
	_, err = db.CreateModel(ctx, 999, "Ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidReference), "got %v", err)

	byBrand, err := db.ListModels(ctx, brand.ID)
	require.NoError(t, err)
	require.Len(t, byBrand, 1)
	assert.Equal(t, brand.ID, byBrand[0].BrandID)

	all, err := db.ListModels(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	updated, err := db.UpdateModel(ctx, created.ID, brand.ID, "Mobi")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Mobi", updated.Name)

	gone, err := db.UpdateModel(ctx, 999, brand.ID, "Nope")
	require.NoError(t, err)
	assert.Nil(t, gone)

	deleted, err := db.DeleteModel(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestItemLifecycle(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created, err := db.CreateItem(ctx, "Ar condicionado")
	require.NoError(t, err)
	require.NotNil(t, created)

	_, err = db.CreateItem(ctx, "Ar condicionado")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConflict), "got %v", err)

	updated, err := db.UpdateItem(ctx, created.ID, "Ar digital")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Ar digital", updated.Name)

	items, err := db.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	deleted, err := db.DeleteItem(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestFuelTypesSeeded(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	// Re-seeding is a no-op, not an error
	require.NoError(t, db.seedFuelTypes())

	fuels, err := db.ListFuelTypes(ctx)
	require.NoError(t, err)
	require.Len(t, fuels, 4)

	byCode := make(map[string]string)
	for _, f := range fuels {
		byCode[f.Code] = f.Description
	}
	assert.Equal(t, "Gasolina", byCode["G"])
	assert.Equal(t, "Álcool", byCode["A"])
	assert.Equal(t, "Diesel", byCode["D"])
	assert.Equal(t, "Flex", byCode["F"])

	flex, err := db.GetFuelType(ctx, "F")
	require.NoError(t, err)
	require.NotNil(t, flex)
	assert.Equal(t, "Flex", flex.Description)

	unknown, err := db.GetFuelType(ctx, "X")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestVehiclePhotoSubResource(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	v := createVehicle(t, db, models.VehicleInput{
		Brand: "Fiat", Model: "Uno", YearManufacture: 2018, FuelType: "G",
	})

	photo, err := db.AddVehiclePhoto(ctx, v.ID, "https://cdn.example.com/extra.jpg")
	require.NoError(t, err)
	require.NotNil(t, photo)
	assert.Equal(t, v.ID, photo.VehicleID)

	photos, err := db.ListVehiclePhotos(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, photos, 1)

	got, err := db.GetVehiclePhoto(ctx, photo.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "https://cdn.example.com/extra.jpg", got.PhotoURL)

	_, err = db.AddVehiclePhoto(ctx, 999, "https://cdn.example.com/nope.jpg")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidReference), "got %v", err)

	deleted, err := db.DeleteVehiclePhoto(ctx, photo.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

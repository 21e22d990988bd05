package database

import (
	"context"
	"errors"
	"testing"

	"github.com/motorlot/catalog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func createVehicle(t *testing.T, db *DB, in models.VehicleInput) *models.VehicleView {
	t.Helper()
	v, err := db.CreateVehicle(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, v)
	return v
}

func TestCreateAndGetVehicleRoundTrip(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created := createVehicle(t, db, models.VehicleInput{
		Brand:             "Fiat",
		Model:             "Uno",
		YearManufacture:   2018,
		FuelType:          "F",
		SimpleDescription: strPtr("Único dono"),
		Mileage:           intPtr(45000),
		AdPrice:           floatPtr(35000),
		FipePrice:         floatPtr(37500.50),
		Items:             []string{"Ar condicionado", "Direção hidráulica"},
		Photos:            []string{"https://cdn.example.com/uno-1.jpg"},
	})

	assert.Equal(t, "Fiat", created.Brand)
	assert.Equal(t, "Uno", created.Model)
	assert.Equal(t, 2018, created.YearManufacture)
	assert.Equal(t, "F", created.FuelType)
	assert.Equal(t, 35000.0, *created.AdPrice)
	assert.Equal(t, 37500.50, *created.FipePrice)
	assert.Equal(t, []string{"Ar condicionado", "Direção hidráulica"}, created.Items)
	assert.Equal(t, []string{"https://cdn.example.com/uno-1.jpg"}, created.Photos)

	got, err := db.GetVehicle(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateVehicleWithoutAssociations(t *testing.T) {
	db := NewTest(t)

	v := createVehicle(t, db, models.VehicleInput{
		Brand: "VW", Model: "Gol", YearManufacture: 2015, FuelType: "G",
	})

	// Empty arrays, never null
	assert.NotNil(t, v.Items)
	assert.NotNil(t, v.Photos)
	assert.Empty(t, v.Items)
	assert.Empty(t, v.Photos)
	assert.Nil(t, v.AdPrice)
	assert.Nil(t, v.Mileage)
}

func TestGetVehicleMissing(t *testing.T) {
	db := NewTest(t)

	v, err := db.GetVehicle(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestLookupResolverReusesRows(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	first := createVehicle(t, db, models.VehicleInput{
		Brand: "Fiat", Model: "Uno", YearManufacture: 2012, FuelType: "G",
		Items: []string{"Vidro elétrico"},
	})
	second := createVehicle(t, db, models.VehicleInput{
		Brand: "Fiat", Model: "Uno", YearManufacture: 2020, FuelType: "F",
		Items: []string{"Vidro elétrico"},
	})
	assert.NotEqual(t, first.ID, second.ID)

	brands, err := db.ListBrands(ctx)
	require.NoError(t, err)
	require.Len(t, brands, 1)
	assert.Equal(t, "Fiat", brands[0].Name)

	modelRows, err := db.ListModels(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, modelRows, 1)

	items, err := db.ListItems(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestListVehiclesFiltersAndOrder(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	createVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Uno", YearManufacture: 2010, FuelType: "G", AdPrice: floatPtr(20000)})
	createVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Argo", YearManufacture: 2020, FuelType: "F", AdPrice: floatPtr(60000)})
	createVehicle(t, db, models.VehicleInput{Brand: "VW", Model: "Gol", YearManufacture: 2016, FuelType: "F", AdPrice: floatPtr(40000)})
	createVehicle(t, db, models.VehicleInput{Brand: "VW", Model: "Polo", YearManufacture: 2022, FuelType: "D", AdPrice: floatPtr(90000)})

	t.Run("no filters, newest first", func(t *testing.T) {
		all, err := db.ListVehicles(ctx, models.VehicleFilters{})
		require.NoError(t, err)
		require.Len(t, all, 4)
		for i := 1; i < len(all); i++ {
			assert.Greater(t, all[i-1].ID, all[i].ID)
		}
	})

	t.Run("brand", func(t *testing.T) {
		got, err := db.ListVehicles(ctx, models.VehicleFilters{Brand: "Fiat"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, v := range got {
			assert.Equal(t, "Fiat", v.Brand)
		}
	})

	t.Run("model", func(t *testing.T) {
		got, err := db.ListVehicles(ctx, models.VehicleFilters{Model: "Gol"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "VW", got[0].Brand)
	})

	t.Run("fuel type", func(t *testing.T) {
		got, err := db.ListVehicles(ctx, models.VehicleFilters{FuelType: "F"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("price bounds inclusive", func(t *testing.T) {
		got, err := db.ListVehicles(ctx, models.VehicleFilters{MinPrice: floatPtr(40000), MaxPrice: floatPtr(60000)})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, v := range got {
			assert.GreaterOrEqual(t, *v.AdPrice, 40000.0)
			assert.LessOrEqual(t, *v.AdPrice, 60000.0)
		}
	})

	t.Run("year bounds", func(t *testing.T) {
		got, err := db.ListVehicles(ctx, models.VehicleFilters{MinYear: intPtr(2016), MaxYear: intPtr(2020)})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, v := range got {
			assert.GreaterOrEqual(t, v.YearManufacture, 2016)
			assert.LessOrEqual(t, v.YearManufacture, 2020)
		}
	})

	t.Run("combined", func(t *testing.T) {
		got, err := db.ListVehicles(ctx, models.VehicleFilters{Brand: "VW", MinPrice: floatPtr(50000)})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Polo", got[0].Model)
	})
}

func TestListVehiclesPagination(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	var ids []int
	for year := 2010; year < 2015; year++ {
		v := createVehicle(t, db, models.VehicleInput{Brand: "Ford", Model: "Ka", YearManufacture: year, FuelType: "G"})
		ids = append(ids, v.ID)
	}

	page1, err := db.ListVehicles(ctx, models.VehicleFilters{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, ids[4], page1[0].ID)
	assert.Equal(t, ids[3], page1[1].ID)

	page2, err := db.ListVehicles(ctx, models.VehicleFilters{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.Equal(t, ids[2], page2[0].ID)
	assert.Equal(t, ids[1], page2[1].ID)

	// Offset without a limit returns everything past the skipped rows
	rest, err := db.ListVehicles(ctx, models.VehicleFilters{Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest, 3)
	assert.Equal(t, ids[2], rest[0].ID)
	assert.Equal(t, ids[0], rest[2].ID)
}

func TestAssociationsDoNotCrossMultiply(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created := createVehicle(t, db, models.VehicleInput{
		Brand: "Chevrolet", Model: "Onix", YearManufacture: 2021, FuelType: "F",
		Items:  []string{"Airbag", "ABS", "Central multimídia"},
		Photos: []string{"https://cdn.example.com/onix-1.jpg", "https://cdn.example.com/onix-2.jpg"},
	})

	got, err := db.GetVehicle(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	// 3 items x 2 photos must not become 6 of anything
	assert.Len(t, got.Items, 3)
	assert.Len(t, got.Photos, 2)

	seen := make(map[string]bool)
	for _, item := range got.Items {
		assert.False(t, seen[item], "duplicate item %q", item)
		seen[item] = true
	}

	list, err := db.ListVehicles(ctx, models.VehicleFilters{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Items, 3)
	assert.Len(t, list[0].Photos, 2)
}

func TestUpdateVehicleSparse(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created := createVehicle(t, db, models.VehicleInput{
		Brand: "Fiat", Model: "Toro", YearManufacture: 2019, FuelType: "D",
		AdPrice: floatPtr(80000),
		Items:   []string{"Engate", "Capota marítima"},
	})

	updated, err := db.UpdateVehicle(ctx, created.ID, models.VehicleUpdate{AdPrice: floatPtr(9000)})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, 9000.0, *updated.AdPrice)
	assert.Equal(t, "Fiat", updated.Brand)
	assert.Equal(t, "Toro", updated.Model)
	assert.Equal(t, 2019, updated.YearManufacture)
	assert.ElementsMatch(t, []string{"Engate", "Capota marítima"}, updated.Items)
}

func TestUpdateVehicleClearItemsKeepsPhotos(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created := createVehicle(t, db, models.VehicleInput{
		Brand: "VW", Model: "T-Cross", YearManufacture: 2022, FuelType: "F",
		Items:  []string{"Teto solar"},
		Photos: []string{"https://cdn.example.com/tcross.jpg"},
	})

	updated, err := db.UpdateVehicle(ctx, created.ID, models.VehicleUpdate{Items: []string{}})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Empty(t, updated.Items)
	assert.Equal(t, []string{"https://cdn.example.com/tcross.jpg"}, updated.Photos)
}

func TestUpdateVehicleReplacesPhotos(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created := createVehicle(t, db, models.VehicleInput{
		Brand: "Honda", Model: "Civic", YearManufacture: 2020, FuelType: "F",
		Photos: []string{"https://cdn.example.com/old-1.jpg", "https://cdn.example.com/old-2.jpg"},
	})

	updated, err := db.UpdateVehicle(ctx, created.ID, models.VehicleUpdate{
		Photos: []string{"https://cdn.example.com/new.jpg"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, []string{"https://cdn.example.com/new.jpg"}, updated.Photos)
}

func TestUpdateModelWithoutBrandIsSkipped(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created := createVehicle(t, db, models.VehicleInput{
		Brand: "Fiat", Model: "Uno", YearManufacture: 2015, FuelType: "G",
	})

	// Model resolution requires the brand in the same payload
	updated, err := db.UpdateVehicle(ctx, created.ID, models.VehicleUpdate{Model: strPtr("Mobi")})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Uno", updated.Model)

	both, err := db.UpdateVehicle(ctx, created.ID, models.VehicleUpdate{Brand: strPtr("Fiat"), Model: strPtr("Mobi")})
	require.NoError(t, err)
	require.NotNil(t, both)
	assert.Equal(t, "Mobi", both.Model)
}

func TestUpdateVehicleMissing(t *testing.T) {
	db := NewTest(t)

	v, err := db.UpdateVehicle(context.Background(), 4242, models.VehicleUpdate{AdPrice: floatPtr(100)})
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCreateVehicleInvalidFuelTypeRollsBack(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	_, err := db.CreateVehicle(ctx, models.VehicleInput{
		Brand: "Renault", Model: "Kwid", YearManufacture: 2023, FuelType: "X",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidReference), "got %v", err)

	// Brand/model created inside the failed transaction must be rolled back
	brands, err := db.ListBrands(ctx)
	require.NoError(t, err)
	assert.Empty(t, brands)

	modelRows, err := db.ListModels(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, modelRows)
}

func TestDeleteVehicleCascades(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	created := createVehicle(t, db, models.VehicleInput{
		Brand: "Fiat", Model: "Uno", YearManufacture: 2015, FuelType: "G",
		Items:  []string{"Alarme"},
		Photos: []string{"https://cdn.example.com/uno.jpg"},
	})

	deleted, err := db.DeleteVehicle(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := db.GetVehicle(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	photos, err := db.ListVehiclePhotos(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, photos)

	// Lookup rows survive vehicle deletion
	brands, err := db.ListBrands(ctx)
	require.NoError(t, err)
	assert.Len(t, brands, 1)

	deleted, err = db.DeleteVehicle(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestVehiclePriceRange(t *testing.T) {
	db := NewTest(t)
	ctx := context.Background()

	createVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Uno", YearManufacture: 2010, FuelType: "G", AdPrice: floatPtr(20000)})
	createVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Argo", YearManufacture: 2020, FuelType: "F", AdPrice: floatPtr(60000)})
	createVehicle(t, db, models.VehicleInput{Brand: "VW", Model: "Gol", YearManufacture: 2016, FuelType: "F"})

	all, err := db.VehiclePriceRange(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, all.Count) // unpriced vehicle excluded
	assert.Equal(t, 20000.0, all.MinPrice)
	assert.Equal(t, 60000.0, all.MaxPrice)
	assert.Equal(t, 40000.0, all.AvgPrice)

	fiat, err := db.VehiclePriceRange(ctx, "Fiat")
	require.NoError(t, err)
	assert.Equal(t, 2, fiat.Count)

	none, err := db.VehiclePriceRange(ctx, "Tesla")
	require.NoError(t, err)
	assert.Equal(t, 0, none.Count)
}

package dialogflow

import (
	"context"
	"testing"

	"github.com/motorlot/catalog-api/internal/database"
	"github.com/motorlot/catalog-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func intPtr(n int) *int { return &n }

func seedVehicle(t *testing.T, db *database.DB, in models.VehicleInput) *models.VehicleView {
	t.Helper()
	v, err := db.CreateVehicle(context.Background(), in)
	require.NoError(t, err)
	return v
}

func request(intent string, params map[string]interface{}) *WebhookRequest {
	return &WebhookRequest{QueryResult: &QueryResult{
		Intent:     Intent{DisplayName: intent},
		Parameters: params,
	}}
}

func TestHandleInvalidRequest(t *testing.T) {
	wh := NewWebhook(database.NewTest(t), 10)

	resp := wh.Handle(context.Background(), nil)
	assert.Equal(t, "Invalid webhook request", resp.FulfillmentText)

	resp = wh.Handle(context.Background(), &WebhookRequest{})
	assert.Equal(t, "Invalid webhook request", resp.FulfillmentText)
}

func TestHandleUnknownIntent(t *testing.T) {
	wh := NewWebhook(database.NewTest(t), 10)

	resp := wh.Handle(context.Background(), request("order.pizza", nil))
	assert.Contains(t, resp.FulfillmentText, "não entendi")
}

func TestSearchVehiclesIntent(t *testing.T) {
	db := database.NewTest(t)
	wh := NewWebhook(db, 10)
	ctx := context.Background()

	seedVehicle(t, db, models.VehicleInput{
		Brand: "Fiat", Model: "Uno", YearManufacture: 2018, FuelType: "F",
		AdPrice: floatPtr(35000),
		Photos:  []string{"https://cdn.example.com/uno.jpg"},
	})
	seedVehicle(t, db, models.VehicleInput{
		Brand: "VW", Model: "Gol", YearManufacture: 2016, FuelType: "G", AdPrice: floatPtr(40000),
	})

	t.Run("by brand", func(t *testing.T) {
		resp := wh.Handle(ctx, request("search.vehicles", map[string]interface{}{"marca": "Fiat"}))
		assert.Contains(t, resp.FulfillmentText, "Encontrei 1 veículo")
		assert.Contains(t, resp.FulfillmentText, "Fiat Uno (2018)")
		assert.Contains(t, resp.FulfillmentText, "R$ 35.000")

		// Text message plus one card per listed vehicle
		require.Len(t, resp.FulfillmentMessages, 2)
		card := resp.FulfillmentMessages[1].Card
		require.NotNil(t, card)
		assert.Equal(t, "https://cdn.example.com/uno.jpg", card.ImageURI)
	})

	t.Run("by price, numbers arrive as float64", func(t *testing.T) {
		resp := wh.Handle(ctx, request("buscar.veiculos", map[string]interface{}{"max_price": float64(36000)}))
		assert.Contains(t, resp.FulfillmentText, "Encontrei 1 veículo")
		assert.Contains(t, resp.FulfillmentText, "Fiat Uno")
	})

	t.Run("no matches", func(t *testing.T) {
		resp := wh.Handle(ctx, request("search.vehicles", map[string]interface{}{"marca": "Tesla"}))
		assert.Contains(t, resp.FulfillmentText, "Não encontrei veículos da marca Tesla")
	})
}

func TestGetVehicleIntent(t *testing.T) {
	db := database.NewTest(t)
	wh := NewWebhook(db, 10)
	ctx := context.Background()

	v := seedVehicle(t, db, models.VehicleInput{
		Brand: "Fiat", Model: "Toro", YearManufacture: 2021, FuelType: "D",
		AdPrice: floatPtr(120000), Mileage: intPtr(30000),
	})

	resp := wh.Handle(ctx, request("get.vehicle", map[string]interface{}{"vehicle_id": float64(v.ID)}))
	assert.Contains(t, resp.FulfillmentText, "Fiat Toro")
	assert.Contains(t, resp.FulfillmentText, "R$ 120.000")
	assert.Contains(t, resp.FulfillmentText, "30.000 km")
	assert.Contains(t, resp.FulfillmentText, "Diesel")

	resp = wh.Handle(ctx, request("ver.veiculo", map[string]interface{}{"id": float64(999)}))
	assert.Contains(t, resp.FulfillmentText, "não encontrei")

	resp = wh.Handle(ctx, request("get.vehicle", nil))
	assert.Contains(t, resp.FulfillmentText, "informe o ID")
}

func TestListBrandsIntent(t *testing.T) {
	db := database.NewTest(t)
	wh := NewWebhook(db, 10)
	ctx := context.Background()

	resp := wh.Handle(ctx, request("list.brands", nil))
	assert.Contains(t, resp.FulfillmentText, "Ainda não temos marcas")

	seedVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Uno", YearManufacture: 2018, FuelType: "G"})
	seedVehicle(t, db, models.VehicleInput{Brand: "VW", Model: "Gol", YearManufacture: 2016, FuelType: "G"})

	resp = wh.Handle(ctx, request("listar.marcas", nil))
	assert.Contains(t, resp.FulfillmentText, "2 marcas")
	assert.Contains(t, resp.FulfillmentText, "Fiat")

	var quick *QuickReplies
	for _, m := range resp.FulfillmentMessages {
		if m.QuickReplies != nil {
			quick = m.QuickReplies
		}
	}
	require.NotNil(t, quick)
	assert.ElementsMatch(t, []string{"Fiat", "VW"}, quick.QuickReplies)
}

func TestListModelsIntent(t *testing.T) {
	db := database.NewTest(t)
	wh := NewWebhook(db, 10)
	ctx := context.Background()

	seedVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Uno", YearManufacture: 2018, FuelType: "G"})
	seedVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Argo", YearManufacture: 2020, FuelType: "F"})

	resp := wh.Handle(ctx, request("list.models", map[string]interface{}{"marca": "Fiat"}))
	assert.Contains(t, resp.FulfillmentText, "Modelos Fiat disponíveis")
	assert.Contains(t, resp.FulfillmentText, "Fiat Uno")
	assert.Contains(t, resp.FulfillmentText, "Fiat Argo")

	resp = wh.Handle(ctx, request("list.models", map[string]interface{}{"marca": "Tesla"}))
	assert.Contains(t, resp.FulfillmentText, "Não encontrei a marca Tesla")
}

func TestPriceRangeIntent(t *testing.T) {
	db := database.NewTest(t)
	wh := NewWebhook(db, 10)
	ctx := context.Background()

	resp := wh.Handle(ctx, request("get.price.range", nil))
	assert.Contains(t, resp.FulfillmentText, "Não encontrei veículos")

	seedVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Uno", YearManufacture: 2018, FuelType: "G", AdPrice: floatPtr(30000)})
	seedVehicle(t, db, models.VehicleInput{Brand: "Fiat", Model: "Argo", YearManufacture: 2020, FuelType: "F", AdPrice: floatPtr(50000)})

	resp = wh.Handle(ctx, request("faixa.preco", nil))
	assert.Contains(t, resp.FulfillmentText, "2 veículos")
	assert.Contains(t, resp.FulfillmentText, "R$ 30.000")
	assert.Contains(t, resp.FulfillmentText, "R$ 50.000")
	assert.Contains(t, resp.FulfillmentText, "média de R$ 40.000")
}

func TestWelcomeAndHelpIntents(t *testing.T) {
	wh := NewWebhook(database.NewTest(t), 10)
	ctx := context.Background()

	resp := wh.Handle(ctx, request("welcome", nil))
	assert.Contains(t, resp.FulfillmentText, "Bem-vindo")

	var quick *QuickReplies
	for _, m := range resp.FulfillmentMessages {
		if m.QuickReplies != nil {
			quick = m.QuickReplies
		}
	}
	require.NotNil(t, quick)
	assert.Contains(t, quick.QuickReplies, "Ver veículos")

	resp = wh.Handle(ctx, request("ajuda", nil))
	assert.Contains(t, resp.FulfillmentText, "Buscar veículos")
}

func TestResultLimitCapsSearch(t *testing.T) {
	db := database.NewTest(t)
	wh := NewWebhook(db, 3)
	ctx := context.Background()

	for year := 2010; year < 2016; year++ {
		seedVehicle(t, db, models.VehicleInput{Brand: "Ford", Model: "Ka", YearManufacture: year, FuelType: "G"})
	}

	resp := wh.Handle(ctx, request("search.vehicles", nil))
	assert.Contains(t, resp.FulfillmentText, "Encontrei 3 veículos")
}

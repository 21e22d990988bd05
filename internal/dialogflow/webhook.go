package dialogflow

import (
	"context"
	"strconv"

	"github.com/motorlot/catalog-api/internal/database"
	"github.com/motorlot/catalog-api/internal/models"
	"github.com/rs/zerolog/log"
)

// Webhook routes DialogFlow fulfillment requests to catalog queries.
type Webhook struct {
	db          *database.DB
	resultLimit int
}

func NewWebhook(db *database.DB, resultLimit int) *Webhook {
	if resultLimit <= 0 {
		resultLimit = 10
	}
	return &Webhook{db: db, resultLimit: resultLimit}
}

// Handle processes one fulfillment request. Failures answer with an
// apologetic text, never an error status: DialogFlow treats non-200
// responses as fulfillment outages.
func (wh *Webhook) Handle(ctx context.Context, req *WebhookRequest) *WebhookResponse {
	if req == nil || req.QueryResult == nil {
		return errorResponse("Invalid webhook request")
	}

	intent := req.QueryResult.Intent.DisplayName
	params := req.QueryResult.Parameters
	log.Debug().Str("intent", intent).Msg("dialogflow webhook request")

	switch intent {
	case "search.vehicles", "buscar.veiculos":
		return wh.searchVehicles(ctx, params)
	case "get.vehicle", "ver.veiculo":
		return wh.getVehicle(ctx, params)
	case "list.brands", "listar.marcas":
		return wh.listBrands(ctx)
	case "list.models", "listar.modelos":
		return wh.listModels(ctx, params)
	case "get.price.range", "faixa.preco":
		return wh.priceRange(ctx, params)
	case "welcome", "boas-vindas":
		return wh.welcome()
	case "help", "ajuda":
		return wh.help()
	default:
		return errorResponse("Desculpe, não entendi o que você precisa. Você pode pedir para ver veículos, marcas ou modelos disponíveis.")
	}
}

func (wh *Webhook) searchVehicles(ctx context.Context, params map[string]interface{}) *WebhookResponse {
	filters := models.VehicleFilters{
		Brand:    paramString(params, "brand", "marca"),
		Model:    paramString(params, "model", "modelo"),
		FuelType: paramString(params, "fuel_type", "combustivel"),
		MinPrice: paramFloat(params, "min_price", "preco_minimo"),
		MaxPrice: paramFloat(params, "max_price", "preco_maximo"),
		MinYear:  paramInt(params, "min_year", "ano_minimo"),
		MaxYear:  paramInt(params, "max_year", "ano_maximo"),
		Limit:    wh.resultLimit,
	}

	vehicles, err := wh.db.ListVehicles(ctx, filters)
	if err != nil {
		log.Error().Err(err).Msg("dialogflow vehicle search failed")
		return errorResponse("Não consegui buscar os veículos. Por favor, tente novamente.")
	}
	return vehicleListResponse(vehicles, filters)
}

func (wh *Webhook) getVehicle(ctx context.Context, params map[string]interface{}) *WebhookResponse {
	id := paramInt(params, "vehicle_id", "id")
	if id == nil {
		return errorResponse("Por favor, informe o ID do veículo que deseja ver.")
	}

	vehicle, err := wh.db.GetVehicle(ctx, *id)
	if err != nil {
		log.Error().Err(err).Int("vehicle_id", *id).Msg("dialogflow vehicle lookup failed")
		return errorResponse("Não consegui encontrar este veículo.")
	}
	return vehicleResponse(vehicle)
}

func (wh *Webhook) listBrands(ctx context.Context) *WebhookResponse {
	brands, err := wh.db.ListBrands(ctx)
	if err != nil {
		log.Error().Err(err).Msg("dialogflow brand listing failed")
		return errorResponse("Não consegui listar as marcas. Por favor, tente novamente.")
	}
	return brandsResponse(brands)
}

func (wh *Webhook) listModels(ctx context.Context, params map[string]interface{}) *WebhookResponse {
	brand := paramString(params, "brand", "marca")

	brandID := 0
	if brand != "" {
		brands, err := wh.db.ListBrands(ctx)
		if err != nil {
			log.Error().Err(err).Msg("dialogflow model listing failed")
			return errorResponse("Não consegui listar os modelos. Por favor, tente novamente.")
		}
		for _, b := range brands {
			if b.Name == brand {
				brandID = b.ID
				break
			}
		}
		if brandID == 0 {
			return errorResponse("Não encontrei a marca " + brand + ".")
		}
	}

	rows, err := wh.db.ListModels(ctx, brandID)
	if err != nil {
		log.Error().Err(err).Msg("dialogflow model listing failed")
		return errorResponse("Não consegui listar os modelos. Por favor, tente novamente.")
	}
	return modelsResponse(rows, brand)
}

func (wh *Webhook) priceRange(ctx context.Context, params map[string]interface{}) *WebhookResponse {
	brand := paramString(params, "brand", "marca")

	pr, err := wh.db.VehiclePriceRange(ctx, brand)
	if err != nil {
		log.Error().Err(err).Msg("dialogflow price range failed")
		return errorResponse("Não consegui calcular a faixa de preço. Por favor, tente novamente.")
	}
	return priceRangeResponse(pr, brand)
}

func (wh *Webhook) welcome() *WebhookResponse {
	return quickRepliesResponse(
		"Olá! 👋 Bem-vindo à nossa loja de veículos. Posso te ajudar a encontrar o carro ideal. O que você gostaria de fazer?",
		[]string{"Ver veículos", "Ver marcas", "Faixa de preço"})
}

func (wh *Webhook) help() *WebhookResponse {
	return textResponse("Você pode me pedir para:\n" +
		"• Buscar veículos por marca, modelo, preço ou ano\n" +
		"• Ver os detalhes de um veículo pelo ID\n" +
		"• Listar as marcas e modelos disponíveis\n" +
		"• Mostrar a faixa de preço do estoque")
}

// --- Parameter extraction ---

// DialogFlow sends parameters loosely typed: numbers arrive as float64, but
// numeric entities can also come through as strings, and unfilled slots as
// empty strings.

func paramString(params map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := params[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func paramFloat(params map[string]interface{}, keys ...string) *float64 {
	for _, key := range keys {
		switch v := params[key].(type) {
		case float64:
			if v != 0 {
				f := v
				return &f
			}
		case string:
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

func paramInt(params map[string]interface{}, keys ...string) *int {
	if f := paramFloat(params, keys...); f != nil {
		n := int(*f)
		return &n
	}
	return nil
}

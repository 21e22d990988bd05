package dialogflow

import (
	"fmt"
	"strings"

	"github.com/motorlot/catalog-api/internal/models"
)

var fuelLabels = map[string]string{
	"G": "Gasolina",
	"A": "Álcool",
	"D": "Diesel",
	"F": "Flex",
}

// textResponse builds a plain fulfillment text answer.
func textResponse(text string) *WebhookResponse {
	return &WebhookResponse{
		FulfillmentText:     text,
		FulfillmentMessages: []Message{{Text: &TextMessage{Text: []string{text}}}},
	}
}

// errorResponse is a user-facing apology; the webhook never answers DialogFlow
// with an HTTP error.
func errorResponse(message string) *WebhookResponse {
	return textResponse(message)
}

func quickRepliesResponse(text string, replies []string) *WebhookResponse {
	resp := textResponse(text)
	resp.FulfillmentMessages = append(resp.FulfillmentMessages, Message{
		QuickReplies: &QuickReplies{Title: text, QuickReplies: replies},
	})
	return resp
}

func vehicleText(v *models.VehicleView) string {
	price := "Preço não disponível"
	if v.AdPrice != nil {
		price = "R$ " + formatNumber(*v.AdPrice)
	}
	mileage := "KM não informado"
	if v.Mileage != nil {
		mileage = formatNumber(float64(*v.Mileage)) + " km"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚗 *%s %s* (%d)\n", v.Brand, v.Model, v.YearManufacture)
	fmt.Fprintf(&b, "💰 Preço: %s\n", price)
	fmt.Fprintf(&b, "📏 Quilometragem: %s\n", mileage)

	if label, ok := fuelLabels[v.FuelType]; ok {
		fmt.Fprintf(&b, "⛽ Combustível: %s\n", label)
	} else if v.FuelType != "" {
		fmt.Fprintf(&b, "⛽ Combustível: %s\n", v.FuelType)
	}

	if v.SimpleDescription != nil && *v.SimpleDescription != "" {
		fmt.Fprintf(&b, "\n📝 %s", *v.SimpleDescription)
	}
	return b.String()
}

func vehicleCard(v *models.VehicleView) Message {
	price := "Preço não disponível"
	if v.AdPrice != nil {
		price = "R$ " + formatNumber(*v.AdPrice)
	}
	mileage := "N/A"
	if v.Mileage != nil {
		mileage = formatNumber(float64(*v.Mileage)) + " km"
	}
	fuel := "N/A"
	if label, ok := fuelLabels[v.FuelType]; ok {
		fuel = label
	} else if v.FuelType != "" {
		fuel = v.FuelType
	}

	card := &Card{
		Title:    fmt.Sprintf("%s %s (%d)", v.Brand, v.Model, v.YearManufacture),
		Subtitle: fmt.Sprintf("%s | %s | %s", price, mileage, fuel),
	}
	if len(v.Photos) > 0 {
		card.ImageURI = v.Photos[0]
	}
	if v.ID != 0 {
		card.Buttons = []CardButton{{
			Text:     "Ver detalhes",
			Postback: fmt.Sprintf("Ver veículo %d", v.ID),
		}}
	}
	return Message{Card: card}
}

func vehicleResponse(v *models.VehicleView) *WebhookResponse {
	if v == nil {
		return textResponse("Desculpe, não encontrei este veículo.")
	}
	resp := textResponse(vehicleText(v))
	resp.FulfillmentMessages = append(resp.FulfillmentMessages, vehicleCard(v))
	return resp
}

func vehicleListResponse(vehicles []models.VehicleView, f models.VehicleFilters) *WebhookResponse {
	if len(vehicles) == 0 {
		message := "Não encontrei veículos"
		if f.Brand != "" {
			message += " da marca " + f.Brand
		}
		if f.Model != "" {
			message += " modelo " + f.Model
		}
		if f.MinPrice != nil || f.MaxPrice != nil {
			message += " na faixa de preço especificada"
		}
		message += ". Que tal tentar outros filtros?"
		return textResponse(message)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Encontrei %d veículo%s", len(vehicles), plural(len(vehicles)))
	if f.Brand != "" {
		b.WriteString(" da marca " + f.Brand)
	}
	if f.Model != "" {
		b.WriteString(" modelo " + f.Model)
	}
	b.WriteString(":\n\n")

	displayLimit := len(vehicles)
	if displayLimit > 5 {
		displayLimit = 5
	}
	for i := 0; i < displayLimit; i++ {
		v := vehicles[i]
		price := "Preço sob consulta"
		if v.AdPrice != nil {
			price = "R$ " + formatNumber(*v.AdPrice)
		}
		fmt.Fprintf(&b, "%d. %s %s (%d) - %s\n", i+1, v.Brand, v.Model, v.YearManufacture, price)
	}
	if rest := len(vehicles) - displayLimit; rest > 0 {
		fmt.Fprintf(&b, "\n...e mais %d veículo%s.", rest, plural(rest))
	}

	resp := textResponse(b.String())
	for i := 0; i < displayLimit; i++ {
		resp.FulfillmentMessages = append(resp.FulfillmentMessages, vehicleCard(&vehicles[i]))
	}
	return resp
}

func brandsResponse(brands []models.Brand) *WebhookResponse {
	if len(brands) == 0 {
		return textResponse("Ainda não temos marcas cadastradas.")
	}

	names := make([]string, len(brands))
	for i, b := range brands {
		names[i] = b.Name
	}
	text := fmt.Sprintf("Trabalhamos com %d marca%s: %s. De qual você gostaria de ver os veículos?",
		len(brands), plural(len(brands)), strings.Join(names, ", "))

	replies := names
	if len(replies) > 10 {
		replies = replies[:10]
	}
	return quickRepliesResponse(text, replies)
}

func modelsResponse(modelRows []models.Model, brand string) *WebhookResponse {
	if len(modelRows) == 0 {
		if brand != "" {
			return textResponse(fmt.Sprintf("Não encontrei modelos da marca %s.", brand))
		}
		return textResponse("Ainda não temos modelos cadastrados.")
	}

	var b strings.Builder
	if brand != "" {
		fmt.Fprintf(&b, "Modelos %s disponíveis:\n", brand)
	} else {
		b.WriteString("Modelos disponíveis:\n")
	}
	for _, m := range modelRows {
		fmt.Fprintf(&b, "• %s %s\n", m.BrandName, m.Name)
	}
	return textResponse(b.String())
}

func priceRangeResponse(pr *models.PriceRange, brand string) *WebhookResponse {
	if pr == nil || pr.Count == 0 {
		if brand != "" {
			return textResponse(fmt.Sprintf("Não encontrei veículos da marca %s com preço anunciado.", brand))
		}
		return textResponse("Não encontrei veículos com preço anunciado.")
	}

	scope := "em estoque"
	if brand != "" {
		scope = "da marca " + brand
	}
	text := fmt.Sprintf(
		"Temos %d veículo%s %s, com preços entre R$ %s e R$ %s (média de R$ %s).",
		pr.Count, plural(pr.Count), scope,
		formatNumber(pr.MinPrice), formatNumber(pr.MaxPrice), formatNumber(pr.AvgPrice))
	return textResponse(text)
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// formatNumber renders a pt-BR style number: dots for thousands, comma for
// decimals, decimals dropped on whole values.
func formatNumber(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}

	cents := int64(f*100 + 0.5)
	whole, frac := cents/100, cents%100

	digits := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	out := b.String()

	if frac > 0 {
		out += fmt.Sprintf(",%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	return out
}

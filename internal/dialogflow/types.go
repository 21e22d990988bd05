// Package dialogflow adapts catalog queries to the DialogFlow ES webhook
// protocol: it routes fulfillment requests by intent name and reformats
// vehicle data as chat text, rich cards and quick replies.
package dialogflow

// WebhookRequest is the subset of the DialogFlow ES fulfillment request the
// adapter consumes.
type WebhookRequest struct {
	QueryResult *QueryResult `json:"queryResult"`
}

type QueryResult struct {
	QueryText  string                 `json:"queryText"`
	Intent     Intent                 `json:"intent"`
	Parameters map[string]interface{} `json:"parameters"`
}

type Intent struct {
	DisplayName string `json:"displayName"`
}

// WebhookResponse is a DialogFlow ES fulfillment response.
type WebhookResponse struct {
	FulfillmentText     string    `json:"fulfillmentText"`
	FulfillmentMessages []Message `json:"fulfillmentMessages"`
}

type Message struct {
	Text         *TextMessage  `json:"text,omitempty"`
	Card         *Card         `json:"card,omitempty"`
	QuickReplies *QuickReplies `json:"quickReplies,omitempty"`
}

type TextMessage struct {
	Text []string `json:"text"`
}

type Card struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle,omitempty"`
	ImageURI string       `json:"imageUri,omitempty"`
	Buttons  []CardButton `json:"buttons,omitempty"`
}

type CardButton struct {
	Text     string `json:"text"`
	Postback string `json:"postback,omitempty"`
}

type QuickReplies struct {
	Title        string   `json:"title,omitempty"`
	QuickReplies []string `json:"quickReplies"`
}

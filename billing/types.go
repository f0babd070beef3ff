package billing

import "encoding/json"

// EventInvoicePaid is the only notification type reconciliation acts on.
// Everything else is acknowledged and ignored.
const EventInvoicePaid = "invoice.paid"

// Event is the provider's notification envelope: {type, data:{object}}.
type Event struct {
	ID   string    `json:"id"`
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

type EventData struct {
	Object json.RawMessage `json:"object"`
}

// EventInvoice is the invoice object carried by invoice lifecycle
// events; only the external id and payment status matter locally.
type EventInvoice struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func decodeEvent(payload []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (e *Event) invoice() (*EventInvoice, error) {
	var invoice EventInvoice
	if err := json.Unmarshal(e.Data.Object, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

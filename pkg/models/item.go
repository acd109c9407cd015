package models

// Item is a trackable asset or consumable. Condition is the physical
// state, Status the availability; the two are independent axes.
// Category supersedes the legacy free-text Type but both are kept so
// older snapshots round-trip.
type Item struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Type         string      `json:"type,omitempty"`
	Category     string      `json:"category,omitempty"`
	Condition    string      `json:"condition"`
	Status       string      `json:"status"`
	SKU          string      `json:"sku,omitempty"`
	IsConsumable bool        `json:"isConsumable,omitempty"`
	Quantity     int         `json:"quantity,omitempty"`
	Unit         string      `json:"unit,omitempty"`
	MinStock     int         `json:"minStock,omitempty"`
	Parameters   []Parameter `json:"parameters,omitempty"`
	Logs         []ItemLog   `json:"logs"`
}

// Parameter is a free-form labelled attribute (brand, serial number, ...).
type Parameter struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// LowStock reports whether a consumable has reached its reorder point.
func (i *Item) LowStock() bool {
	return i.IsConsumable && i.Quantity <= i.MinStock
}

func (i Item) Clone() Item {
	out := i
	if i.Parameters != nil {
		out.Parameters = make([]Parameter, len(i.Parameters))
		copy(out.Parameters, i.Parameters)
	}
	out.Logs = make([]ItemLog, len(i.Logs))
	for n, l := range i.Logs {
		out.Logs[n] = l.Clone()
	}
	return out
}

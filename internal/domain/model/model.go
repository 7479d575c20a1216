// Package model contains transfer models for the external hierarchy service.
package model

// Ref is a bare reference to another resource.
type Ref struct {
	ID string `json:"id"`
}

// Entity is a hierarchy entity (a Feature). Read-only from this service's
// perspective; only one custom field on it is ever written back.
type Entity struct {
	ID      string  `json:"id"`
	Name    string  `json:"name,omitempty"`
	Product *Ref    `json:"product,omitempty"`
	Parent  *Parent `json:"parent,omitempty"`
}

// Parent is the generic parent container an entity may carry instead of a
// direct product reference.
type Parent struct {
	Product *Ref `json:"product,omitempty"`
}

// ParentProductID resolves the entity's parent product, checking the direct
// product reference first and the generic parent container second. The second
// return is false when neither location is populated.
func (e Entity) ParentProductID() (string, bool) {
	if e.Product != nil && e.Product.ID != "" {
		return e.Product.ID, true
	}
	if e.Parent != nil && e.Parent.Product != nil && e.Parent.Product.ID != "" {
		return e.Parent.Product.ID, true
	}
	return "", false
}

// Product is the ancestor whose name is projected onto the synced field.
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Option is one selectable value of an enumerated field.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FieldDefinition describes the synced field. Options is populated only for
// enumerated fields; labels are not guaranteed unique after normalization.
type FieldDefinition struct {
	ID      string   `json:"id"`
	Type    string   `json:"type,omitempty"`
	Options []Option `json:"options,omitempty"`
}

// FieldValue is the write payload for the synced field. Exactly one field is
// set, depending on the field mode.
type FieldValue struct {
	Text     string `json:"text,omitempty"`
	OptionID string `json:"optionId,omitempty"`
}

// EntityPage is one page of a paginated entity listing. Different service
// versions report the entity list and the next cursor under different keys.
type EntityPage struct {
	Data       []Entity `json:"data,omitempty"`
	Items      []Entity `json:"items,omitempty"`
	NextCursor string   `json:"nextCursor,omitempty"`
	Pagination struct {
		NextCursor string `json:"nextCursor,omitempty"`
	} `json:"pagination,omitempty"`
}

// Entities returns the page's entity list regardless of which key carried it.
func (p EntityPage) Entities() []Entity {
	if len(p.Data) > 0 {
		return p.Data
	}
	return p.Items
}

// Cursor returns the next-page cursor, checking both known locations. Empty
// means the listing is exhausted.
func (p EntityPage) Cursor() string {
	if p.NextCursor != "" {
		return p.NextCursor
	}
	return p.Pagination.NextCursor
}

// WebhookDescriptor is the create payload for a webhook registration.
type WebhookDescriptor struct {
	URL     string   `json:"url"`
	Events  []string `json:"events,omitempty"`
	Enabled bool     `json:"enabled"`
}

// WebhookRegistration is an existing registration owned by the hierarchy
// service. Registrations are keyed by target URL equality on our side.
type WebhookRegistration struct {
	ID      string   `json:"id"`
	URL     string   `json:"url"`
	Enabled bool     `json:"enabled"`
	Events  []string `json:"events,omitempty"`
}

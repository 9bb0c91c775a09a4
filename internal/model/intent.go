package model

import "fmt"

// SaveIntent is what a caller wants a save to do: create a new product or
// update an existing one. The concrete type decides the operation.
type SaveIntent interface {
	isSaveIntent()
}

// CreateIntent asks for a new product built from Fields.
type CreateIntent struct {
	Fields ProductFields
}

// UpdateIntent asks for the product with Product.ID to be replaced.
type UpdateIntent struct {
	Product Product
}

func (CreateIntent) isSaveIntent() {}
func (UpdateIntent) isSaveIntent() {}

// Intent kinds accepted on the wire.
const (
	IntentCreate = "create"
	IntentUpdate = "update"
)

// SaveRequest represents the request payload for an explicit save.
type SaveRequest struct {
	Intent  string        `json:"intent"`
	ID      string        `json:"id,omitempty"`
	Product ProductFields `json:"product"`
}

// ToIntent converts the request into a typed save intent.
func (r SaveRequest) ToIntent() (SaveIntent, error) {
	switch r.Intent {
	case IntentCreate:
		return CreateIntent{Fields: r.Product}, nil
	case IntentUpdate:
		if r.ID == "" {
			return nil, NewDomainError(ErrCodeMissingField, "id is required for an update intent")
		}
		return UpdateIntent{Product: r.Product.WithID(r.ID)}, nil
	default:
		return nil, NewDomainError(ErrCodeInvalidIntent, fmt.Sprintf("unknown intent %q (must be create or update)", r.Intent))
	}
}

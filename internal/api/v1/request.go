package v1

type PurchaseRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

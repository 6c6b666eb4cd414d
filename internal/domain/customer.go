package domain

// Customer is the shopper owning a cart. Only Address changes after creation.
type Customer struct {
	ID      int64  `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Email   string `json:"email" yaml:"email"`
	Address string `json:"address" yaml:"address"`
}

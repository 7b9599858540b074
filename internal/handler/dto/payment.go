package dto

// IssueTokenRequest carries the identity payload to sign.
type IssueTokenRequest struct {
	Email string `json:"email"`
}

// TokenResponse returns the signed token.
type TokenResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest registers a principal on first sign-in.
type CreateUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// CreateIntentRequest asks the gateway for a payment intent.
type CreateIntentRequest struct {
	Price Price `json:"price"`
}

// CreateIntentResponse returns the gateway's client secret.
type CreateIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// RecordPaymentRequest is the client-posted payment record.
type RecordPaymentRequest struct {
	Email       string   `json:"email"`
	Price       Price    `json:"price"`
	CartItemIDs []string `json:"cartItems"`
	MenuItemIDs []string `json:"menuItems"`
}

// RecordPaymentResponse reports both settlement outcomes so the caller
// can detect partial application.
type RecordPaymentResponse struct {
	PaymentID    string `json:"payment_id"`
	DeletedCount int64  `json:"deleted_count"`
	Reconciled   bool   `json:"reconciled"`
}

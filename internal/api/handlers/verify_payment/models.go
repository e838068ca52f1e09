package verify_payment

// VerifyPaymentRequest HTTP request model
type VerifyPaymentRequest struct {
	Approved bool `json:"approved"`
}

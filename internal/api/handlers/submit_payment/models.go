package submit_payment

// SubmitPaymentRequest HTTP request model
type SubmitPaymentRequest struct {
	PaymentMethod    string  `json:"paymentMethod"` // bank_transfer | credit_card | e_wallet
	PaymentReference string  `json:"paymentReference"`
	PaymentProofURL  *string `json:"paymentProofUrl,omitempty"`
}

package domain

// PriceBreakdown is the itemized result of the pricing calculator.
// All amounts are integer minor currency units.
//
// The persisted booking snapshot collapses ServiceFee and Taxes into a single
// taxes column (see Booking); the split exists only on the quoted breakdown.
type PriceBreakdown struct {
	BasePrice       int64
	CleaningFee     int64
	SecurityDeposit int64 // pass-through, never summed into TotalAmount
	ServiceFee      int64
	Taxes           int64
	TotalAmount     int64
	Currency        string
}

// StoredTaxes returns the combined service fee + tax amount as persisted on
// the booking row.
func (p PriceBreakdown) StoredTaxes() int64 {
	return p.ServiceFee + p.Taxes
}

// ComputePricing builds the price breakdown for a stay. The stages are
// ordered and each percentage stage rounds half-up to the nearest minor unit
// before feeding the next one:
//
//	basePrice  = pricePerNight * nights
//	serviceFee = round(basePrice * 12%)
//	subtotal   = basePrice + cleaningFee + serviceFee
//	taxes      = round(subtotal * 8%)
//	total      = basePrice + cleaningFee + serviceFee + taxes
//
// The calculator is total over non-negative integer inputs; the caller is
// responsible for rejecting negative amounts and non-positive nights.
func ComputePricing(pricePerNight int64, nights int, cleaningFee, securityDeposit int64, currency string) PriceBreakdown {
	basePrice := pricePerNight * int64(nights)
	serviceFee := roundPercent(basePrice, ServiceFeeRatePercent)
	subtotal := basePrice + cleaningFee + serviceFee
	taxes := roundPercent(subtotal, TaxRatePercent)

	return PriceBreakdown{
		BasePrice:       basePrice,
		CleaningFee:     cleaningFee,
		SecurityDeposit: securityDeposit,
		ServiceFee:      serviceFee,
		Taxes:           taxes,
		TotalAmount:     basePrice + cleaningFee + serviceFee + taxes,
		Currency:        currency,
	}
}

// roundPercent computes amount * percent / 100 rounded half-up.
// Integer arithmetic keeps the result reproducible bit-for-bit.
func roundPercent(amount, percent int64) int64 {
	return (amount*percent + 50) / 100
}

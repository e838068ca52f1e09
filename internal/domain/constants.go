package domain

// Pricing rates, applied in ComputePricing. Percent of the preceding stage,
// rounded half-up to the nearest minor unit before the next stage.
const (
	ServiceFeeRatePercent = 12
	TaxRatePercent        = 8
)

// Default configuration values
const (
	DefaultPaymentWindowMinutes = 1440 // 24 hours
	DefaultSweepIntervalSeconds = 60
	DefaultCurrency             = "USD"
)

// Business validation constants
const (
	MaxSpecialRequestLength      = 500
	MaxCancellationReasonLength  = 500
	MaxPaymentReferenceLength    = 255
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не блокирующих даты объекта.
// Используется при проверке пересечения дат.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusExpired,
	StatusPaymentFailed,
}

// ActiveStatuses список статусов, удерживающих даты объекта
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusAwaitingPayment,
	StatusAwaitingConfirmation,
	StatusConfirmed,
	StatusCompleted,
}

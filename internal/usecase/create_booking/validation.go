package create_booking

import (
	"fmt"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
)

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: property_id must be positive", ErrInvalidInput)
	}

	if req.GuestID <= 0 {
		return fmt.Errorf("%w: guest_id must be positive", ErrInvalidInput)
	}

	if err := req.CheckInDate.Validate(); err != nil {
		return fmt.Errorf("%w: check_in_date: %v", ErrInvalidInput, err)
	}

	if err := req.CheckOutDate.Validate(); err != nil {
		return fmt.Errorf("%w: check_out_date: %v", ErrInvalidInput, err)
	}

	if !req.CheckInDate.Before(req.CheckOutDate) {
		return fmt.Errorf("%w: %s .. %s", ErrInvalidDates, req.CheckInDate, req.CheckOutDate)
	}

	if req.GuestsCount <= 0 {
		return fmt.Errorf("%w: guests_count must be positive", ErrInvalidInput)
	}

	if req.SpecialRequest != nil && len(*req.SpecialRequest) > domain.MaxSpecialRequestLength {
		return fmt.Errorf("%w: special_request exceeds %d characters", ErrInvalidInput, domain.MaxSpecialRequestLength)
	}

	return nil
}

// validateStay проверяет параметры проживания против правил объекта размещения
func validateStay(property *propertyservice.Property, nights, guestsCount int) error {
	if nights < property.MinNights {
		return fmt.Errorf("%w: %d nights, minimum %d", ErrStayTooShort, nights, property.MinNights)
	}

	if property.HasMaxNightsLimit() && nights > property.MaxNights {
		return fmt.Errorf("%w: %d nights, maximum %d", ErrStayTooLong, nights, property.MaxNights)
	}

	if guestsCount > property.MaxGuests {
		return fmt.Errorf("%w: %d guests, capacity %d", ErrTooManyGuests, guestsCount, property.MaxGuests)
	}

	return nil
}

// verifyPricing сравнивает котировку клиента с пересчитанной ценой
func verifyPricing(quoted *PricingSnapshot, computed domain.PriceBreakdown) error {
	if quoted == nil {
		return nil
	}

	if quoted.BasePrice != computed.BasePrice ||
		quoted.CleaningFee != computed.CleaningFee ||
		quoted.SecurityDeposit != computed.SecurityDeposit ||
		quoted.ServiceFee != computed.ServiceFee ||
		quoted.Taxes != computed.Taxes ||
		quoted.TotalAmount != computed.TotalAmount {
		return fmt.Errorf("%w: quoted total %d, current total %d", ErrPriceChanged, quoted.TotalAmount, computed.TotalAmount)
	}

	return nil
}

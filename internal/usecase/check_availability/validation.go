package check_availability

import "fmt"

// validateRequest проверяет корректность входных данных запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.PropertyID <= 0 {
		return fmt.Errorf("%w: property_id must be positive", ErrInvalidInput)
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

	return nil
}

package check_availability

import (
	checkAvailability "github.com/stayhub/StayHub-BookingService/internal/usecase/check_availability"
)

// ConflictResponse занятый диапазон дат в HTTP ответе
type ConflictResponse struct {
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	PropertyID   int64              `json:"propertyId"`
	CheckInDate  string             `json:"checkInDate"`
	CheckOutDate string             `json:"checkOutDate"`
	Available    bool               `json:"available"`
	Conflicts    []ConflictResponse `json:"conflicts"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	conflicts := make([]ConflictResponse, len(resp.Conflicts))
	for i, conflict := range resp.Conflicts {
		conflicts[i] = ConflictResponse{
			CheckInDate:  conflict.CheckInDate.String(),
			CheckOutDate: conflict.CheckOutDate.String(),
		}
	}

	return &AvailabilityResponse{
		PropertyID:   resp.PropertyID,
		CheckInDate:  resp.CheckInDate.String(),
		CheckOutDate: resp.CheckOutDate.String(),
		Available:    resp.Available,
		Conflicts:    conflicts,
	}
}

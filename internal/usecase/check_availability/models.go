package check_availability

import (
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// Request модель запроса проверки доступности дат
type Request struct {
	PropertyID   int64
	CheckInDate  types.DateString
	CheckOutDate types.DateString
}

// ConflictingRange занятый диапазон дат, пересекающийся с запрошенным
type ConflictingRange struct {
	CheckInDate  types.DateString
	CheckOutDate types.DateString
}

// Response модель ответа проверки доступности
type Response struct {
	PropertyID   int64
	CheckInDate  types.DateString
	CheckOutDate types.DateString
	Available    bool
	Conflicts    []ConflictingRange
}

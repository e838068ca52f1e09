package pricing

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("pricing: invalid input data")

	// ErrInvalidDates возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDates = errors.New("pricing: check-out date must be after check-in date")

	// ErrPropertyNotFound возвращается, когда объект размещения не найден
	ErrPropertyNotFound = errors.New("pricing: property not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pricing: internal error")
)

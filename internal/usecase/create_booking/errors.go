package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrPropertyNotFound возвращается, когда объект размещения не найден
	ErrPropertyNotFound = errors.New("create_booking: property not found")

	// ErrPropertyInactive возвращается, когда объект размещения снят с публикации
	ErrPropertyInactive = errors.New("create_booking: property is not active")

	// ErrGuestNotFound возвращается, когда гость не найден
	ErrGuestNotFound = errors.New("create_booking: guest not found")

	// ErrGuestInactive возвращается, когда аккаунт гостя заблокирован
	ErrGuestInactive = errors.New("create_booking: guest account is not active")

	// ErrInvalidDates возвращается, когда дата выезда не позже даты заезда
	ErrInvalidDates = errors.New("create_booking: check-out date must be after check-in date")

	// ErrStayTooShort возвращается, когда длина проживания меньше минимума объекта
	ErrStayTooShort = errors.New("create_booking: stay is shorter than property minimum nights")

	// ErrStayTooLong возвращается, когда длина проживания больше максимума объекта
	ErrStayTooLong = errors.New("create_booking: stay is longer than property maximum nights")

	// ErrTooManyGuests возвращается, когда число гостей превышает вместимость объекта
	ErrTooManyGuests = errors.New("create_booking: guests count exceeds property capacity")

	// ErrPriceChanged возвращается, когда котировка из запроса не совпадает с
	// пересчитанной ценой (тарифы объекта изменились между quote и create)
	ErrPriceChanged = errors.New("create_booking: quoted pricing does not match current property rates")

	// ErrDatesNotAvailable возвращается, когда даты пересекаются с активным бронированием
	ErrDatesNotAvailable = errors.New("create_booking: dates are not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

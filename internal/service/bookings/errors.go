package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrPropertyNotFound возвращается, когда объект размещения не найден
	ErrPropertyNotFound = errors.New("property not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidState возвращается, когда запрошенный переход недопустим из
	// текущего статуса бронирования (включая конкурентное изменение статуса)
	ErrInvalidState = errors.New("booking is not in a valid state for this operation")

	// ErrPaymentDeadlinePassed возвращается при попытке оплатить бронирование
	// после истечения дедлайна оплаты
	ErrPaymentDeadlinePassed = errors.New("payment deadline has passed")

	// ErrInvalidStatus возвращается при попытке использовать неизвестный статус
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

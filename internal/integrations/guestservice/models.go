package guestservice

// Guest модель гостя из GuestService.
// Движку бронирования нужны только существование и статус аккаунта.
type Guest struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от GuestService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

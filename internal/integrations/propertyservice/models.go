package propertyservice

// Property модель объекта размещения из PropertyService.
// Содержит rate snapshot и политики, которые движок бронирования исполняет,
// но не определяет сам.
type Property struct {
	ID     int64  `json:"id"`
	HostID int64  `json:"host_id"`
	Title  string `json:"title"`

	// Rate snapshot: неотрицательные целые в минорных единицах валюты
	PricePerNight   int64 `json:"price_per_night"`
	CleaningFee     int64 `json:"cleaning_fee"`
	SecurityDeposit int64 `json:"security_deposit"`

	MinNights int `json:"min_nights"`
	MaxNights int `json:"max_nights"` // 0 = без ограничения
	MaxGuests int `json:"max_guests"`

	// RequiresApproval - требуется ли подтверждение хоста перед оплатой.
	// Движок только исполняет эту политику (pending vs awaiting_payment).
	RequiresApproval bool `json:"requires_approval"`

	IsActive bool `json:"is_active"`

	// ManagerIDs пользователи с правами управления бронированиями объекта
	// (хост и администраторы площадки)
	ManagerIDs []int64 `json:"manager_ids"`
}

// IsManagedBy проверяет, входит ли пользователь в число менеджеров объекта
func (p *Property) IsManagedBy(userID int64) bool {
	if userID == p.HostID {
		return true
	}
	for _, id := range p.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasMaxNightsLimit проверяет, задано ли ограничение максимальной длины проживания
func (p *Property) HasMaxNightsLimit() bool {
	return p.MaxNights > 0
}

// ErrorResponse модель ошибки от PropertyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

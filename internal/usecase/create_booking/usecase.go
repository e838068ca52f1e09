package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/guestservice"
	"github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
)

// UseCase создание бронирования с проверкой доступности дат.
// Проверка пересечения и вставка выполняются в одной serializable транзакции
// с блокировкой конкурирующих строк, поэтому два параллельных запроса на одни
// даты не могут быть подтверждены одновременно.
type UseCase struct {
	repo          BookingRepository
	propertyClnt  PropertyServiceClient
	guestClnt     GuestServiceClient
	txManager     TransactionManager
	timeProvider  TimeProvider
	paymentWindow time.Duration
	currency      string
	logger        Logger
}

func New(
	repo BookingRepository,
	propertyClnt PropertyServiceClient,
	guestClnt GuestServiceClient,
	txManager TransactionManager,
	timeProvider TimeProvider,
	paymentWindow time.Duration,
	currency string,
	logger Logger,
) *UseCase {
	return &UseCase{
		repo:          repo,
		propertyClnt:  propertyClnt,
		guestClnt:     guestClnt,
		txManager:     txManager,
		timeProvider:  timeProvider,
		paymentWindow: paymentWindow,
		currency:      currency,
		logger:        logger,
	}
}

// Execute создаёт бронирование.
//
// Последовательность:
//  1. Валидация запроса и загрузка объекта размещения и гостя
//  2. Пересчёт цены по текущим тарифам объекта и сверка с котировкой клиента
//  3. Serializable транзакция: проверка пересечения дат (FOR UPDATE) и вставка
//
// Начальный статус зависит от политики объекта: awaiting_payment с дедлайном
// оплаты для мгновенного бронирования, pending для объектов с подтверждением
// хостом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	property, err := uc.propertyClnt.GetProperty(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyservice.ErrPropertyNotFound) {
			return nil, fmt.Errorf("%w: property_id=%d", ErrPropertyNotFound, req.PropertyID)
		}
		uc.logger.Error("create_booking.Execute - failed to fetch property %d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: fetch property: %v", ErrInternal, err)
	}

	if !property.IsActive {
		return nil, fmt.Errorf("%w: property_id=%d", ErrPropertyInactive, req.PropertyID)
	}

	guest, err := uc.guestClnt.GetGuest(ctx, req.GuestID)
	if err != nil {
		if errors.Is(err, guestservice.ErrGuestNotFound) {
			return nil, fmt.Errorf("%w: guest_id=%d", ErrGuestNotFound, req.GuestID)
		}
		uc.logger.Error("create_booking.Execute - failed to fetch guest %d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: fetch guest: %v", ErrInternal, err)
	}

	if !guest.IsActive {
		return nil, fmt.Errorf("%w: guest_id=%d", ErrGuestInactive, req.GuestID)
	}

	nights, err := req.CheckInDate.DaysUntil(req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := validateStay(property, nights, req.GuestsCount); err != nil {
		return nil, err
	}

	pricing := domain.ComputePricing(
		property.PricePerNight,
		nights,
		property.CleaningFee,
		property.SecurityDeposit,
		uc.currency,
	)

	if err := verifyPricing(req.Pricing, pricing); err != nil {
		uc.logger.Warn("create_booking.Execute - price mismatch for property %d: %v", req.PropertyID, err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	booking := &domain.Booking{
		PropertyID:      req.PropertyID,
		GuestID:         req.GuestID,
		CheckInDate:     req.CheckInDate,
		CheckOutDate:    req.CheckOutDate,
		GuestsCount:     req.GuestsCount,
		BasePrice:       pricing.BasePrice,
		CleaningFee:     pricing.CleaningFee,
		SecurityDeposit: pricing.SecurityDeposit,
		Taxes:           pricing.StoredTaxes(),
		TotalAmount:     pricing.TotalAmount,
		Currency:        pricing.Currency,
		SpecialRequest:  req.SpecialRequest,
	}

	if property.RequiresApproval {
		booking.Status = domain.StatusPending
	} else {
		booking.Status = domain.StatusAwaitingPayment
		expiresAt := now.Add(uc.paymentWindow)
		booking.PaymentExpiresAt = &expiresAt
	}

	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, txErr := uc.repo.GetOverlapping(txCtx, req.PropertyID, req.CheckInDate, req.CheckOutDate)
		if txErr != nil {
			return fmt.Errorf("%w: check availability: %v", ErrInternal, txErr)
		}

		for _, existing := range overlapping {
			if existing.IsActive() {
				return fmt.Errorf("%w: conflicts with booking %d (%s .. %s)",
					ErrDatesNotAvailable, existing.ID, existing.CheckInDate, existing.CheckOutDate)
			}
		}

		created, txErr = uc.repo.Create(txCtx, booking)
		if txErr != nil {
			return fmt.Errorf("%w: create booking: %v", ErrInternal, txErr)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDatesNotAvailable) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("create_booking.Execute - transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction: %v", ErrInternal, err)
	}

	uc.logger.Info("create_booking.Execute - booking %d created for property %d, status %s",
		created.ID, created.PropertyID, created.Status)

	return buildResponse(created, pricing, nights), nil
}

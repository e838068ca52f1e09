package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	bookingRepo "github.com/stayhub/StayHub-BookingService/internal/infra/storage/booking"
	propertyClient "github.com/stayhub/StayHub-BookingService/internal/integrations/propertyservice"
	"github.com/stayhub/StayHub-BookingService/internal/service/bookings/models"
)

// Service операции жизненного цикла бронирования.
// Каждый переход статуса проверяется через state machine домена, а затем
// применяется compare-and-set обновлением в репозитории. Если между чтением
// и обновлением статус изменился конкурентно, операция завершается
// ErrInvalidState с актуальным статусом.
type Service struct {
	bookingRepo   BookingRepository
	propertyClnt  PropertyServiceClient
	timeProvider  TimeProvider
	paymentWindow time.Duration
	logger        Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	propertyClnt PropertyServiceClient,
	timeProvider TimeProvider,
	paymentWindow time.Duration,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		propertyClnt:  propertyClnt,
		timeProvider:  timeProvider,
		paymentWindow: paymentWindow,
		logger:        logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа: гость видит только своё бронирование,
// хост и менеджеры объекта видят бронирования своего объекта
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetGuestBookings получает историю бронирований гостя
// Опционально фильтрует по статусу
func (s *Service) GetGuestBookings(ctx context.Context, req *models.GetGuestBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetGuestBookings: fetching bookings for guest=%d, status=%v", req.GuestID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetGuestBookings: invalid status=%s for guest=%d", *req.Status, req.GuestID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByGuestID(ctx, req.GuestID, domainStatus)
	if err != nil {
		s.logger.Error("GetGuestBookings: repository error for guest=%d: %v", req.GuestID, err)
		return nil, fmt.Errorf("%w: GetGuestBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuestBookings: successfully fetched %d bookings for guest=%d", len(bookings), req.GuestID)
	return models.FromDomainBookingList(bookings), nil
}

// GetPropertyBookings получает бронирования объекта размещения с фильтрацией
// по периоду и статусу. Доступно только хосту и менеджерам объекта.
func (s *Service) GetPropertyBookings(ctx context.Context, req *models.GetPropertyBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetPropertyBookings: fetching bookings for property=%d, user=%d", req.PropertyID, req.UserID)

	if err := s.checkManagerAccess(ctx, req.PropertyID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetPropertyBookings: invalid filter for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByPropertyWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetPropertyBookings: repository error for property=%d: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: GetPropertyBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetPropertyBookings: successfully fetched %d bookings for property=%d", len(bookings), req.PropertyID)
	return models.FromDomainBookingList(bookings), nil
}

// Approve подтверждает бронирование хостом: pending -> awaiting_payment.
// С этого момента у гостя открывается окно оплаты с дедлайном.
func (s *Service) Approve(ctx context.Context, bookingID int64, req *models.ApproveBookingRequest) error {
	s.logger.Info("Approve: approving booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, bookingID, "Approve")
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, booking.PropertyID, req.UserID); err != nil {
		s.logger.Warn("Approve: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return err
	}

	if err := booking.ValidateTransition(domain.StatusAwaitingPayment); err != nil {
		s.logger.Warn("Approve: booking id=%d in status=%s cannot be approved", bookingID, booking.Status)
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	expiresAt := s.timeProvider.Now().Add(s.paymentWindow)
	if err := s.bookingRepo.SetAwaitingPayment(ctx, bookingID, booking.Status, expiresAt); err != nil {
		return s.mapStatusUpdateError(ctx, bookingID, err, "Approve")
	}

	s.logger.Info("Approve: booking id=%d awaiting payment until %s", bookingID, expiresAt.Format(time.RFC3339))
	return nil
}

// Cancel отменяет бронирование
// Гость может отменить только своё бронирование, хост и менеджеры объекта
// могут отменить любое бронирование объекта
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, bookingID, "Cancel")
	if err != nil {
		return err
	}

	if booking.GuestID != req.UserID {
		if err := s.checkManagerAccess(ctx, booking.PropertyID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
			return ErrAccessDenied
		}
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation_reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, booking.Status, req.CancellationReason); err != nil {
		return s.mapStatusUpdateError(ctx, bookingID, err, "Cancel")
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	return nil
}

// SubmitPayment регистрирует оплату гостя: awaiting_payment -> awaiting_confirmation.
// Отклоняется, если дедлайн оплаты уже прошёл, даже если фоновый sweep ещё не
// успел перевести бронирование в expired.
func (s *Service) SubmitPayment(ctx context.Context, bookingID int64, req *models.SubmitPaymentRequest) error {
	s.logger.Info("SubmitPayment: payment for booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, bookingID, "SubmitPayment")
	if err != nil {
		return err
	}

	if booking.GuestID != req.UserID {
		s.logger.Warn("SubmitPayment: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	method, err := models.ToDomainPaymentMethod(req.PaymentMethod)
	if err != nil {
		s.logger.Warn("SubmitPayment: invalid payment method=%s for booking id=%d", req.PaymentMethod, bookingID)
		return fmt.Errorf("%w: invalid payment method", ErrInvalidInput)
	}

	if req.PaymentReference == "" || len(req.PaymentReference) > domain.MaxPaymentReferenceLength {
		return fmt.Errorf("%w: payment_reference is required and must not exceed %d characters",
			ErrInvalidInput, domain.MaxPaymentReferenceLength)
	}

	if err := booking.ValidateTransition(domain.StatusAwaitingConfirmation); err != nil {
		s.logger.Warn("SubmitPayment: booking id=%d in status=%s cannot accept payment", bookingID, booking.Status)
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if booking.PaymentDeadlinePassed(s.timeProvider.Now()) {
		s.logger.Warn("SubmitPayment: payment deadline passed for booking id=%d", bookingID)
		return ErrPaymentDeadlinePassed
	}

	if err := s.bookingRepo.SubmitPayment(ctx, bookingID, method, req.PaymentReference, req.PaymentProofURL); err != nil {
		return s.mapStatusUpdateError(ctx, bookingID, err, "SubmitPayment")
	}

	s.logger.Info("SubmitPayment: booking id=%d awaiting payment confirmation", bookingID)
	return nil
}

// VerifyPayment проверка оплаты хостом: awaiting_confirmation -> confirmed
// при подтверждении, awaiting_confirmation -> payment_failed при отклонении
func (s *Service) VerifyPayment(ctx context.Context, bookingID int64, req *models.VerifyPaymentRequest) error {
	s.logger.Info("VerifyPayment: verifying payment for booking id=%d by user=%d, approved=%t",
		bookingID, req.UserID, req.Approved)

	booking, err := s.getBooking(ctx, bookingID, "VerifyPayment")
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, booking.PropertyID, req.UserID); err != nil {
		s.logger.Warn("VerifyPayment: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return err
	}

	target := domain.StatusConfirmed
	if !req.Approved {
		target = domain.StatusPaymentFailed
	}

	if err := booking.ValidateTransition(target); err != nil {
		s.logger.Warn("VerifyPayment: booking id=%d in status=%s cannot be verified", bookingID, booking.Status)
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.bookingRepo.UpdateStatusIf(ctx, bookingID, booking.Status, target); err != nil {
		return s.mapStatusUpdateError(ctx, bookingID, err, "VerifyPayment")
	}

	s.logger.Info("VerifyPayment: booking id=%d moved to status=%s", bookingID, target)
	return nil
}

// ReopenPayment повторно открывает окно оплаты после отклонённого платежа:
// payment_failed -> awaiting_payment с новым дедлайном. Служебная операция
// для хоста, разрешающая гостю повторить оплату.
func (s *Service) ReopenPayment(ctx context.Context, bookingID int64, req *models.ReopenPaymentRequest) error {
	s.logger.Info("ReopenPayment: reopening payment for booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.getBooking(ctx, bookingID, "ReopenPayment")
	if err != nil {
		return err
	}

	if err := s.checkManagerAccess(ctx, booking.PropertyID, req.UserID); err != nil {
		s.logger.Warn("ReopenPayment: access denied for user=%d to booking id=%d", req.UserID, bookingID)
		return err
	}

	if booking.Status != domain.StatusPaymentFailed {
		s.logger.Warn("ReopenPayment: booking id=%d in status=%s is not payment_failed", bookingID, booking.Status)
		return fmt.Errorf("%w: booking is %s", ErrInvalidState, booking.Status)
	}

	if err := booking.ValidateTransition(domain.StatusAwaitingPayment); err != nil {
		s.logger.Warn("ReopenPayment: booking id=%d in status=%s cannot reopen payment", bookingID, booking.Status)
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	expiresAt := s.timeProvider.Now().Add(s.paymentWindow)
	if err := s.bookingRepo.SetAwaitingPayment(ctx, bookingID, booking.Status, expiresAt); err != nil {
		return s.mapStatusUpdateError(ctx, bookingID, err, "ReopenPayment")
	}

	s.logger.Info("ReopenPayment: booking id=%d awaiting payment until %s", bookingID, expiresAt.Format(time.RFC3339))
	return nil
}

// Вспомогательные методы

// getBooking загружает бронирование и мапит ошибки репозитория в ошибки сервиса
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// mapStatusUpdateError мапит ошибку compare-and-set обновления.
// ErrStatusConflict означает, что статус изменился между чтением и
// обновлением: перечитываем бронирование и возвращаем ErrInvalidState
// с актуальным статусом.
func (s *Service) mapStatusUpdateError(ctx context.Context, bookingID int64, err error, op string) error {
	if errors.Is(err, bookingRepo.ErrStatusConflict) {
		current, readErr := s.bookingRepo.GetByID(ctx, bookingID)
		if readErr == nil {
			s.logger.Warn("%s: booking id=%d status changed concurrently, now %s", op, bookingID, current.Status)
			return fmt.Errorf("%w: booking is now %s", ErrInvalidState, current.Status)
		}
		s.logger.Warn("%s: booking id=%d status changed concurrently", op, bookingID)
		return ErrInvalidState
	}

	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found during update", op, bookingID)
		return ErrBookingNotFound
	}

	s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Гость видит своё бронирование, хост и менеджеры видят бронирования объекта
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.GuestID == userID {
		return nil
	}

	if err := s.checkManagerAccess(ctx, booking.PropertyID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является хостом или
// менеджером объекта размещения
func (s *Service) checkManagerAccess(ctx context.Context, propertyID int64, userID int64) error {
	property, err := s.propertyClnt.GetProperty(ctx, propertyID)
	if err != nil {
		if errors.Is(err, propertyClient.ErrPropertyNotFound) {
			s.logger.Warn("checkManagerAccess: property id=%d not found", propertyID)
			return ErrPropertyNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get property id=%d: %v", propertyID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get property: %v", ErrInternal, err)
	}

	if property.IsManagedBy(userID) {
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of property=%d", userID, propertyID)
	return ErrAccessDenied
}

package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/stayhub/StayHub-BookingService/internal/domain"
	"github.com/stayhub/StayHub-BookingService/pkg/dbmetrics"
	"github.com/stayhub/StayHub-BookingService/pkg/psqlbuilder"
	"github.com/stayhub/StayHub-BookingService/pkg/types"
)

// bookingColumns полный набор колонок таблицы bookings (порядок согласован со scanBooking)
var bookingColumns = []string{
	"id",
	"property_id",
	"guest_id",
	"check_in_date",
	"check_out_date",
	"guests_count",
	"base_price",
	"cleaning_fee",
	"security_deposit",
	"taxes",
	"total_amount",
	"currency",
	"status",
	"payment_method",
	"payment_reference",
	"payment_proof_url",
	"payment_expires_at",
	"special_request",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание бронирования ВСЕГДА должно выполняться в сериализуемой транзакции
// вместе с проверкой пересечения дат (GetOverlapping) - иначе возможен
// double-booking при конкурентных запросах.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"property_id",
			"guest_id",
			"check_in_date",
			"check_out_date",
			"guests_count",
			"base_price",
			"cleaning_fee",
			"security_deposit",
			"taxes",
			"total_amount",
			"currency",
			"status",
			"payment_expires_at",
			"special_request",
		).
		Values(
			booking.PropertyID,
			booking.GuestID,
			booking.CheckInDate,
			booking.CheckOutDate,
			booking.GuestsCount,
			booking.BasePrice,
			booking.CleaningFee,
			booking.SecurityDeposit,
			booking.Taxes,
			booking.TotalAmount,
			booking.Currency,
			booking.Status,
			booking.PaymentExpiresAt,
			booking.SpecialRequest,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetOverlapping получает активные бронирования объекта, пересекающиеся с
// полуоткрытым интервалом [checkIn, checkOut). Выезд, совпадающий с чужим
// заездом, пересечением не считается.
//
// Внутри транзакции строки блокируются (FOR UPDATE) - это точка сериализации
// проверки доступности при создании бронирования.
func (r *Repository) GetOverlapping(ctx context.Context, propertyID int64, checkIn, checkOut types.DateString) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"property_id": propertyID}).
		Where(squirrel.Lt{"check_in_date": checkOut}).
		Where(squirrel.Gt{"check_out_date": checkIn}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		OrderBy("check_in_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOverlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByGuestID получает список бронирований гостя
// Опционально фильтрует по статусу
func (r *Repository) GetByGuestID(ctx context.Context, guestID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"guest_id": guestID}).
		OrderBy("check_in_date DESC, id DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuestID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByPropertyWithFilter получает бронирования объекта с гибкой фильтрацией
// Поддерживает фильтрацию по периоду заезда, статусу и включению неактивных бронирований
func (r *Repository) GetByPropertyWithFilter(ctx context.Context, filter domain.PropertyBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"property_id": filter.PropertyID})

	// Фильтрация по периоду заезда
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"check_in_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"check_in_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings()})
	}

	selectBuilder = selectBuilder.OrderBy("check_in_date DESC, id DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPropertyWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatusIf атомарно переводит бронирование из статуса from в статус to
// (compare-and-set). Если бронирование уже не в статусе from, возвращает
// ErrStatusConflict - вызывающая сторона перечитывает бронирование и решает,
// что произошло (параллельный перевод или бронирование не существует).
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, query, args, "UpdateStatusIf")
}

// SetAwaitingPayment атомарно переводит бронирование в awaiting_payment и
// устанавливает дедлайн оплаты. Используется при подтверждении хостом
// (pending -> awaiting_payment) и при повторном открытии оплаты поддержкой
// (payment_failed -> awaiting_payment).
func (r *Repository) SetAwaitingPayment(ctx context.Context, id int64, from domain.BookingStatus, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusAwaitingPayment).
		Set("payment_expires_at", expiresAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetAwaitingPayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, query, args, "SetAwaitingPayment")
}

// SubmitPayment атомарно переводит бронирование из awaiting_payment в
// awaiting_confirmation, сохраняя реквизиты оплаты
func (r *Repository) SubmitPayment(ctx context.Context, id int64, method domain.PaymentMethod, reference string, proofURL *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusAwaitingConfirmation).
		Set("payment_method", method).
		Set("payment_reference", reference).
		Set("payment_proof_url", proofURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusAwaitingPayment}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SubmitPayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, query, args, "SubmitPayment")
}

// Cancel отменяет бронирование с указанием причины.
// Compare-and-set по текущему статусу защищает от гонки с фоновым sweep'ом.
func (r *Repository) Cancel(ctx context.Context, id int64, from domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execCAS(ctx, executor, query, args, "Cancel")
}

// ExpireDue переводит в expired все бронирования в awaiting_payment с
// истекшим дедлайном оплаты. Возвращает ID затронутых бронирований.
// Идемпотентна: повторный запуск с тем же now не находит новых строк.
func (r *Repository) ExpireDue(ctx context.Context, now time.Time) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusAwaitingPayment}).
		Where(squirrel.LtOrEq{"payment_expires_at": now}).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ExpireDue - build update query: %v", ErrBuildQuery, err)
	}

	return r.queryIDs(ctx, executor, query, args, "ExpireDue")
}

// CompleteDue переводит в completed подтвержденные бронирования, у которых
// дата выезда уже прошла. Возвращает ID затронутых бронирований.
func (r *Repository) CompleteDue(ctx context.Context, today types.DateString) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCompleted).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.LtOrEq{"check_out_date": today}).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CompleteDue - build update query: %v", ErrBuildQuery, err)
	}

	return r.queryIDs(ctx, executor, query, args, "CompleteDue")
}

// execCAS выполняет compare-and-set обновление и проверяет число затронутых строк
func (r *Repository) execCAS(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// queryIDs выполняет запрос с RETURNING id и собирает идентификаторы
func (r *Repository) queryIDs(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) ([]int64, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %s - scan id: %v", ErrScanRow, op, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return ids, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в domain.Booking (порядок bookingColumns)
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var paymentMethod sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.PropertyID,
		&booking.GuestID,
		&booking.CheckInDate,
		&booking.CheckOutDate,
		&booking.GuestsCount,
		&booking.BasePrice,
		&booking.CleaningFee,
		&booking.SecurityDeposit,
		&booking.Taxes,
		&booking.TotalAmount,
		&booking.Currency,
		&booking.Status,
		&paymentMethod,
		&booking.PaymentReference,
		&booking.PaymentProofURL,
		&booking.PaymentExpiresAt,
		&booking.SpecialRequest,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, err
	}

	if paymentMethod.Valid {
		method := domain.PaymentMethod(paymentMethod.String)
		booking.PaymentMethod = &method
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// inactiveStatusStrings статусы, не блокирующие даты, в виде строк для SQL
func inactiveStatusStrings() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

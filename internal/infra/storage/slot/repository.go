package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/pkg/dbmetrics"
	"github.com/mph199/eduvite-backend/pkg/psqlbuilder"
)

// slotColumns - полный список колонок таблицы slots в порядке сканирования
var slotColumns = []string{
	"id",
	"teacher_id",
	"event_id",
	"date",
	"time",
	"booked",
	"status",
	"visitor_type",
	"parent_name",
	"student_name",
	"company_name",
	"trainee_name",
	"representative_name",
	"class_name",
	"email",
	"message",
	"verification_token_hash",
	"verification_sent_at",
	"verified_at",
	"confirmation_sent_at",
	"cancellation_sent_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает свободный слот
func (r *Repository) Create(ctx context.Context, s *domain.Slot) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slots").
		Columns("teacher_id", "event_id", "date", "time").
		Values(s.TeacherID, s.EventID, s.Date, s.Time).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// CreateBatch создает пачку свободных слотов одним запросом.
// Используется генератором расписания.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns("teacher_id", "event_id", "date", "time")
	for _, s := range slots {
		builder = builder.Values(s.TeacherID, s.EventID, s.Date, s.Time)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	s, err := scanSlotRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// FindByTokenHash получает слот по хэшу токена подтверждения email
func (r *Repository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"verification_token_hash": tokenHash}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByTokenHash - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	s, err := scanSlotRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByTokenHash - scan slot: %v", ErrScanRow, err)
	}

	return s, nil
}

// List получает слоты по фильтру, отсортированные по дате и времени
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		OrderBy("date ASC", "time ASC", "id ASC")

	if filter.TeacherID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"teacher_id": *filter.TeacherID})
	}
	if filter.EventID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"event_id": *filter.EventID})
	} else if filter.EventIDIsNull {
		selectBuilder = selectBuilder.Where("event_id IS NULL")
	}
	if filter.Booked != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booked": *filter.Booked})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(uint64(filter.Limit))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListFreeByTimes получает свободные слоты учителя на дату, время которых
// входит в переданный набор. Внутри транзакции блокирует строки через
// FOR UPDATE, чтобы резолвер не проиграл гонку между выборкой и захватом.
func (r *Repository) ListFreeByTimes(ctx context.Context, teacherID int64, date string, times []string) ([]*domain.Slot, error) {
	if len(times) == 0 {
		return []*domain.Slot{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"teacher_id": teacherID, "date": date, "booked": false}).
		Where(squirrel.Eq{"time": times}).
		OrderBy("time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeByTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeByTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListFreeByDate получает все свободные слоты учителя на дату (запасной
// вариант резолвера, когда в окне запроса ничего не нашлось)
func (r *Repository) ListFreeByDate(ctx context.Context, teacherID int64, date string) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"teacher_id": teacherID, "date": date, "booked": false}).
		OrderBy("time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFreeByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ExistingTimes возвращает времена уже существующих слотов учителя на дату
// в рамках события (или вне событий при eventID == nil). Нужен генератору
// расписания для дедупликации.
func (r *Repository) ExistingTimes(ctx context.Context, teacherID int64, date string, eventID *int64) ([]string, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("time").
		From("slots").
		Where(squirrel.Eq{"teacher_id": teacherID, "date": date})

	if eventID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"event_id": *eventID})
	} else {
		selectBuilder = selectBuilder.Where("event_id IS NULL")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExistingTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExistingTimes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: ExistingTimes - scan time: %v", ErrScanRow, err)
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ExistingTimes - rows error: %v", ErrScanRow, err)
	}

	return times, nil
}

// Claim занимает свободный слот данными посетителя.
// Условие booked = false в WHERE делает запрос атомарным compare-and-swap:
// ноль затронутых строк означает проигранную гонку, а не ошибку БД.
// Ненулевой eventID дополнительно привязывает слот к событию, чтобы
// legacy-слот, занятый под заявку события, попадал в его статистику.
func (r *Repository) Claim(ctx context.Context, id int64, status domain.SlotStatus, visitor domain.VisitorInfo, verification domain.Verification, eventID *int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("slots").
		Set("booked", true).
		Set("status", status).
		Set("visitor_type", visitor.Type).
		Set("parent_name", visitor.ParentName).
		Set("student_name", visitor.StudentName).
		Set("company_name", visitor.CompanyName).
		Set("trainee_name", visitor.TraineeName).
		Set("representative_name", visitor.RepresentativeName).
		Set("class_name", visitor.ClassName).
		Set("email", visitor.Email).
		Set("message", visitor.Message).
		Set("verification_token_hash", verification.TokenHash).
		Set("verification_sent_at", verification.VerificationSentAt).
		Set("verified_at", verification.VerifiedAt).
		Set("confirmation_sent_at", verification.ConfirmationSentAt).
		Set("cancellation_sent_at", nil).
		Set("updated_at", squirrel.Expr("NOW()"))
	if eventID != nil {
		builder = builder.Set("event_id", eventID)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id, "booked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Claim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Claim - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Claim - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotAlreadyBooked
	}

	return nil
}

// Confirm переводит занятый слот из reserved в confirmed
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", domain.SlotConfirmed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "booked": true, "status": domain.SlotReserved}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Confirm - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Confirm - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotReserved
	}

	return nil
}

// Release освобождает занятый слот, очищая данные посетителя одним запросом.
// Ноль затронутых строк означает, что слот и так свободен.
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("booked", false).
		Set("status", nil).
		Set("visitor_type", nil).
		Set("parent_name", nil).
		Set("student_name", nil).
		Set("company_name", nil).
		Set("trainee_name", nil).
		Set("representative_name", nil).
		Set("class_name", nil).
		Set("email", nil).
		Set("message", nil).
		Set("verification_token_hash", nil).
		Set("verification_sent_at", nil).
		Set("verified_at", nil).
		Set("confirmation_sent_at", nil).
		Set("cancellation_sent_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "booked": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotBooked
	}

	return nil
}

// MarkVerified проставляет отметку подтверждения email и гасит токен
func (r *Repository) MarkVerified(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("verified_at", squirrel.Expr("NOW()")).
		Set("verification_token_hash", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkVerified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkVerified - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkVerified - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// StampConfirmationSent фиксирует момент отправки письма-подтверждения
func (r *Repository) StampConfirmationSent(ctx context.Context, id int64) error {
	return r.stamp(ctx, id, "confirmation_sent_at", "StampConfirmationSent")
}

// StampCancellationSent фиксирует момент отправки письма об отмене
func (r *Repository) StampCancellationSent(ctx context.Context, id int64) error {
	return r.stamp(ctx, id, "cancellation_sent_at", "StampCancellationSent")
}

func (r *Repository) stamp(ctx context.Context, id int64, column, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set(column, squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Update изменяет расписание слота (учитель, событие, дата, время)
func (r *Repository) Update(ctx context.Context, s *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("teacher_id", s.TeacherID).
		Set("event_id", s.EventID).
		Set("date", s.Date).
		Set("time", s.Time).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// Delete физически удаляет слот
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteFree удаляет свободные слоты учителя в рамках события (или вне
// событий при eventID == nil). Используется генератором при пересоздании
// расписания; занятые слоты не трогает.
func (r *Repository) DeleteFree(ctx context.Context, teacherID int64, eventID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteBuilder := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"teacher_id": teacherID, "booked": false})

	if eventID != nil {
		deleteBuilder = deleteBuilder.Where(squirrel.Eq{"event_id": *eventID})
	} else {
		deleteBuilder = deleteBuilder.Where("event_id IS NULL")
	}

	query, args, err := deleteBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFree - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFree - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFree - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// HasBooked сообщает, есть ли у учителя хотя бы один занятый слот
func (r *Repository) HasBooked(ctx context.Context, teacherID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("slots").
		Where(squirrel.Eq{"teacher_id": teacherID, "booked": true}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: HasBooked - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasBooked - scan row: %v", ErrScanRow, err)
	}

	return true, nil
}

// Counts считает общее число слотов и число занятых. Для health check
func (r *Repository) Counts(ctx context.Context) (total, booked int64, err error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE booked = true)",
	).From("slots").ToSql()

	if err != nil {
		return 0, 0, fmt.Errorf("%w: Counts - build select query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total, &booked); err != nil {
		return 0, 0, fmt.Errorf("%w: Counts - scan row: %v", ErrScanRow, err)
	}

	return total, booked, nil
}

// DeleteFreeAll удаляет все свободные слоты учителя независимо от события.
// Используется перед удалением самого учителя.
func (r *Repository) DeleteFreeAll(ctx context.Context, teacherID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"teacher_id": teacherID, "booked": false}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFreeAll - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFreeAll - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteFreeAll - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// CountsByEvent считает агрегаты слотов события для админской статистики
func (r *Repository) CountsByEvent(ctx context.Context, eventID int64) (*domain.EventStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE NOT booked)",
		"COUNT(*) FILTER (WHERE booked)",
		"COUNT(*) FILTER (WHERE booked AND status = 'reserved')",
		"COUNT(*) FILTER (WHERE booked AND status = 'confirmed')",
	).
		From("slots").
		Where(squirrel.Eq{"event_id": eventID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CountsByEvent - build select query: %v", ErrBuildQuery, err)
	}

	stats := &domain.EventStats{EventID: eventID}
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalSlots,
		&stats.AvailableSlots,
		&stats.BookedSlots,
		&stats.ReservedSlots,
		&stats.ConfirmedSlots,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: CountsByEvent - scan counters: %v", ErrScanRow, err)
	}

	return stats, nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSlotRow сканирует одну строку таблицы slots
func scanSlotRow(row rowScanner) (*domain.Slot, error) {
	var s domain.Slot
	var visitorType, className, email sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.TeacherID,
		&s.EventID,
		&s.Date,
		&s.Time,
		&s.Booked,
		&s.Status,
		&visitorType,
		&s.Visitor.ParentName,
		&s.Visitor.StudentName,
		&s.Visitor.CompanyName,
		&s.Visitor.TraineeName,
		&s.Visitor.RepresentativeName,
		&className,
		&email,
		&s.Visitor.Message,
		&s.Verification.TokenHash,
		&s.Verification.VerificationSentAt,
		&s.Verification.VerifiedAt,
		&s.Verification.ConfirmationSentAt,
		&s.CancellationSentAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Visitor.Type = domain.VisitorType(visitorType.String)
	s.Visitor.ClassName = className.String
	s.Visitor.Email = email.String
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		s, err := scanSlotRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

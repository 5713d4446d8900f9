package request

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/pkg/dbmetrics"
	"github.com/mph199/eduvite-backend/pkg/psqlbuilder"
)

// requestColumns - полный список колонок таблицы booking_requests
var requestColumns = []string{
	"id",
	"event_id",
	"teacher_id",
	"requested_time",
	"date",
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
	"assigned_slot_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с запросами на запись
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запрос на запись в статусе requested
func (r *Repository) Create(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_requests").
		Columns(
			"event_id",
			"teacher_id",
			"requested_time",
			"date",
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
		).
		Values(
			req.EventID,
			req.TeacherID,
			req.RequestedTime,
			req.Date,
			domain.RequestRequested,
			req.Visitor.Type,
			req.Visitor.ParentName,
			req.Visitor.StudentName,
			req.Visitor.CompanyName,
			req.Visitor.TraineeName,
			req.Visitor.RepresentativeName,
			req.Visitor.ClassName,
			req.Visitor.Email,
			req.Visitor.Message,
			req.Verification.TokenHash,
			req.Verification.VerificationSentAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&req.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.Status = domain.RequestRequested
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает запрос по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequestRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// FindByTokenHash получает запрос по хэшу токена подтверждения email
func (r *Repository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"verification_token_hash": tokenHash}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindByTokenHash - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequestRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindByTokenHash - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// ListByTeacher получает запросы учителя, опционально фильтруя по статусу
func (r *Repository) ListByTeacher(ctx context.Context, teacherID int64, status *domain.RequestStatus) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"teacher_id": teacherID}).
		OrderBy("created_at ASC", "id ASC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTeacher - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTeacher - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// ListOverdue получает подтвержденные по email запросы, ждущие решения
// учителя дольше допустимого. Кандидаты для автоназначения. Ненулевой
// teacherID ограничивает выборку одним учителем.
func (r *Repository) ListOverdue(ctx context.Context, before time.Time, teacherID *int64) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(requestColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"status": domain.RequestRequested}).
		Where("verified_at IS NOT NULL").
		Where(squirrel.LtOrEq{"created_at": before}).
		OrderBy("created_at ASC", "id ASC")

	if teacherID != nil {
		builder = builder.Where(squirrel.Eq{"teacher_id": *teacherID})
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverdue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

// Accept переводит запрос из requested в accepted и привязывает слот.
// Условие status = 'requested' в WHERE делает запрос атомарным
// compare-and-swap: ноль затронутых строк означает, что запрос уже
// обработан кем-то другим.
func (r *Repository) Accept(ctx context.Context, id int64, assignedSlotID int64) error {
	return r.resolve(ctx, id, domain.RequestAccepted, &assignedSlotID, "Accept")
}

// Decline переводит запрос из requested в declined
func (r *Repository) Decline(ctx context.Context, id int64) error {
	return r.resolve(ctx, id, domain.RequestDeclined, nil, "Decline")
}

func (r *Repository) resolve(ctx context.Context, id int64, status domain.RequestStatus, assignedSlotID *int64, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("booking_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.RequestRequested})

	if assignedSlotID != nil {
		updateBuilder = updateBuilder.Set("assigned_slot_id", *assignedSlotID)
	}

	query, args, err := updateBuilder.ToSql()
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
		return ErrRequestNotPending
	}

	return nil
}

// MarkVerified проставляет отметку подтверждения email и гасит токен
func (r *Repository) MarkVerified(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
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
		return ErrRequestNotFound
	}

	return nil
}

// StampConfirmationSent фиксирует момент отправки письма-подтверждения
func (r *Repository) StampConfirmationSent(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("confirmation_sent_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: StampConfirmationSent - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: StampConfirmationSent - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: StampConfirmationSent - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// Delete физически удаляет запрос
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_requests").
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
		return ErrRequestNotFound
	}

	return nil
}

// rowScanner покрывает *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRequestRow сканирует одну строку таблицы booking_requests
func scanRequestRow(row rowScanner) (*domain.BookingRequest, error) {
	var req domain.BookingRequest
	var visitorType string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.EventID,
		&req.TeacherID,
		&req.RequestedTime,
		&req.Date,
		&req.Status,
		&visitorType,
		&req.Visitor.ParentName,
		&req.Visitor.StudentName,
		&req.Visitor.CompanyName,
		&req.Visitor.TraineeName,
		&req.Visitor.RepresentativeName,
		&req.Visitor.ClassName,
		&req.Visitor.Email,
		&req.Visitor.Message,
		&req.Verification.TokenHash,
		&req.Verification.VerificationSentAt,
		&req.Verification.VerifiedAt,
		&req.Verification.ConfirmationSentAt,
		&req.AssignedSlotID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.Visitor.Type = domain.VisitorType(visitorType)
	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// scanRequests сканирует результаты запроса в слайс запросов на запись
func scanRequests(rows *sql.Rows) ([]*domain.BookingRequest, error) {
	requests := make([]*domain.BookingRequest, 0)

	for rows.Next() {
		req, err := scanRequestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

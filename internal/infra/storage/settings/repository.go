package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/pkg/dbmetrics"
	"github.com/mph199/eduvite-backend/pkg/psqlbuilder"
)

// settingsRowID - настройки хранятся единственной строкой
const settingsRowID = 1

var (
	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)

// Repository репозиторий для работы с глобальными настройками
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает строку настроек. Отсутствующая строка трактуется как
// набор значений по умолчанию, а не как ошибка.
func (r *Repository) Get(ctx context.Context) (*domain.Settings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "conference_date", "slot_minutes", "updated_at").
		From("settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Settings
	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ConferenceDate,
		&s.SlotMinutes,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return &domain.Settings{ID: settingsRowID, SlotMinutes: domain.DefaultSlotMinutes}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert записывает настройки, создавая строку при первом сохранении
func (r *Repository) Upsert(ctx context.Context, s *domain.Settings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("settings").
		Columns("id", "conference_date", "slot_minutes").
		Values(settingsRowID, s.ConferenceDate, s.SlotMinutes).
		Suffix("ON CONFLICT (id) DO UPDATE SET conference_date = EXCLUDED.conference_date, slot_minutes = EXCLUDED.slot_minutes, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

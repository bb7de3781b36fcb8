package repository

import (
	"context"
	"errors"
	"strings"

	"messagebox/internal/domain/message"
	mb_errors "messagebox/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	res := r.db.WithContext(ctx).Create(m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return mb_errors.ErrAlreadyExists
		}
		return res.Error
	}
	return nil
}

func (r *PostgresMessageRepository) GetByOwner(ctx context.Context, id, ownerID uuid.UUID) (message.Message, error) {
	var m message.Message
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return message.Message{}, mb_errors.ErrNotFound
		}
		return message.Message{}, err
	}
	return m, nil
}

func (r *PostgresMessageRepository) Update(ctx context.Context, m message.Message) error {
	res := r.db.WithContext(ctx).Save(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mb_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresMessageRepository) DeleteByOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Delete(&message.Message{}, "id = ? AND owner_id = ?", id, ownerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return mb_errors.ErrNotFound
	}
	return nil
}

func (r *PostgresMessageRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, f message.Filter) ([]message.Message, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)

	if f.ExcludeBanned {
		q = q.Where("is_banned = ?", false)
	}

	if cond, args := statusCondition(f.Statuses); cond != "" {
		q = q.Where(cond, args...)
	}

	if f.Search != "" {
		cond, args := searchCondition(f.Search, f.SearchEmail)
		q = q.Where(cond, args...)
	}

	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var messages []message.Message
	err := q.Order("created_at DESC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// statusCondition builds the OR-union over the selected status flags.
// Returns an empty condition when no flag is recognized, so the caller
// can skip the clause.
func statusCondition(statuses []message.Status) (string, []interface{}) {
	var (
		parts []string
		args  []interface{}
	)
	for _, s := range statuses {
		switch s {
		case message.StatusRecent:
			parts = append(parts, "is_recent = ?")
		case message.StatusRead:
			parts = append(parts, "is_read = ?")
		case message.StatusAnswered:
			parts = append(parts, "is_answered = ?")
		default:
			continue
		}
		args = append(args, true)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchCondition builds the case-insensitive substring match. LOWER/LIKE
// instead of ILIKE so the same clause runs on postgres and on the sqlite
// database the tests use. The needle is escaped so % and _ in user input
// match literally.
func searchCondition(search string, includeEmail bool) (string, []interface{}) {
	needle := "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
	columns := []string{"title", "content"}
	if includeEmail {
		columns = append(columns, "contact_email")
	}
	var (
		parts []string
		args  []interface{}
	)
	for _, col := range columns {
		parts = append(parts, "LOWER("+col+") LIKE ? ESCAPE '\\'")
		args = append(args, needle)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

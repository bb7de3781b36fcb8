package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"messagebox/config"
	"messagebox/internal/domain/message"
	"messagebox/internal/repository"
	mb_errors "messagebox/pkg/errors"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type MessageService struct {
	repo          repository.MessageRepository
	excludeBanned bool
	searchEmail   bool
	now           func() time.Time
}

func NewMessageService(repo repository.MessageRepository, cfg *config.Config) *MessageService {
	return &MessageService{
		repo:          repo,
		excludeBanned: cfg.ListExcludeBanned,
		searchEmail:   cfg.SearchIncludeEmail,
		now:           time.Now,
	}
}

type CreateMessageInput struct {
	ContactEmail string
	SenderName   string
	Title        string
	Content      string
}

type UpdateMessageInput struct {
	ContactEmail *string
	SenderName   *string
	Title        *string
	Content      *string
	IsRecent     *bool
	IsRead       *bool
	IsAnswered   *bool
	IsBanned     *bool
}

// ListQuery carries the raw listing parameters. Filter is a pointer
// because an absent parameter and a present-but-useless one behave
// differently: absent passes everything through, present with no
// recognized status yields an empty result.
type ListQuery struct {
	Filter   *string
	Search   string
	FromDate string
	ToDate   string
}

func (s *MessageService) Create(ctx context.Context, ownerID uuid.UUID, in CreateMessageInput) (message.Message, error) {
	if strings.TrimSpace(in.Content) == "" {
		return message.Message{}, fmt.Errorf("%w: content is required", mb_errors.ErrInvalidInput)
	}

	m := &message.Message{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		ContactEmail: in.ContactEmail,
		SenderName:   in.SenderName,
		Title:        in.Title,
		Content:      in.Content,
		IsRecent:     true,
		IsRead:       false,
		IsAnswered:   false,
		IsBanned:     false,
		CreatedAt:    s.now().UTC(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return message.Message{}, err
	}
	return *m, nil
}

func (s *MessageService) Get(ctx context.Context, id, ownerID uuid.UUID) (message.Message, error) {
	return s.repo.GetByOwner(ctx, id, ownerID)
}

// Update applies a partial update. Identity fields (id, owner, created_at)
// are not part of the input type, so payloads cannot move them.
func (s *MessageService) Update(ctx context.Context, id, ownerID uuid.UUID, in UpdateMessageInput) (message.Message, error) {
	m, err := s.repo.GetByOwner(ctx, id, ownerID)
	if err != nil {
		return message.Message{}, err
	}

	if in.ContactEmail != nil {
		m.ContactEmail = *in.ContactEmail
	}
	if in.SenderName != nil {
		m.SenderName = *in.SenderName
	}
	if in.Title != nil {
		m.Title = *in.Title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return message.Message{}, fmt.Errorf("%w: content is required", mb_errors.ErrInvalidInput)
		}
		m.Content = *in.Content
	}
	if in.IsRecent != nil {
		m.IsRecent = *in.IsRecent
	}
	if in.IsRead != nil {
		m.IsRead = *in.IsRead
	}
	if in.IsAnswered != nil {
		m.IsAnswered = *in.IsAnswered
	}
	if in.IsBanned != nil {
		m.IsBanned = *in.IsBanned
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return message.Message{}, err
	}
	return m, nil
}

func (s *MessageService) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return s.repo.DeleteByOwner(ctx, id, ownerID)
}

func (s *MessageService) List(ctx context.Context, ownerID uuid.UUID, q ListQuery) ([]message.Message, error) {
	f := message.Filter{
		Search:        q.Search,
		SearchEmail:   s.searchEmail,
		ExcludeBanned: s.excludeBanned,
	}

	if q.Filter != nil {
		statuses := parseStatuses(*q.Filter)
		if len(statuses) == 0 {
			return []message.Message{}, nil
		}
		f.Statuses = statuses
	}

	if q.FromDate != "" {
		t, err := parseDate(q.FromDate)
		if err != nil {
			return nil, fmt.Errorf("%w: fd must be a %s date", mb_errors.ErrInvalidParameter, dateLayout)
		}
		f.From = &t
	}
	if q.ToDate != "" {
		t, err := parseDate(q.ToDate)
		if err != nil {
			return nil, fmt.Errorf("%w: td must be a %s date", mb_errors.ErrInvalidParameter, dateLayout)
		}
		f.To = &t
	}

	return s.repo.ListByOwner(ctx, ownerID, f)
}

// parseStatuses keeps the recognized tokens and drops the rest.
func parseStatuses(raw string) []message.Status {
	var statuses []message.Status
	for _, token := range strings.Split(raw, ",") {
		switch message.Status(strings.TrimSpace(token)) {
		case message.StatusRecent:
			statuses = append(statuses, message.StatusRecent)
		case message.StatusRead:
			statuses = append(statuses, message.StatusRead)
		case message.StatusAnswered:
			statuses = append(statuses, message.StatusAnswered)
		}
	}
	return statuses
}

// parseDate interprets a calendar date as UTC midnight.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

package service

import (
	"context"

	"hr-dashboard-api/core/errors"
	"hr-dashboard-api/core/params"
	"hr-dashboard-api/modules/notification/dto"
	"hr-dashboard-api/modules/notification/entity"
	"hr-dashboard-api/modules/notification/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest) error {
	return s.repo.Create(ctx, &entity.Notification{
		UserID:  req.UserID,
		Title:   req.Title,
		Message: req.Message,
		Type:    req.Type,
		Data:    entity.JSONB(req.Data),
	})
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedNotificationEntity, error) {
	return s.repo.GetByUserID(ctx, userID, queryParams)
}

// MarkAsRead marks the given ids read, or everything when ids is empty.
func (s *NotificationService) MarkAsRead(ctx context.Context, userID uuid.UUID, ids []string) error {
	if len(ids) == 0 {
		return s.repo.MarkAllAsRead(ctx, userID)
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errors.NewAppError(errors.ErrInvalidInput, "invalid notification id: "+raw, err)
		}
		parsed = append(parsed, id)
	}
	return s.repo.MarkAsRead(ctx, userID, parsed)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

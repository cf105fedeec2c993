package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrNotNotificationOwner = errors.New("notification belongs to another user")
)

// NotificationService is the mutation facade for the notification inbox.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	feed             *live.Feed
	log              *logger.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository, feed *live.Feed, log *logger.Logger) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		feed:             feed,
		log:              log,
	}
}

// ListNotifications returns the owner's notifications, newest first.
func (s *NotificationService) ListNotifications(ownerID uint64) ([]models.Notification, error) {
	if ownerID == 0 {
		return []models.Notification{}, nil
	}

	notifications, err := s.notificationRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// Notify records a notification in the target user's inbox and publishes the
// change. Used by the other facades as a side channel; failures are the
// caller's to log, never to abort the triggering mutation.
func (s *NotificationService) Notify(ctx context.Context, ownerID uint64, category models.NotificationCategory, title, body string, meta models.NotificationMeta) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	notification := &models.Notification{
		OwnerID:  ownerID,
		Category: category,
		Body:     body,
		Meta:     meta,
	}

	if err := writeThrough(ctx, "notification", func() error {
		return s.notificationRepo.Create(notification)
	}); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.feed.Publish(live.UserNotifications(ownerID))

	return nil
}

// MarkRead marks one notification read. Already-read is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	if _, err := s.getOwned(notificationID, ownerID); err != nil {
		return err
	}

	if err := writeThrough(ctx, "notification", func() error {
		return s.notificationRepo.MarkRead(notificationID)
	}); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	s.feed.Publish(live.UserNotifications(ownerID))

	return nil
}

// MarkAllRead marks every unread notification in the inbox read.
func (s *NotificationService) MarkAllRead(ctx context.Context, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	if err := writeThrough(ctx, "notification", func() error {
		return s.notificationRepo.MarkAllRead(ownerID)
	}); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	s.feed.Publish(live.UserNotifications(ownerID))

	return nil
}

// Dismiss permanently deletes a notification. Inbox entries are disposable;
// there is no undo.
func (s *NotificationService) Dismiss(ctx context.Context, notificationID, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	if _, err := s.getOwned(notificationID, ownerID); err != nil {
		return err
	}

	if err := writeThrough(ctx, "notification", func() error {
		return s.notificationRepo.Delete(notificationID)
	}); err != nil {
		return fmt.Errorf("failed to dismiss notification: %w", err)
	}

	s.feed.Publish(live.UserNotifications(ownerID))

	return nil
}

func (s *NotificationService) getOwned(notificationID, ownerID uint64) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	if notification.OwnerID != ownerID {
		return nil, ErrNotNotificationOwner
	}
	return notification, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mlm_backoffice/internal/apperrors"
	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/mlm_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mlm_backoffice/internal/core/ports/services"
	"github.com/SscSPs/mlm_backoffice/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	AdminAuthorizer portssvc.AdminAuthorizerSvc
	Events          portssvc.EventPublisher
	Clock           func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// AuthorizeAdmin fails closed: without an authorizer every admin action is refused.
func (s *BaseService) AuthorizeAdmin(ctx context.Context, userID string) error {
	if s.AdminAuthorizer == nil {
		s.LogWarn(ctx, "No admin authorizer configured, refusing admin action", slog.String("user_id", userID))
		return fmt.Errorf("%w: admin authorizer not configured", apperrors.ErrUnauthorized)
	}
	return s.AdminAuthorizer.AuthorizeAdmin(ctx, userID)
}

// AuthorizeSelfOrAdmin allows owners through without a lookup.
func (s *BaseService) AuthorizeSelfOrAdmin(ctx context.Context, requestingUserID, ownerUserID string) error {
	if requestingUserID != "" && requestingUserID == ownerUserID {
		return nil
	}
	if s.AdminAuthorizer == nil {
		return fmt.Errorf("%w: user %s may not access resources of %s", apperrors.ErrForbidden, requestingUserID, ownerUserID)
	}
	return s.AdminAuthorizer.AuthorizeSelfOrAdmin(ctx, requestingUserID, ownerUserID)
}

// PublishEvent publishes after commit. Failures are logged; the committed change stands.
func (s *BaseService) PublishEvent(ctx context.Context, event domain.Event) {
	if s.Events == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.Now()
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish event",
			slog.String("event_type", string(event.Type)),
			slog.String("resource_id", event.ResourceID))
	}
}

// BaseOption configures the BaseService embedded in every service.
type BaseOption func(*BaseService)

// WithAdminAuthorizer sets the authorizer used for admin-only operations.
func WithAdminAuthorizer(authorizer portssvc.AdminAuthorizerSvc) BaseOption {
	return func(b *BaseService) {
		b.AdminAuthorizer = authorizer
	}
}

// WithEventPublisher sets the publisher notified after each committed change.
func WithEventPublisher(publisher portssvc.EventPublisher) BaseOption {
	return func(b *BaseService) {
		b.Events = publisher
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(clock func() time.Time) BaseOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

func newBaseService(options ...BaseOption) BaseService {
	var b BaseService
	for _, option := range options {
		option(&b)
	}
	return b
}

// rollback is deferred right after Begin. Rolling back a committed transaction is a no-op.
func (s *BaseService) rollback(ctx context.Context, txManager portsrepo.TransactionManager, tx portsrepo.Tx) {
	if err := txManager.Rollback(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to rollback transaction")
	}
}

package profileservice

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	profiledomain "github.com/tarok-klub/tarok-backend/app/modules/profile/domain"
	profiledb "github.com/tarok-klub/tarok-backend/app/modules/profile/infrastructure/repositories"
	"github.com/tarok-klub/tarok-backend/app/shared/attr"
	"github.com/tarok-klub/tarok-backend/app/shared/metrics"
)

const moduleName = "profile"

// ErrEmptyName is returned when a profile name is blank after trimming.
var ErrEmptyName = fmt.Errorf("profile name must not be empty")

// Service is the profile module's application surface.
type Service interface {
	GetOrCreateByName(ctx context.Context, name string) (profiledomain.PlayerProfile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (profiledomain.PlayerProfile, error)
	ListProfiles(ctx context.Context) ([]profiledomain.PlayerProfile, error)
	SearchProfiles(ctx context.Context, query string) ([]profiledomain.PlayerProfile, error)
}

// ProfileService implements the Service interface.
type ProfileService struct {
	repo    profiledb.Repository
	db      bun.IDB
	logger  *slog.Logger
	metrics metrics.OperationMetrics
}

// NewProfileService creates a new ProfileService.
func NewProfileService(
	repo profiledb.Repository,
	db bun.IDB,
	logger *slog.Logger,
	operationMetrics metrics.OperationMetrics,
) *ProfileService {
	return &ProfileService{
		repo:    repo,
		db:      db,
		logger:  logger,
		metrics: operationMetrics,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withOperation wraps a service operation with logging, metrics, and panic
// recovery.
func withOperation[T any](
	s *ProfileService,
	ctx context.Context,
	operationName string,
	op operationFunc[T],
) (result T, err error) {
	s.metrics.RecordOperationAttempt(ctx, operationName, moduleName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, moduleName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		attr.String("operation", operationName),
		attr.ExtractCorrelationID(ctx),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("operation", operationName),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, moduleName)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, moduleName)
		return result, wrappedErr
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, moduleName)
	return result, nil
}

// GetOrCreateByName resolves a profile by exact name, creating it on first
// use. Names are trimmed; blank names are rejected.
func (s *ProfileService) GetOrCreateByName(ctx context.Context, name string) (profiledomain.PlayerProfile, error) {
	return withOperation(s, ctx, "GetOrCreateByName", func(ctx context.Context) (profiledomain.PlayerProfile, error) {
		name = strings.TrimSpace(name)
		if name == "" {
			return profiledomain.PlayerProfile{}, ErrEmptyName
		}
		return s.repo.GetOrCreateByName(ctx, s.db, name)
	})
}

func (s *ProfileService) GetProfile(ctx context.Context, profileID uuid.UUID) (profiledomain.PlayerProfile, error) {
	return withOperation(s, ctx, "GetProfile", func(ctx context.Context) (profiledomain.PlayerProfile, error) {
		return s.repo.GetProfile(ctx, s.db, profileID)
	})
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]profiledomain.PlayerProfile, error) {
	return withOperation(s, ctx, "ListProfiles", func(ctx context.Context) ([]profiledomain.PlayerProfile, error) {
		return s.repo.ListProfiles(ctx, s.db)
	})
}

func (s *ProfileService) SearchProfiles(ctx context.Context, query string) ([]profiledomain.PlayerProfile, error) {
	return withOperation(s, ctx, "SearchProfiles", func(ctx context.Context) ([]profiledomain.PlayerProfile, error) {
		return s.repo.SearchProfiles(ctx, s.db, strings.TrimSpace(query))
	})
}

var _ Service = (*ProfileService)(nil)

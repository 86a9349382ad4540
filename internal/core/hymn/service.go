package hymn

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/hinario/internal/platform/constants"
	"github.com/taibuivan/hinario/internal/platform/validate"
)

// Service owns the public hymn catalog business rules: server-side name
// normalization, payload validation, and list caching.
type Service struct {
	repo   Repository
	cache  ListCache
	logger *slog.Logger
}

func NewService(repo Repository, cache ListCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// List returns the full catalog ordered by number ascending.
//
// The cache is best-effort: any cache failure degrades to the database and
// is logged, never surfaced. A list response may be immediately stale
// relative to a concurrent creation.
func (service *Service) List(context context.Context) ([]PublicHymn, error) {

	if service.cache != nil {
		hymns, hit, err := service.cache.Get(context)
		if err != nil {
			service.logger.Warn("hymn_list_cache_degraded", slog.Any("error", err))
		} else if hit {
			return hymns, nil
		}
	}

	hymns, err := service.repo.ListHymns(context)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		if err := service.cache.Set(context, hymns); err != nil {
			service.logger.Warn("hymn_list_cache_set_failed", slog.Any("error", err))
		}
	}

	return hymns, nil
}

// Create validates, normalizes, and persists a new public hymn.
//
// Normalization (trim, then upper-case) is applied here exactly once, so a
// caller that skipped client-side normalization still produces a canonical
// record. Validation rejects the payload before any store interaction.
func (service *Service) Create(context context.Context, input CreatePublicHymnInput) (*PublicHymn, error) {

	name := strings.ToUpper(strings.TrimSpace(input.Name))

	submittedBy := normalizeSubmitter(input.SubmittedBy)
	submitterValue := ""
	if submittedBy != nil {
		submitterValue = *submittedBy
	}

	v := &validate.Validator{}
	if err := v.
		Required("name", name).
		MaxLen("name", name, constants.MaxNameLen).
		MaxLen("submitted_by", submitterValue, constants.MaxSubmitterLen).
		Err(); err != nil {
		return nil, err
	}

	hymn, err := service.repo.CreateHymn(context, name, submittedBy)
	if err != nil {
		return nil, err
	}

	service.logger.Info("public_hymn_created",
		slog.String("number", hymn.Number),
		slog.Int64("id", hymn.ID),
	)

	// The next listing must include the new hymn immediately.
	if service.cache != nil {
		if err := service.cache.Invalidate(context); err != nil {
			service.logger.Warn("hymn_list_cache_invalidate_failed", slog.Any("error", err))
		}
	}

	return hymn, nil
}

// normalizeSubmitter trims the optional attribution and collapses an empty
// result to nil so the store persists NULL instead of "".
func normalizeSubmitter(submittedBy *string) *string {
	if submittedBy == nil {
		return nil
	}

	trimmed := strings.TrimSpace(*submittedBy)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package hymn_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hinario/internal/core/hymn"
	"github.com/taibuivan/hinario/internal/platform/apperr"
	"github.com/taibuivan/hinario/pkg/pointer"
)

// memoryRepository emulates the store's numbering guarantee: the count-read
// and insert are atomic under a single lock, like the serializable
// transaction in the postgres implementation.
type memoryRepository struct {
	mu        sync.Mutex
	hymns     []hymn.PublicHymn
	nextID    int64
	createErr error
	listErr   error
}

func (r *memoryRepository) ListHymns(_ context.Context) ([]hymn.PublicHymn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.listErr != nil {
		return nil, r.listErr
	}

	out := make([]hymn.PublicHymn, len(r.hymns))
	copy(out, r.hymns)
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *memoryRepository) CreateHymn(_ context.Context, name string, submittedBy *string) (*hymn.PublicHymn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	r.nextID++
	created := hymn.PublicHymn{
		ID:          r.nextID,
		Number:      fmt.Sprintf("A%d", len(r.hymns)+1),
		Name:        name,
		SubmittedBy: submittedBy,
	}
	r.hymns = append(r.hymns, created)
	return &created, nil
}

// recordingCache tracks cache interactions for assertions.
type recordingCache struct {
	mu          sync.Mutex
	stored      []hymn.PublicHymn
	hit         bool
	getErr      error
	invalidated int
}

func (c *recordingCache) Get(_ context.Context) ([]hymn.PublicHymn, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	if !c.hit {
		return nil, false, nil
	}
	return c.stored, true, nil
}

func (c *recordingCache) Set(_ context.Context, hymns []hymn.PublicHymn) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = hymns
	c.hit = true
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stored = nil
	c.hit = false
	c.invalidated++
	return nil
}

func newTestService(repo hymn.Repository, cache hymn.ListCache) *hymn.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return hymn.NewService(repo, cache, logger)
}

func TestService_Create_NormalizesName(t *testing.T) {
	repo := &memoryRepository{}
	service := newTestService(repo, nil)

	created, err := service.Create(context.Background(), hymn.CreatePublicHymnInput{Name: "  grace "})
	require.NoError(t, err)

	assert.Equal(t, "GRACE", created.Name)
	assert.Equal(t, "A1", created.Number)
	assert.Nil(t, created.SubmittedBy)
}

func TestService_Create_SubmitterCollapsedToNil(t *testing.T) {
	repo := &memoryRepository{}
	service := newTestService(repo, nil)

	created, err := service.Create(context.Background(), hymn.CreatePublicHymnInput{
		Name:        "peace",
		SubmittedBy: pointer.To("   "),
	})
	require.NoError(t, err)
	assert.Nil(t, created.SubmittedBy)

	created, err = service.Create(context.Background(), hymn.CreatePublicHymnInput{
		Name:        "joy",
		SubmittedBy: pointer.To("  Maria  "),
	})
	require.NoError(t, err)
	require.NotNil(t, created.SubmittedBy)
	assert.Equal(t, "Maria", *created.SubmittedBy)
}

func TestService_Create_Validation(t *testing.T) {
	longName := make([]byte, 201)
	for i := range longName {
		longName[i] = 'x'
	}
	longSubmitter := make([]byte, 101)
	for i := range longSubmitter {
		longSubmitter[i] = 'y'
	}

	tests := []struct {
		name  string
		input hymn.CreatePublicHymnInput
		field string
	}{
		{"empty_name", hymn.CreatePublicHymnInput{Name: ""}, "name"},
		{"whitespace_name", hymn.CreatePublicHymnInput{Name: "   "}, "name"},
		{"name_over_200", hymn.CreatePublicHymnInput{Name: string(longName)}, "name"},
		{"submitter_over_100", hymn.CreatePublicHymnInput{Name: "grace", SubmittedBy: pointer.To(string(longSubmitter))}, "submitted_by"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepository{}
			service := newTestService(repo, nil)

			_, err := service.Create(context.Background(), tt.input)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			require.NotEmpty(t, ae.Details)
			assert.Equal(t, tt.field, ae.Details[0].Field)

			// Rejected before any store interaction.
			assert.Empty(t, repo.hymns)
		})
	}
}

func TestService_Create_ConcurrentDistinctNumbers(t *testing.T) {
	repo := &memoryRepository{}
	service := newTestService(repo, nil)

	const writers = 8
	var wg sync.WaitGroup
	numbers := make(chan string, writers)
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := service.Create(context.Background(), hymn.CreatePublicHymnInput{
				Name: fmt.Sprintf("hymn %d", i),
			})
			if err != nil {
				errs <- err
				return
			}
			numbers <- created.Number
		}(i)
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for number := range numbers {
		assert.False(t, seen[number], "duplicate number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, writers)
}

func TestService_List_CacheHit(t *testing.T) {
	repo := &memoryRepository{listErr: errors.New("db must not be reached")}
	cache := &recordingCache{
		hit:    true,
		stored: []hymn.PublicHymn{{ID: 1, Number: "A1", Name: "GRACE"}},
	}
	service := newTestService(repo, cache)

	hymns, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, hymns, 1)
	assert.Equal(t, "A1", hymns[0].Number)
}

func TestService_List_CacheErrorFallsBackToStore(t *testing.T) {
	repo := &memoryRepository{}
	_, err := repo.CreateHymn(context.Background(), "GRACE", nil)
	require.NoError(t, err)

	cache := &recordingCache{getErr: errors.New("redis down")}
	service := newTestService(repo, cache)

	hymns, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, hymns, 1)
	assert.Equal(t, "GRACE", hymns[0].Name)
}

func TestService_Create_InvalidatesCache(t *testing.T) {
	repo := &memoryRepository{}
	cache := &recordingCache{}
	service := newTestService(repo, cache)

	// Warm the cache, then create.
	_, err := service.List(context.Background())
	require.NoError(t, err)
	require.True(t, cache.hit)

	_, err = service.Create(context.Background(), hymn.CreatePublicHymnInput{Name: "grace"})
	require.NoError(t, err)

	assert.Equal(t, 1, cache.invalidated)
	assert.False(t, cache.hit)
}

func TestService_Create_StoreConflictPassesThrough(t *testing.T) {
	repo := &memoryRepository{createErr: apperr.Conflict("Resource already exists")}
	service := newTestService(repo, nil)

	_, err := service.Create(context.Background(), hymn.CreatePublicHymnInput{Name: "grace"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

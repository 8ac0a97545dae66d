package religion_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/apologia/internal/content/religion"
	"github.com/tdnguyen/apologia/internal/content/status"
	"github.com/tdnguyen/apologia/internal/platform/apperr"
)

// fakeRepository keeps religions in a map and tracks the per-religion topic
// count the delete guard consults.
type fakeRepository struct {
	religions   map[int]*religion.Religion
	topicCounts map[int]int
	nextID      int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		religions:   map[int]*religion.Religion{},
		topicCounts: map[int]int{},
		nextID:      1,
	}
}

func (f *fakeRepository) ListReligions(_ context.Context, limit, offset int) ([]*religion.Religion, int, error) {
	out := []*religion.Religion{}
	for _, r := range f.religions {
		out = append(out, r)
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetReligion(_ context.Context, id int) (*religion.Religion, error) {
	r, ok := f.religions[id]
	if !ok {
		return nil, apperr.NotFound("Religion")
	}
	return r, nil
}

func (f *fakeRepository) GetReligionBySlug(_ context.Context, slug string) (*religion.Religion, error) {
	for _, r := range f.religions {
		if r.Slug == slug {
			return r, nil
		}
	}
	return nil, apperr.NotFound("Religion")
}

func (f *fakeRepository) CreateReligion(_ context.Context, r *religion.Religion) error {
	r.ID = f.nextID
	f.nextID++
	f.religions[r.ID] = r
	return nil
}

func (f *fakeRepository) UpdateReligion(_ context.Context, r *religion.Religion) error {
	if _, ok := f.religions[r.ID]; !ok {
		return apperr.NotFound("Religion")
	}
	f.religions[r.ID] = r
	return nil
}

func (f *fakeRepository) DeleteReligion(_ context.Context, id int) error {
	if _, ok := f.religions[id]; !ok {
		return apperr.NotFound("Religion")
	}
	delete(f.religions, id)
	return nil
}

func (f *fakeRepository) PublishReligion(_ context.Context, id int) (*religion.Religion, error) {
	r, ok := f.religions[id]
	if !ok {
		return nil, apperr.NotFound("Religion")
	}
	r.SyncStatus = status.Synced
	return r, nil
}

func (f *fakeRepository) CountTopics(_ context.Context, religionID int) (int, error) {
	return f.topicCounts[religionID], nil
}

func newService(repo *fakeRepository) *religion.Service {
	return religion.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreateReligion_StartsAsDraft verifies that new rows are invisible to the
feed until explicitly published, and that the slug is derived from the name.
*/
func TestCreateReligion_StartsAsDraft(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &religion.Religion{Name: "Kitô giáo", Color: "#3b5998"}
	require.NoError(t, service.CreateReligion(context.Background(), input))

	assert.Equal(t, status.Draft, input.SyncStatus)
	assert.Equal(t, "kito-giao", input.Slug)
	assert.NotZero(t, input.ID)
}

/*
TestCreateReligion_Validation covers the rejection paths.
*/
func TestCreateReligion_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input *religion.Religion
	}{
		{"missing_name", &religion.Religion{Color: "#aabbcc"}},
		{"bad_color", &religion.Religion{Name: "Phật giáo", Color: "blue"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(newFakeRepository())

			err := service.CreateReligion(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestDeleteReligion_RefusedWhileTopicsExist verifies referential
non-deletability: the religion survives the attempt untouched.
*/
func TestDeleteReligion_RefusedWhileTopicsExist(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &religion.Religion{Name: "Hồi giáo"}
	require.NoError(t, service.CreateReligion(context.Background(), input))
	repo.topicCounts[input.ID] = 3

	err := service.DeleteReligion(context.Background(), input.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.GetReligion(context.Background(), input.ID)
	assert.NoError(t, err, "the row must be left unchanged")
}

/*
TestDeleteReligion_SucceedsWhenChildless covers the allowed path.
*/
func TestDeleteReligion_SucceedsWhenChildless(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &religion.Religion{Name: "Do Thái giáo"}
	require.NoError(t, service.CreateReligion(context.Background(), input))
	require.NoError(t, service.DeleteReligion(context.Background(), input.ID))

	_, err := service.GetReligion(context.Background(), input.ID)
	assert.Error(t, err)
}

/*
TestPublishReligion flips the publish gate.
*/
func TestPublishReligion(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &religion.Religion{Name: "Ấn Độ giáo"}
	require.NoError(t, service.CreateReligion(context.Background(), input))

	published, err := service.PublishReligion(context.Background(), input.ID)
	require.NoError(t, err)
	assert.Equal(t, status.Synced, published.SyncStatus)
}

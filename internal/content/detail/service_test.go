package detail_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/apologia/internal/content/detail"
	"github.com/tdnguyen/apologia/internal/content/status"
	"github.com/tdnguyen/apologia/internal/platform/apperr"
)

type fakeRepository struct {
	details map[int]*detail.Detail
	topics  map[int]bool
	nextID  int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		details: map[int]*detail.Detail{},
		topics:  map[int]bool{1: true},
		nextID:  1,
	}
}

func (f *fakeRepository) GetDetail(_ context.Context, id int) (*detail.Detail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, apperr.NotFound("Detail")
	}
	return d, nil
}

func (f *fakeRepository) GetDetailByTopic(_ context.Context, topicID int) (*detail.Detail, error) {
	for _, d := range f.details {
		if d.TopicID == topicID {
			return d, nil
		}
	}
	return nil, apperr.NotFound("Detail")
}

func (f *fakeRepository) CreateDetail(_ context.Context, d *detail.Detail) error {
	d.ID = f.nextID
	f.nextID++
	f.details[d.ID] = d
	return nil
}

// UpdateDetail mirrors the SQL store: content replaced, version incremented
// in the same step.
func (f *fakeRepository) UpdateDetail(_ context.Context, d *detail.Detail) error {
	existing, ok := f.details[d.ID]
	if !ok {
		return apperr.NotFound("Detail")
	}
	d.TopicID = existing.TopicID
	d.Version = existing.Version + 1
	d.SyncStatus = existing.SyncStatus
	f.details[d.ID] = d
	return nil
}

func (f *fakeRepository) DeleteDetail(_ context.Context, id int) error {
	if _, ok := f.details[id]; !ok {
		return apperr.NotFound("Detail")
	}
	delete(f.details, id)
	return nil
}

func (f *fakeRepository) PublishDetail(_ context.Context, id int) (*detail.Detail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, apperr.NotFound("Detail")
	}
	d.SyncStatus = status.Synced
	return d, nil
}

func (f *fakeRepository) TopicExists(_ context.Context, topicID int) (bool, error) {
	return f.topics[topicID], nil
}

func newService(repo *fakeRepository) *detail.Service {
	return detail.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreateDetail_StartsAtVersionOne verifies the baseline of the edit
counter and the publish gate on fresh detail rows.
*/
func TestCreateDetail_StartsAtVersionOne(t *testing.T) {
	service := newService(newFakeRepository())

	input := &detail.Detail{TopicID: 1, Explanation: "Một Chúa Ba Ngôi."}
	require.NoError(t, service.CreateDetail(context.Background(), input))

	assert.Equal(t, 1, input.Version)
	assert.Equal(t, status.Draft, input.SyncStatus)
}

/*
TestCreateDetail_RequiresExistingTopic covers the missing-parent rejection.
*/
func TestCreateDetail_RequiresExistingTopic(t *testing.T) {
	service := newService(newFakeRepository())

	err := service.CreateDetail(context.Background(), &detail.Detail{TopicID: 42, Explanation: "…"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestCreateDetail_OnePerTopic verifies the 1:0..1 relation: a second detail
for the same topic is a conflict, not an implicit edit.
*/
func TestCreateDetail_OnePerTopic(t *testing.T) {
	service := newService(newFakeRepository())

	first := &detail.Detail{TopicID: 1, Explanation: "bản gốc"}
	require.NoError(t, service.CreateDetail(context.Background(), first))

	err := service.CreateDetail(context.Background(), &detail.Detail{TopicID: 1, Explanation: "bản trùng"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestUpdateDetail_IncrementsVersionByOne verifies version monotonicity: each
successful content update moves the counter up by exactly one.
*/
func TestUpdateDetail_IncrementsVersionByOne(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &detail.Detail{TopicID: 1, Explanation: "phiên bản 1"}
	require.NoError(t, service.CreateDetail(context.Background(), input))

	for expected := 2; expected <= 4; expected++ {
		edit := &detail.Detail{Explanation: "phiên bản mới"}
		require.NoError(t, service.UpdateDetail(context.Background(), input.ID, edit))
		assert.Equal(t, expected, edit.Version)
	}
}

/*
TestPublishDetail flips the publish gate without touching the version.
*/
func TestPublishDetail(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &detail.Detail{TopicID: 1, Explanation: "…"}
	require.NoError(t, service.CreateDetail(context.Background(), input))

	published, err := service.PublishDetail(context.Background(), input.ID)
	require.NoError(t, err)
	assert.Equal(t, status.Synced, published.SyncStatus)
	assert.Equal(t, 1, published.Version)
}

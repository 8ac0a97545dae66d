package topic_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/apologia/internal/content/status"
	"github.com/tdnguyen/apologia/internal/content/topic"
	"github.com/tdnguyen/apologia/internal/platform/apperr"
)

type fakeRepository struct {
	topics     map[int]*topic.Topic
	religions  map[int]bool
	withDetail map[int]bool
	nextID     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		topics:     map[int]*topic.Topic{},
		religions:  map[int]bool{1: true},
		withDetail: map[int]bool{},
		nextID:     1,
	}
}

func (f *fakeRepository) ListTopics(_ context.Context, religionID, limit, offset int) ([]*topic.Topic, int, error) {
	out := []*topic.Topic{}
	for _, t := range f.topics {
		if religionID == 0 || t.ReligionID == religionID {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepository) GetTopic(_ context.Context, id int) (*topic.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, apperr.NotFound("Topic")
	}
	return t, nil
}

func (f *fakeRepository) GetTopicBySlug(_ context.Context, slug string) (*topic.Topic, error) {
	for _, t := range f.topics {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, apperr.NotFound("Topic")
}

func (f *fakeRepository) CreateTopic(_ context.Context, t *topic.Topic) error {
	t.ID = f.nextID
	f.nextID++
	f.topics[t.ID] = t
	return nil
}

func (f *fakeRepository) UpdateTopic(_ context.Context, t *topic.Topic) error {
	existing, ok := f.topics[t.ID]
	if !ok {
		return apperr.NotFound("Topic")
	}
	t.ReligionID = existing.ReligionID
	f.topics[t.ID] = t
	return nil
}

func (f *fakeRepository) DeleteTopic(_ context.Context, id int) error {
	if _, ok := f.topics[id]; !ok {
		return apperr.NotFound("Topic")
	}
	delete(f.topics, id)
	return nil
}

func (f *fakeRepository) PublishTopic(_ context.Context, id int) (*topic.Topic, error) {
	t, ok := f.topics[id]
	if !ok {
		return nil, apperr.NotFound("Topic")
	}
	t.SyncStatus = status.Synced
	return t, nil
}

func (f *fakeRepository) ReligionExists(_ context.Context, religionID int) (bool, error) {
	return f.religions[religionID], nil
}

func (f *fakeRepository) HasDetail(_ context.Context, topicID int) (bool, error) {
	return f.withDetail[topicID], nil
}

func newService(repo *fakeRepository) *topic.Service {
	return topic.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

/*
TestCreateTopic_RequiresExistingReligion verifies that the parent check runs
before the insert and surfaces as a 404, not a constraint conflict.
*/
func TestCreateTopic_RequiresExistingReligion(t *testing.T) {
	service := newService(newFakeRepository())

	err := service.CreateTopic(context.Background(), &topic.Topic{ReligionID: 99, Title: "Ngũ Kinh"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestCreateTopic_StartsAsDraft verifies the publish gate on new topics.
*/
func TestCreateTopic_StartsAsDraft(t *testing.T) {
	service := newService(newFakeRepository())

	input := &topic.Topic{ReligionID: 1, Title: "Ba Ngôi"}
	require.NoError(t, service.CreateTopic(context.Background(), input))

	assert.Equal(t, status.Draft, input.SyncStatus)
	assert.Equal(t, "ba-ngoi", input.Slug)
}

/*
TestDeleteTopic_RefusedWhileDetailExists verifies referential
non-deletability on the topic/detail edge.
*/
func TestDeleteTopic_RefusedWhileDetailExists(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &topic.Topic{ReligionID: 1, Title: "Thập giá"}
	require.NoError(t, service.CreateTopic(context.Background(), input))
	repo.withDetail[input.ID] = true

	err := service.DeleteTopic(context.Background(), input.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	_, err = service.GetTopic(context.Background(), input.ID)
	assert.NoError(t, err, "the row must be left unchanged")
}

/*
TestUpdateTopic_KeepsReligion verifies that edits cannot move a topic to a
different religion.
*/
func TestUpdateTopic_KeepsReligion(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	input := &topic.Topic{ReligionID: 1, Title: "Phục sinh"}
	require.NoError(t, service.CreateTopic(context.Background(), input))

	edit := &topic.Topic{ReligionID: 2, Title: "Phục sinh (sửa)"}
	require.NoError(t, service.UpdateTopic(context.Background(), input.ID, edit))

	stored, err := service.GetTopic(context.Background(), input.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.ReligionID)
	assert.Equal(t, "Phục sinh (sửa)", stored.Title)
}

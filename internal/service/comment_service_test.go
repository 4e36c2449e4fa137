package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "showcase/internal/errors"
	"showcase/internal/model"
)

func newCommentFixture() (*MockCommentRepository, *MockProjectRepository, *MockUserRepository, CommentService) {
	comments := new(MockCommentRepository)
	projects := new(MockProjectRepository)
	users := new(MockUserRepository)
	return comments, projects, users, NewCommentService(comments, projects, users)
}

func TestValidateCommentText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  string
		valid bool
	}{
		{name: "trimmed", text: "  nice work \n", want: "nice work", valid: true},
		{name: "exactly 1000 characters", text: strings.Repeat("a", 1000), want: strings.Repeat("a", 1000), valid: true},
		{name: "1000 multibyte characters", text: strings.Repeat("é", 1000), want: strings.Repeat("é", 1000), valid: true},
		{name: "1001 characters", text: strings.Repeat("a", 1001)},
		{name: "empty", text: ""},
		{name: "whitespace only", text: " \t "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateCommentText(tt.text)
			if tt.valid {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var verr *apperrors.ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.Equal(t, "text", verr.Fields[0].Field)
		})
	}
}

func TestCommentService_Create(t *testing.T) {
	author := uuid.New()
	projectID := uuid.New()

	t.Run("created on existing project", func(t *testing.T) {
		comments, projects, users, service := newCommentFixture()
		projects.On("FindByID", mock.Anything, projectID).Return(&model.Project{ID: projectID}, nil)
		users.On("FindByID", mock.Anything, author).Return(&model.User{ID: author}, nil)
		comments.On("Create", mock.Anything, mock.AnythingOfType("*model.Comment")).Return(nil)

		comment, err := service.Create(context.Background(), projectID.String(), author, " great ")

		assert.NoError(t, err)
		assert.Equal(t, "great", comment.Text)
		assert.Equal(t, projectID, comment.ProjectID)
		assert.Equal(t, author, comment.UserID)
		comments.AssertExpectations(t)
		projects.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	t.Run("unknown project", func(t *testing.T) {
		comments, projects, _, service := newCommentFixture()
		projects.On("FindByID", mock.Anything, projectID).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Create(context.Background(), projectID.String(), author, "great")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed project id", func(t *testing.T) {
		_, _, _, service := newCommentFixture()

		_, err := service.Create(context.Background(), "abc", author, "great")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("text over limit", func(t *testing.T) {
		comments, _, _, service := newCommentFixture()

		_, err := service.Create(context.Background(), projectID.String(), author, strings.Repeat("x", 1001))

		var verr *apperrors.ValidationError
		assert.True(t, errors.As(err, &verr))
		comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestCommentService_List(t *testing.T) {
	comments, _, _, service := newCommentFixture()
	projectID := uuid.New()
	comments.On("ListByProject", mock.Anything, projectID).Return([]model.Comment{{Text: "newer"}, {Text: "older"}}, nil)

	list, err := service.List(context.Background(), projectID.String())
	assert.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = service.List(context.Background(), "nope")
	var verr *apperrors.ValidationError
	assert.True(t, errors.As(err, &verr))
	comments.AssertExpectations(t)
}

func TestCommentService_Update(t *testing.T) {
	author := uuid.New()

	t.Run("author updates text", func(t *testing.T) {
		comments, _, _, service := newCommentFixture()
		comment := &model.Comment{ID: uuid.New(), Text: "old", UserID: author, Version: 1}
		comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		comments.On("Update", mock.Anything, comment, 1).Return(nil)

		updated, err := service.Update(context.Background(), comment.ID.String(), author, "new")

		assert.NoError(t, err)
		assert.Equal(t, "new", updated.Text)
		comments.AssertExpectations(t)
	})

	t.Run("other user is forbidden and text is unchanged", func(t *testing.T) {
		comments, _, _, service := newCommentFixture()
		comment := &model.Comment{ID: uuid.New(), Text: "old", UserID: author, Version: 1}
		comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)

		_, err := service.Update(context.Background(), comment.ID.String(), uuid.New(), "defaced")

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.Equal(t, "old", comment.Text)
		comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race", func(t *testing.T) {
		comments, _, _, service := newCommentFixture()
		comment := &model.Comment{ID: uuid.New(), Text: "old", UserID: author, Version: 4}
		comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		comments.On("Update", mock.Anything, comment, 4).Return(apperrors.ErrConflict)

		_, err := service.Update(context.Background(), comment.ID.String(), author, "new")

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("unknown comment", func(t *testing.T) {
		comments, _, _, service := newCommentFixture()
		id := uuid.New()
		comments.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := service.Update(context.Background(), id.String(), author, "new")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestCommentService_Delete(t *testing.T) {
	author := uuid.New()
	comment := &model.Comment{ID: uuid.New(), Text: "bye", UserID: author}

	t.Run("author deletes", func(t *testing.T) {
		comments, _, _, service := newCommentFixture()
		comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)
		comments.On("Delete", mock.Anything, comment.ID).Return(nil)

		assert.NoError(t, service.Delete(context.Background(), comment.ID.String(), author))
		comments.AssertExpectations(t)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		comments, _, _, service := newCommentFixture()
		comments.On("FindByID", mock.Anything, comment.ID).Return(comment, nil)

		err := service.Delete(context.Background(), comment.ID.String(), uuid.New())

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, _, _, service := newCommentFixture()

		assert.ErrorIs(t, service.Delete(context.Background(), "xyz", author), apperrors.ErrNotFound)
	})
}

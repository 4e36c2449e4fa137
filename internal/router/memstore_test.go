package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "showcase/internal/errors"
	"showcase/internal/model"
)

// memStore backs the repository interfaces with maps so routes can be
// exercised end to end without MySQL. It follows the gorm repositories'
// error contract: gorm.ErrRecordNotFound for misses, ErrConflict for lost races.
type memStore struct {
	mu       sync.Mutex
	clock    time.Time
	users    map[uuid.UUID]model.User
	projects map[uuid.UUID]model.Project
	comments map[uuid.UUID]model.Comment
}

func newMemStore() *memStore {
	return &memStore{
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:    map[uuid.UUID]model.User{},
		projects: map[uuid.UUID]model.Project{},
		comments: map[uuid.UUID]model.Comment{},
	}
}

// tick returns strictly increasing timestamps so newest-first ordering is deterministic.
func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) author(id uuid.UUID) *model.User {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &model.User{ID: u.ID, Username: u.Username}
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	user.CreatedAt = r.tick()
	r.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r memUsers) FindByUsernameOrEmail(_ context.Context, username, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.first(func(u model.User) bool { return u.Username == username })
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.first(func(u model.User) bool { return u.Email == email })
}

func (r memUsers) first(match func(model.User) bool) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memProjects struct{ *memStore }

func (r memProjects) Create(_ context.Context, project *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := project.BeforeCreate(nil); err != nil {
		return err
	}
	project.CreatedAt = r.tick()
	project.UpdatedAt = project.CreatedAt
	stored := *project
	stored.User = nil
	r.projects[project.ID] = stored
	project.User = r.author(project.UserID)
	return nil
}

func (r memProjects) FindByID(_ context.Context, id uuid.UUID) (*model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.User = r.author(p.UserID)
	return &p, nil
}

func (r memProjects) list(keep func(model.Project) bool) []model.Project {
	out := []model.Project{}
	for _, p := range r.projects {
		if keep(p) {
			p.User = r.author(p.UserID)
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memProjects) List(_ context.Context) ([]model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(model.Project) bool { return true }), nil
}

func (r memProjects) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.list(func(p model.Project) bool { return p.UserID == userID }), nil
}

func (r memProjects) Update(_ context.Context, project *model.Project, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.projects[project.ID]
	if !ok || stored.Version != expectedVersion {
		return apperrors.ErrConflict
	}
	stored.Title = project.Title
	stored.Description = project.Description
	stored.Category = project.Category
	stored.ImageURL = project.ImageURL
	stored.Version = expectedVersion + 1
	stored.UpdatedAt = r.tick()
	r.projects[project.ID] = stored
	project.Version = stored.Version
	project.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r memProjects) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.projects, id)
	return nil
}

type memComments struct{ *memStore }

func (r memComments) Create(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := comment.BeforeCreate(nil); err != nil {
		return err
	}
	comment.CreatedAt = r.tick()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	stored.User = nil
	r.comments[comment.ID] = stored
	comment.User = r.author(comment.UserID)
	return nil
}

func (r memComments) FindByID(_ context.Context, id uuid.UUID) (*model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c.User = r.author(c.UserID)
	return &c, nil
}

func (r memComments) ListByProject(_ context.Context, projectID uuid.UUID) ([]model.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []model.Comment{}
	for _, c := range r.comments {
		if c.ProjectID == projectID {
			c.User = r.author(c.UserID)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memComments) Update(_ context.Context, comment *model.Comment, expectedVersion int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.comments[comment.ID]
	if !ok || stored.Version != expectedVersion {
		return apperrors.ErrConflict
	}
	stored.Text = comment.Text
	stored.Version = expectedVersion + 1
	stored.UpdatedAt = r.tick()
	r.comments[comment.ID] = stored
	comment.Version = stored.Version
	comment.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r memComments) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r memComments) DeleteByProject(_ context.Context, projectID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, c := range r.comments {
		if c.ProjectID == projectID {
			delete(r.comments, id)
			n++
		}
	}
	return n, nil
}

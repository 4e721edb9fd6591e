package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/gosuda/taskboard/internal/api/v1"
	"github.com/gosuda/taskboard/internal/domain"
)

// ---------------------------------------------------------------------------
// POST /projects
// ---------------------------------------------------------------------------

func TestCreateProject(t *testing.T) {
	t.Parallel()

	t.Run("happy_path_seeds_owner_and_default_statuses", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		var createdMember *domain.Member
		var createdStatuses []*domain.Status

		_, api := humatest.New(t)
		store := &mockDataStore{
			projects: &mockProjectRepo{
				createFunc: func(_ context.Context, _ *domain.Project) error { return nil },
			},
			members: &mockMemberRepo{
				createFunc: func(_ context.Context, m *domain.Member) error {
					createdMember = m
					return nil
				},
			},
			statuses: &mockStatusRepo{
				createFunc: func(_ context.Context, s *domain.Status) error {
					createdStatuses = append(createdStatuses, s)
					return nil
				},
			},
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.PostCtx(userCtx(uid), "/projects", map[string]any{
			"name":        "launch-plan",
			"description": "Q4 launch",
		})

		require.Equal(t, http.StatusCreated, resp.Code)

		var body struct {
			Project domain.Project `json:"project"`
		}
		err := json.Unmarshal(resp.Body.Bytes(), &body)
		require.NoError(t, err)
		assert.Equal(t, "launch-plan", body.Project.Name)
		assert.Equal(t, "#3b82f6", body.Project.Color, "default color applied")
		assert.Equal(t, uid, body.Project.OwnerID)

		require.NotNil(t, createdMember)
		assert.Equal(t, uid, createdMember.UserID)
		assert.Equal(t, domain.RoleOwner, createdMember.Role)

		require.Len(t, createdStatuses, 3)
		assert.Equal(t, "To Do", createdStatuses[0].Name)
		assert.Equal(t, "In Progress", createdStatuses[1].Name)
		assert.Equal(t, "Done", createdStatuses[2].Name)
		for i, s := range createdStatuses {
			assert.Equal(t, i, s.Position)
			assert.Equal(t, body.Project.ID, s.ProjectID)
		}
	})

	t.Run("missing_user_context", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{projects: &mockProjectRepo{}}
		v1.RegisterProjectRoutes(api, store)

		resp := api.PostCtx(context.Background(), "/projects", map[string]any{
			"name": "no-auth",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("store_error", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		_, api := humatest.New(t)
		store := &mockDataStore{
			projects: &mockProjectRepo{
				createFunc: func(_ context.Context, _ *domain.Project) error {
					return errors.New("db: connection refused")
				},
			},
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.PostCtx(userCtx(uid), "/projects", map[string]any{
			"name": "failing",
		})

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// GET /projects
// ---------------------------------------------------------------------------

func TestListProjects(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		projects := []*domain.Project{
			{ID: uuid.New(), Name: "alpha", OwnerID: uid, Color: "#3b82f6"},
			{ID: uuid.New(), Name: "beta", OwnerID: uuid.New(), Color: "#ef4444"},
		}

		_, api := humatest.New(t)
		store := &mockDataStore{
			projects: &mockProjectRepo{
				listByUserFunc: func(_ context.Context, userID uuid.UUID) ([]*domain.Project, error) {
					assert.Equal(t, uid, userID)
					return projects, nil
				},
			},
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.GetCtx(userCtx(uid), "/projects")

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Projects []domain.Project `json:"projects"`
		}
		err := json.Unmarshal(resp.Body.Bytes(), &body)
		require.NoError(t, err)
		require.Len(t, body.Projects, 2)
		assert.Equal(t, "alpha", body.Projects[0].Name)
		assert.Equal(t, "beta", body.Projects[1].Name)
	})
}

// ---------------------------------------------------------------------------
// GET /projects/{projectID}
// ---------------------------------------------------------------------------

func TestGetProject(t *testing.T) {
	t.Parallel()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		pid := uuid.New()
		project := &domain.Project{ID: pid, Name: "my-project", OwnerID: uid, Color: "#3b82f6"}

		_, api := humatest.New(t)
		store := &mockDataStore{
			projects: &mockProjectRepo{
				getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Project, error) {
					assert.Equal(t, pid, id)
					return project, nil
				},
			},
			members: memberOf(uid, pid, domain.RoleMember),
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.GetCtx(userCtx(uid), "/projects/"+pid.String())

		require.Equal(t, http.StatusOK, resp.Code)

		var body struct {
			Project domain.Project `json:"project"`
		}
		err := json.Unmarshal(resp.Body.Bytes(), &body)
		require.NoError(t, err)
		assert.Equal(t, pid, body.Project.ID)
	})

	t.Run("non_member_forbidden", func(t *testing.T) {
		t.Parallel()

		pid := uuid.New()
		_, api := humatest.New(t)
		store := &mockDataStore{
			members: memberOf(uuid.New(), pid, domain.RoleMember),
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.GetCtx(userCtx(uuid.New()), "/projects/"+pid.String())

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// PUT /projects/{projectID}
// ---------------------------------------------------------------------------

func TestUpdateProject(t *testing.T) {
	t.Parallel()

	t.Run("partial_update_fields", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		pid := uuid.New()
		existing := &domain.Project{ID: pid, Name: "old-name", Description: "keep me", OwnerID: uid, Color: "#3b82f6"}

		var updated *domain.Project
		_, api := humatest.New(t)
		store := &mockDataStore{
			projects: &mockProjectRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
					return existing, nil
				},
				updateFunc: func(_ context.Context, p *domain.Project) error {
					updated = p
					return nil
				},
			},
			members: memberOf(uid, pid, domain.RoleMember),
		}
		v1.RegisterProjectRoutes(api, store)

		// Only send name -- description and color should remain unchanged.
		resp := api.PutCtx(userCtx(uid), "/projects/"+pid.String(), map[string]any{
			"name": "new-name",
		})

		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, updated)
		assert.Equal(t, "new-name", updated.Name)
		assert.Equal(t, "keep me", updated.Description, "description should remain unchanged")
		assert.Equal(t, "#3b82f6", updated.Color, "color should remain unchanged")
	})
}

// ---------------------------------------------------------------------------
// POST /projects/{projectID}/archive, DELETE /projects/{projectID}
// ---------------------------------------------------------------------------

func TestArchiveProject(t *testing.T) {
	t.Parallel()

	t.Run("owner_archives", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		pid := uuid.New()
		existing := &domain.Project{ID: pid, Name: "p", OwnerID: uid, Color: "#3b82f6"}

		var updated *domain.Project
		_, api := humatest.New(t)
		store := &mockDataStore{
			projects: &mockProjectRepo{
				getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.Project, error) {
					return existing, nil
				},
				updateFunc: func(_ context.Context, p *domain.Project) error {
					updated = p
					return nil
				},
			},
			members: memberOf(uid, pid, domain.RoleOwner),
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.PostCtx(userCtx(uid), "/projects/"+pid.String()+"/archive", map[string]any{})

		require.Equal(t, http.StatusOK, resp.Code)
		require.NotNil(t, updated)
		assert.True(t, updated.Archived)
	})

	t.Run("plain_member_cannot_archive", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		pid := uuid.New()

		_, api := humatest.New(t)
		store := &mockDataStore{
			members: memberOf(uid, pid, domain.RoleMember),
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.PostCtx(userCtx(uid), "/projects/"+pid.String()+"/archive", map[string]any{})

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

func TestDeleteProject(t *testing.T) {
	t.Parallel()

	t.Run("owner_deletes", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		pid := uuid.New()

		_, api := humatest.New(t)
		store := &mockDataStore{
			projects: &mockProjectRepo{
				deleteFunc: func(_ context.Context, id uuid.UUID) error {
					assert.Equal(t, pid, id)
					return nil
				},
			},
			members: memberOf(uid, pid, domain.RoleOwner),
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.DeleteCtx(userCtx(uid), "/projects/"+pid.String())

		assert.Equal(t, http.StatusNoContent, resp.Code)
	})

	t.Run("plain_member_cannot_delete", func(t *testing.T) {
		t.Parallel()

		uid := uuid.New()
		pid := uuid.New()

		_, api := humatest.New(t)
		store := &mockDataStore{
			members: memberOf(uid, pid, domain.RoleMember),
		}
		v1.RegisterProjectRoutes(api, store)

		resp := api.DeleteCtx(userCtx(uid), "/projects/"+pid.String())

		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}

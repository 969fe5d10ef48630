package endpoints

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nimbus-Analytics/stratus/internal/http/api"
	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/platform"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

type fakeStore struct {
	users    map[string]*model.User
	datasets map[string]model.Dataset
	jobs     map[string]model.Job
	nextID   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*model.User{},
		datasets: map[string]model.Dataset{},
		jobs:     map[string]model.Job{},
	}
}

func (f *fakeStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	f.nextID++
	f.users[email] = &model.User{ID: f.nextID, Email: email, HashedPassword: hashedPassword, Name: name}
	return f.nextID, nil
}

func (f *fakeStore) GetUserByEmail(email string) (*model.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeStore) GetUserByID(id int) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) UpdateUserProfile(id int, email string, name *string) error { return nil }

func (f *fakeStore) UpsertDataset(d model.Dataset) error {
	f.datasets[d.ID] = d
	return nil
}

func (f *fakeStore) GetDatasetByID(id string) (*model.Dataset, error) {
	d, ok := f.datasets[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (f *fakeStore) ListDatasets() ([]model.Dataset, error) {
	out := make([]model.Dataset, 0, len(f.datasets))
	for _, d := range f.datasets {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeStore) UpsertJob(j model.Job) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeStore) GetJobByID(id string) (*model.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &j, nil
}

func (f *fakeStore) ListJobs() ([]model.Job, error) {
	out := make([]model.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

type fakePlatform struct {
	datasets map[string]model.Dataset
	jobs     map[string]model.Job
}

func (f *fakePlatform) GetDataset(_ context.Context, id string) (*model.Dataset, error) {
	d, ok := f.datasets[id]
	if !ok {
		return nil, platform.ErrNotFound
	}
	return &d, nil
}

func (f *fakePlatform) GetJob(_ context.Context, id string) (*model.Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, platform.ErrNotFound
	}
	return &j, nil
}

// injectUser stands in for the JWT middleware in handler tests.
func injectUser(user *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", user)
		c.Next()
	}
}

func setupRouter(store *fakeStore, pf *fakePlatform) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	user := &model.User{ID: 1, Email: "admin@example.com"}
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/admin",
		Middleware: []gin.HandlerFunc{injectUser(user)},
	},
		DatasetModule(store, pf),
		JobModule(store, pf),
		ScheduleModule(),
	)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func mustParse(t *testing.T, raw map[string]any) schedule.Schedule {
	t.Helper()
	s, _ := schedule.Parse(raw)
	return s
}

func TestListDatasetsIncludesScheduleDescription(t *testing.T) {
	store := newFakeStore()
	sched := mustParse(t, map[string]any{"scheduleExpression": "0 9 * * *"})
	store.datasets["ds-1"] = model.Dataset{ID: "ds-1", Name: "Sales", Schedule: &sched}

	r := setupRouter(store, &fakePlatform{})
	w := doJSON(t, r, http.MethodGet, "/api/admin/datasets", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)

	schedBlock, ok := resp[0]["schedule"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "CRON", schedBlock["schedule_type"])
	assert.Equal(t, "Runs via cron expression '0 9 * * *'", schedBlock["description"])
}

func TestGetDatasetWithoutScheduleOmitsBlock(t *testing.T) {
	store := newFakeStore()
	store.datasets["ds-2"] = model.Dataset{ID: "ds-2", Name: "Archive"}

	r := setupRouter(store, &fakePlatform{})
	w := doJSON(t, r, http.MethodGet, "/api/admin/datasets/ds-2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	_, present := resp["schedule"]
	assert.False(t, present)
}

func TestGetDatasetNotFound(t *testing.T) {
	r := setupRouter(newFakeStore(), &fakePlatform{})
	w := doJSON(t, r, http.MethodGet, "/api/admin/datasets/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResyncDatasetReplacesStoredMirror(t *testing.T) {
	store := newFakeStore()
	stale := mustParse(t, map[string]any{"scheduleExpression": "MANUAL"})
	store.datasets["ds-1"] = model.Dataset{ID: "ds-1", Name: "Sales", Schedule: &stale}

	fresh := mustParse(t, map[string]any{"scheduleExpression": "0 9 * * *"})
	pf := &fakePlatform{datasets: map[string]model.Dataset{
		"ds-1": {ID: "ds-1", Name: "Sales", Schedule: &fresh},
	}}

	r := setupRouter(store, pf)
	w := doJSON(t, r, http.MethodPost, "/api/admin/datasets/ds-1/resync", nil)
	require.Equal(t, http.StatusOK, w.Code)

	stored := store.datasets["ds-1"]
	require.NotNil(t, stored.Schedule)
	assert.Equal(t, schedule.TypeCron, stored.Schedule.Type)
}

func TestResyncDatasetGoneFromPlatform(t *testing.T) {
	r := setupRouter(newFakeStore(), &fakePlatform{})
	w := doJSON(t, r, http.MethodPost, "/api/admin/datasets/ds-1/resync", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListJobsAlwaysIncludeSchedule(t *testing.T) {
	store := newFakeStore()
	store.jobs["job-1"] = model.Job{ID: "job-1", Name: "Refresh", Schedule: mustParse(t, nil)}

	r := setupRouter(store, &fakePlatform{})
	w := doJSON(t, r, http.MethodGet, "/api/admin/jobs", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)

	schedBlock, ok := resp[0]["schedule"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Manual trigger only", schedBlock["description"])
}

func TestPreviewSchedule(t *testing.T) {
	r := setupRouter(newFakeStore(), &fakePlatform{})

	w := doJSON(t, r, http.MethodPost, "/api/admin/schedules/preview", map[string]any{
		"advancedScheduleJson": map[string]any{
			"frequency":  "WEEKLY",
			"daysOfWeek": []int{1, 3, 5},
			"hour":       14,
			"minute":     30,
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ADVANCED", resp["schedule_type"])
	assert.Equal(t, "Weekly on Monday, Wednesday, Friday at 14:30", resp["description"])
	_, hasIssues := resp["issues"]
	assert.False(t, hasIssues)
}

func TestPreviewScheduleReportsIssues(t *testing.T) {
	r := setupRouter(newFakeStore(), &fakePlatform{})

	w := doJSON(t, r, http.MethodPost, "/api/admin/schedules/preview", map[string]any{
		"scheduleExpression": "run at 5",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// heuristic classifies it as cron; strict validation flags it
	assert.Equal(t, "CRON", resp["schedule_type"])
	issues, ok := resp["issues"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, issues)
}

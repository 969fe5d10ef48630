package platform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

func newTestServer(t *testing.T, datasets, jobs string) (*httptest.Server, *int32) {
	t.Helper()
	var tokenCalls int32

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "client-id" || pass != "client-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token","expires_in":3600}`))
	})
	requireBearer := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer test-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			h(w, r)
		}
	}
	mux.HandleFunc("/v1/datasets", requireBearer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(datasets))
	}))
	mux.HandleFunc("/v1/jobs", requireBearer(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(jobs))
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &tokenCalls
}

func TestListDatasetsHydratesSchedules(t *testing.T) {
	srv, tokenCalls := newTestServer(t, `[
		{"id":"ds-1","name":"Sales","rows":120,"columns":8,
		 "owner":{"name":"Dana"},
		 "advancedScheduleJson":{"frequency":"WEEKLY","daysOfWeek":[1,3,5],"hour":14,"minute":30},
		 "scheduleStartDate":"2024-03-01T09:30:00Z","isActive":true},
		{"id":"ds-2","name":"Inventory","scheduleExpression":"0 9 * * *"},
		{"id":"ds-3","name":"Archive"},
		{"name":"no id, dropped"}
	]`, `[]`)

	c := NewClient(srv.URL, "client-id", "client-secret")
	datasets, err := c.ListDatasets(context.Background())
	require.NoError(t, err)
	require.Len(t, datasets, 3)

	weekly := datasets[0]
	require.NotNil(t, weekly.Schedule)
	assert.Equal(t, schedule.TypeAdvanced, weekly.Schedule.Type)
	assert.Equal(t, schedule.FreqWeekly, weekly.Schedule.Frequency)
	assert.Equal(t, []int{1, 3, 5}, weekly.Schedule.Advanced.DaysOfWeek)
	assert.True(t, weekly.Schedule.StartDate.Parsed)
	require.NotNil(t, weekly.OwnerName)
	assert.Equal(t, "Dana", *weekly.OwnerName)

	cronDS := datasets[1]
	require.NotNil(t, cronDS.Schedule)
	assert.Equal(t, schedule.TypeCron, cronDS.Schedule.Type)
	assert.Equal(t, "0 9 * * *", cronDS.Schedule.Cron.Expression)

	// no schedule keys at all -> nil, not a manual default
	assert.Nil(t, datasets[2].Schedule)

	// token fetched once, then cached
	assert.Equal(t, int32(1), *tokenCalls)
}

func TestListJobsAlwaysCarrySchedule(t *testing.T) {
	srv, _ := newTestServer(t, `[]`, `[
		{"id":"job-1","name":"Nightly refresh","datasetId":"ds-1","scheduleExpression":"MANUAL"},
		{"id":"job-2","name":"No schedule keys","enabled":false}
	]`)

	c := NewClient(srv.URL, "client-id", "client-secret")
	jobs, err := c.ListJobs(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, schedule.TypeSimple, jobs[0].Schedule.Type)
	assert.Equal(t, schedule.KeywordManual, jobs[0].Schedule.Simple.Keyword)
	assert.True(t, jobs[0].Enabled)

	// empty record still normalizes to the manual default
	assert.Equal(t, schedule.TypeSimple, jobs[1].Schedule.Type)
	assert.Equal(t, schedule.FreqManual, jobs[1].Schedule.Frequency)
	assert.False(t, jobs[1].Enabled)
}

func TestGetDatasetNotFound(t *testing.T) {
	srv, _ := newTestServer(t, `[]`, `[]`)
	c := NewClient(srv.URL, "client-id", "client-secret")

	_, err := c.GetDataset(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTokenRejected(t *testing.T) {
	srv, _ := newTestServer(t, `[]`, `[]`)
	c := NewClient(srv.URL, "client-id", "wrong-secret")

	_, err := c.ListDatasets(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

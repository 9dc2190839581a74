package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/karanshah229/taskapp/internal/domain/entity"
)

type captured struct {
	method string
	path   string
	body   string
}

func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*TaskIndex, *[]captured) {
	t.Helper()
	var reqs []captured
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		reqs = append(reqs, captured{method: r.Method, path: r.URL.Path, body: string(b)})
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewTaskIndex(es, "tasks"), &reqs
}

func TestTaskIndex_Search(t *testing.T) {
	idx, reqs := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"t2"},{"_id":"t1"}]}}`)
	})

	ids, err := idx.Search(context.Background(), "u1", "milk", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2", "t1"}, ids)

	require.Len(t, *reqs, 1)
	req := (*reqs)[0]
	assert.Equal(t, "/tasks/_search", req.path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.body), &body))
	assert.EqualValues(t, 5, body["size"])
	assert.Contains(t, req.body, `"owner":"u1"`)
}

func TestTaskIndex_IndexAndRemove(t *testing.T) {
	idx, reqs := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})
	ctx := context.Background()

	require.NoError(t, idx.Index(ctx, &entity.Task{ID: "t1", OwnerID: "u1", Description: "Buy milk"}))
	require.NoError(t, idx.Remove(ctx, "t1"), "removing a missing document is not an error")

	require.Len(t, *reqs, 2)
	assert.Equal(t, "/tasks/_doc/t1", (*reqs)[0].path)
	assert.True(t, strings.Contains((*reqs)[0].body, `"description":"Buy milk"`))
	assert.Equal(t, http.MethodDelete, (*reqs)[1].method)
}

func TestTaskIndex_ErrorStatus(t *testing.T) {
	idx, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"boom"}`)
	})
	err := idx.RemoveOwner(context.Background(), "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delete tasks by owner")
}

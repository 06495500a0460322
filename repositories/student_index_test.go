package repositories

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func fakeElasticsearch(t *testing.T, status int, response string, requests *[]string) *elasticsearch.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*requests = append(*requests, r.URL.Path+" "+string(body))
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return es
}

func TestEsSearch(t *testing.T) {
	var requests []string
	es := fakeElasticsearch(t, http.StatusOK, `{"hits":{"hits":[
		{"_source":{"namelist":"n1","rollno":"R1","name":"Alice","registration_no":"4NI001"}}
	]}}`, &requests)
	index := NewEsStudentIndex(es)
	idUser := primitive.NewObjectID()
	idBatch := primitive.NewObjectID()

	hits, err := index.Search(context.Background(), idUser, idBatch, "ali")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, StudentHit{Namelist: "n1", RegistrationNo: "4NI001", Rollno: "R1", Name: "Alice"}, hits[0])

	require.Len(t, requests, 1)
	assert.Contains(t, requests[0], "/"+STUDENTS_INDEX+"/_search")
	assert.Contains(t, requests[0], `"ali*"`)
	assert.Contains(t, requests[0], idUser.Hex())
	assert.Contains(t, requests[0], idBatch.Hex())
}

func TestEsSearchWithoutIndex(t *testing.T) {
	var requests []string
	es := fakeElasticsearch(t, http.StatusNotFound, `{"error":"index_not_found_exception"}`, &requests)

	hits, err := NewEsStudentIndex(es).Search(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), "x")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestEsRemoveBatch(t *testing.T) {
	var requests []string
	es := fakeElasticsearch(t, http.StatusOK, `{"deleted":2}`, &requests)
	idBatch := primitive.NewObjectID()

	require.NoError(t, NewEsStudentIndex(es).RemoveBatch(context.Background(), primitive.NewObjectID(), idBatch))
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0], "_delete_by_query")
	assert.Contains(t, requests[0], idBatch.Hex())
}

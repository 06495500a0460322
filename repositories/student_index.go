package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/CPU-commits/Intranet_BAttainment/db"
	"github.com/CPU-commits/Intranet_BAttainment/models"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const STUDENTS_INDEX = "students"

const MAX_SEARCH_HITS = 50

type esStudent struct {
	User           string `json:"user"`
	Batch          string `json:"batch"`
	Namelist       string `json:"namelist"`
	RegistrationNo string `json:"registration_no"`
	Rollno         string `json:"rollno"`
	Name           string `json:"name"`
}

type esSearchResponse struct {
	Hits struct {
		Hits []struct {
			Source esStudent `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type esStudentIndex struct {
	es *elasticsearch.Client
}

func NewEsStudentIndex(es *elasticsearch.Client) StudentIndex {
	return &esStudentIndex{es: es}
}

func quote(value string) string {
	quoted, _ := json.Marshal(value)
	return string(quoted)
}

func termFilters(terms map[string]string) string {
	filters := make([]string, 0, len(terms))
	for field, value := range terms {
		filters = append(filters, fmt.Sprintf(`{ "term": { %s: %s } }`, quote(field), quote(value)))
	}
	return strings.Join(filters, ",")
}

func (e *esStudentIndex) deleteByQuery(ctx context.Context, terms map[string]string) error {
	query := db.ConstructQuery(fmt.Sprintf(`"bool": { "filter": [%s] }`, termFilters(terms)))
	response, err := e.es.DeleteByQuery(
		[]string{STUDENTS_INDEX},
		query,
		e.es.DeleteByQuery.WithContext(ctx),
		e.es.DeleteByQuery.WithRefresh(true),
	)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	// The index is created lazily by the first bulk request
	if response.IsError() && response.StatusCode != 404 {
		return fmt.Errorf("elasticsearch delete by query: %s", response.String())
	}
	return nil
}

// Replaces the indexed students of the name list
func (e *esStudentIndex) Index(ctx context.Context, namelist *models.Namelist) error {
	if err := e.Remove(ctx, namelist.User, namelist.ID); err != nil {
		return err
	}
	if len(namelist.Students) == 0 {
		return nil
	}
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         STUDENTS_INDEX,
		Client:        e.es,
		NumWorkers:    db.NUM_WORKERS,
		FlushBytes:    db.FLUSH_BYTES,
		FlushInterval: db.FLUSH_INTERVAL,
		Refresh:       "true",
	})
	if err != nil {
		return err
	}
	for _, student := range namelist.Students {
		data, err := json.Marshal(esStudent{
			User:           namelist.User.Hex(),
			Batch:          namelist.Batch.Hex(),
			Namelist:       namelist.ID.Hex(),
			RegistrationNo: student.RegistrationNo,
			Rollno:         student.Rollno,
			Name:           student.Name,
		})
		if err != nil {
			return err
		}
		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: fmt.Sprintf("%s-%s", namelist.ID.Hex(), student.Rollno),
				Body:       bytes.NewReader(data),
			},
		)
		if err != nil {
			return err
		}
	}
	if err := bi.Close(ctx); err != nil {
		return err
	}
	if stats := bi.Stats(); stats.NumFailed > 0 {
		return fmt.Errorf("%d students could not be indexed", stats.NumFailed)
	}
	return nil
}

func (e *esStudentIndex) Remove(ctx context.Context, idUser, idNamelist primitive.ObjectID) error {
	return e.deleteByQuery(ctx, map[string]string{
		"user":     idUser.Hex(),
		"namelist": idNamelist.Hex(),
	})
}

func (e *esStudentIndex) RemoveBatch(ctx context.Context, idUser, idBatch primitive.ObjectID) error {
	return e.deleteByQuery(ctx, map[string]string{
		"user":  idUser.Hex(),
		"batch": idBatch.Hex(),
	})
}

func (e *esStudentIndex) Search(
	ctx context.Context,
	idUser,
	idBatch primitive.ObjectID,
	q string,
) ([]StudentHit, error) {
	simpleQuery := fmt.Sprintf(
		`"bool": {"must": { "simple_query_string": { "query": %s, "fields": ["name", "rollno", "registration_no"], "analyzer": "standard" } },`,
		quote(q+"*"),
	)
	simpleQuery += fmt.Sprintf(`"filter": [%s] }`, termFilters(map[string]string{
		"user":  idUser.Hex(),
		"batch": idBatch.Hex(),
	}))

	response, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(STUDENTS_INDEX),
		e.es.Search.WithBody(db.ConstructQuery(simpleQuery)),
		e.es.Search.WithSize(MAX_SEARCH_HITS),
	)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	if response.StatusCode == 404 {
		return []StudentHit{}, nil
	}
	if response.IsError() {
		return nil, fmt.Errorf("elasticsearch search: %s", response.String())
	}

	var decoded esSearchResponse
	if err := json.NewDecoder(response.Body).Decode(&decoded); err != nil {
		return nil, err
	}
	hits := make([]StudentHit, 0, len(decoded.Hits.Hits))
	for _, hit := range decoded.Hits.Hits {
		hits = append(hits, StudentHit{
			Namelist:       hit.Source.Namelist,
			RegistrationNo: hit.Source.RegistrationNo,
			Rollno:         hit.Source.Rollno,
			Name:           hit.Source.Name,
		})
	}
	return hits, nil
}

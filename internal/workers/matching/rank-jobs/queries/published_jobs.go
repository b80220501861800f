// internal/workers/matching/rank-jobs/queries/published_jobs.go
package queries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"matching-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var ErrMissingIndex = errors.New("index name is required")

// Filter narrows the published jobs considered for ranking. Empty fields do
// not filter.
type Filter struct {
	Country       string   `json:"country,omitempty"`
	City          string   `json:"city,omitempty"`
	RoleNeeded    string   `json:"roleNeeded,omitempty"`
	Industries    []string `json:"industries,omitempty"`
	LocationModes []string `json:"locationModes,omitempty"`
}

type SearchResult struct {
	Jobs      []models.Job
	TotalHits int64
	Took      int64
}

// BuildPublishedJobsQuery returns the search body for published jobs
// matching f, newest first.
func BuildPublishedJobsQuery(f Filter) map[string]interface{} {
	filters := []interface{}{
		map[string]interface{}{"term": map[string]interface{}{"status": string(models.JobStatusPublished)}},
	}

	if f.Country != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"location.country": f.Country},
		})
	}
	if f.City != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"location.city": f.City},
		})
	}
	if f.RoleNeeded != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"roleNeeded": f.RoleNeeded},
		})
	}
	if len(f.Industries) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"industries": f.Industries},
		})
	}
	if len(f.LocationModes) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"location.mode": f.LocationModes},
		})
	}

	return map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
		"sort": []interface{}{
			map[string]interface{}{"qualityScoreInt": map[string]interface{}{"order": "desc"}},
		},
	}
}

// SearchPublishedJobs fetches up to size published jobs from index.
func SearchPublishedJobs(ctx context.Context, client *elasticsearch.Client, index string, f Filter, size int) (*SearchResult, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}

	body, err := json.Marshal(BuildPublishedJobsQuery(f))
	if err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.Status())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	jobs := make([]models.Job, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		job := hit.Source
		if job.ID == "" {
			job.ID = hit.ID
		}
		jobs = append(jobs, job)
	}

	return &SearchResult{
		Jobs:      jobs,
		TotalHits: r.Hits.Total.Value,
		Took:      r.Took,
	}, nil
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			ID     string     `json:"_id"`
			Source models.Job `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

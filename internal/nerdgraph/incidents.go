package nerdgraph

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// fetchBatchSize is the page cap NRQL enforces per query.
const fetchBatchSize = 2000

// defaultFetchLimit bounds the total rows pulled when the caller does not.
const defaultFetchLimit = 100000

// nrqlTimeLayout is the timestamp format NRQL accepts in SINCE/UNTIL clauses.
const nrqlTimeLayout = "2006-01-02 15:04:05"

const nrqlQuery = `query ($accountId: Int!, $nrqlQuery: Nrql!) {
  actor {
    account(id: $accountId) {
      nrql(query: $nrqlQuery) {
        results
      }
    }
  }
}`

// FetchOptions controls the incident fetch window and volume.
type FetchOptions struct {
	Since           time.Time
	Until           time.Time
	Limit           int
	ExcludeWarnings bool
}

// FetchIncidents pulls NrAiIncident rows for the window using key-set
// pagination: each batch walks the UNTIL bound back to the trailing row's
// timestamp until the limit is reached or a short batch signals the end.
// Results are returned raw for the incident engine to normalize.
func (c *Client) FetchIncidents(ctx context.Context, accountID int, opts FetchOptions) ([]any, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultFetchLimit
	}

	where := "true"
	if opts.ExcludeWarnings {
		where = "priority != 'warning'"
	}

	var all []any
	until := opts.Until

	for len(all) < limit {
		fetch := min(limit-len(all), fetchBatchSize)
		nrql := fmt.Sprintf(
			"SELECT * FROM NrAiIncident WHERE %s SINCE '%s' UNTIL '%s' LIMIT %d",
			where,
			opts.Since.UTC().Format(nrqlTimeLayout),
			until.UTC().Format(nrqlTimeLayout),
			fetch,
		)

		data, err := c.Query(ctx, nrqlQuery, map[string]any{
			"accountId": accountID,
			"nrqlQuery": nrql,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch incidents: %w", err)
		}

		var resp struct {
			Actor struct {
				Account struct {
					NRQL struct {
						Results []any `json:"results"`
					} `json:"nrql"`
				} `json:"account"`
			} `json:"actor"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return nil, fmt.Errorf("decode incident results: %w", err)
		}

		results := resp.Actor.Account.NRQL.Results
		if len(results) == 0 {
			break
		}

		all = append(all, results...)
		slog.Debug("Fetched incident batch", "batch", len(results), "total", len(all))

		if len(results) < fetch || len(all) >= limit {
			break
		}

		last, ok := trailingTimestamp(results)
		if !ok {
			break
		}
		until = last
	}

	return all, nil
}

// trailingTimestamp extracts the last row's epoch-millisecond timestamp to
// seed the next batch's UNTIL bound.
func trailingTimestamp(results []any) (time.Time, bool) {
	rec, ok := results[len(results)-1].(map[string]any)
	if !ok {
		return time.Time{}, false
	}
	ms, ok := rec["timestamp"].(float64)
	if !ok || ms <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)).UTC(), true
}

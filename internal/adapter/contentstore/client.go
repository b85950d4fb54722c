package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/soletra/backdrop-backend/internal/domain"
)

const accessTokenHeader = "X-Store-Access-Token"

// GraphQL documents for the store's record API.
const (
	queryListRecords = `query ListRecords($type: String!, $first: Int!, $after: String) {
  records(type: $type, first: $first, after: $after) {
    nodes { id handle updatedAt fields { key value references { id url mediaType } } }
    pageInfo { endCursor hasNextPage }
  }
}`

	queryGetRecord = `query GetRecord($id: ID!) {
  record(id: $id) { id handle updatedAt fields { key value references { id url mediaType } } }
}`

	mutationCreateRecord = `mutation CreateRecord($type: String!, $fields: [FieldInput!]!) {
  recordCreate(type: $type, fields: $fields) {
    record { id }
    userErrors { message }
  }
}`

	mutationUpdateRecord = `mutation UpdateRecord($id: ID!, $fields: [FieldInput!]!) {
  recordUpdate(id: $id, fields: $fields) {
    record { id }
    userErrors { message }
  }
}`

	mutationDeleteRecord = `mutation DeleteRecord($id: ID!) {
  recordDelete(id: $id) {
    deletedId
    userErrors { message }
  }
}`
)

// Client talks to the remote content store over its GraphQL HTTP API.
type Client struct {
	endpoint    string
	accessToken string
	recordType  string
	httpClient  *http.Client
	log         *slog.Logger
}

// NewClient creates a store client for the given endpoint and access token.
// recordType is the remote object type presets are stored under.
func NewClient(endpoint, accessToken, recordType string, logger *slog.Logger) *Client {
	return &Client{
		endpoint:    endpoint,
		accessToken: accessToken,
		recordType:  recordType,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         logger.With("adapter", "contentstore"),
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors,omitempty"`
}

// List fetches one page of preset records.
func (c *Client) List(ctx context.Context, pageSize int, cursor string) (*Page, error) {
	vars := map[string]any{"type": c.recordType, "first": pageSize}
	if cursor != "" {
		vars["after"] = cursor
	}

	var out struct {
		Records struct {
			Nodes    []Record `json:"nodes"`
			PageInfo struct {
				EndCursor   string `json:"endCursor"`
				HasNextPage bool   `json:"hasNextPage"`
			} `json:"pageInfo"`
		} `json:"records"`
	}
	if err := c.execute(ctx, queryListRecords, vars, &out); err != nil {
		return nil, err
	}

	page := &Page{Records: out.Records.Nodes}
	if out.Records.PageInfo.HasNextPage {
		page.NextCursor = out.Records.PageInfo.EndCursor
	}
	return page, nil
}

// GetByID fetches a single record. Returns nil, nil when the record does
// not exist.
func (c *Client) GetByID(ctx context.Context, id string) (*Record, error) {
	var out struct {
		Record *Record `json:"record"`
	}
	if err := c.execute(ctx, queryGetRecord, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	return out.Record, nil
}

// Create inserts a new record of the client's record type.
func (c *Client) Create(ctx context.Context, fields []Field) error {
	var out struct {
		RecordCreate struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"recordCreate"`
	}
	vars := map[string]any{"type": c.recordType, "fields": fieldInputs(fields)}
	if err := c.execute(ctx, mutationCreateRecord, vars, &out); err != nil {
		return err
	}
	return userErrorsToErr("create", out.RecordCreate.UserErrors)
}

// Update replaces the given fields of an existing record.
func (c *Client) Update(ctx context.Context, id string, fields []Field) error {
	var out struct {
		RecordUpdate struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"recordUpdate"`
	}
	vars := map[string]any{"id": id, "fields": fieldInputs(fields)}
	if err := c.execute(ctx, mutationUpdateRecord, vars, &out); err != nil {
		return err
	}
	return userErrorsToErr("update", out.RecordUpdate.UserErrors)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, id string) error {
	var out struct {
		RecordDelete struct {
			UserErrors []UserError `json:"userErrors"`
		} `json:"recordDelete"`
	}
	if err := c.execute(ctx, mutationDeleteRecord, map[string]any{"id": id}, &out); err != nil {
		return err
	}
	return userErrorsToErr("delete", out.RecordDelete.UserErrors)
}

// Ping issues a minimal listing to check store reachability.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.List(ctx, 1, "")
	return err
}

// fieldInputs strips response-only reference data before sending fields
// back as mutation input.
func fieldInputs(fields []Field) []map[string]string {
	in := make([]map[string]string, 0, len(fields))
	for _, f := range fields {
		in = append(in, map[string]string{"key": f.Key, "value": f.Value})
	}
	return in
}

// userErrorsToErr aggregates a non-empty userErrors array into one hard
// failure.
func userErrorsToErr(op string, errs []UserError) error {
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return fmt.Errorf("%w: %s rejected: %s", domain.ErrUpstream, op, strings.Join(messages, "; "))
}

func (c *Client) execute(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("contentstore: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contentstore: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, c.accessToken)

	resp, err := c.doWithRetry(ctx, req, body)
	if err != nil {
		c.log.ErrorContext(ctx, "store request failed", slog.String("error", err.Error()))
		return fmt.Errorf("%w: request failed: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", domain.ErrUpstream, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}

	var envelope gqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("%w: %s", domain.ErrUpstream, strings.Join(messages, "; "))
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: decode data: %v", domain.ErrUpstream, err)
	}
	return nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The body is replayed from the buffered bytes.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, body []byte) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}
	if resp != nil {
		resp.Body.Close()
	}

	c.log.WarnContext(ctx, "store request retrying", slog.Any("error", err))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(500 * time.Millisecond):
	}

	retry, rerr := http.NewRequestWithContext(ctx, req.Method, req.URL.String(), bytes.NewReader(body))
	if rerr != nil {
		return nil, rerr
	}
	retry.Header = req.Header.Clone()
	return c.httpClient.Do(retry)
}

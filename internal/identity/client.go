package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/legalconnect/schedule-service/internal/apperr"
)

// User is a citizen profile as exposed by the user service.
type User struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// Lawyer is a lawyer profile as exposed by the user service.
type Lawyer struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Client resolves opaque citizen/lawyer IDs against the user service.
type Client interface {
	GetUser(ctx context.Context, id uint) (*User, error)
	GetLawyer(ctx context.Context, id uint) (*Lawyer, error)
}

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (c *HTTPClient) GetUser(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := c.getJSON(ctx, fmt.Sprintf("%s/internal/users/%d", c.baseURL, id), &u,
		apperr.NotFound("citizen_not_found", fmt.Sprintf("citizen %d not found", id)),
	); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) GetLawyer(ctx context.Context, id uint) (*Lawyer, error) {
	var l Lawyer
	if err := c.getJSON(ctx, fmt.Sprintf("%s/internal/lawyers/%d", c.baseURL, id), &l,
		apperr.NotFound("lawyer_not_found", fmt.Sprintf("lawyer %d not found", id)),
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, url string, out any, notFound error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("user service request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case http.StatusNotFound:
		return notFound
	default:
		return fmt.Errorf("user service returned status %d", resp.StatusCode)
	}
}

var _ Client = (*HTTPClient)(nil)

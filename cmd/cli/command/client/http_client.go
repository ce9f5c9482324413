package client

// http_client.go talks to the libraryhub REST API on behalf of the CLI.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"libraryhub/internal/microservices/http-api/dto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server answered %d: %s", e.StatusCode, e.Message)
}

// NotFound reports whether the server answered 404.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// Books

func (c *HTTPClient) ListBooks(ctx context.Context) ([]dto.BookDTO, error) {
	var out []dto.BookDTO
	err := c.do(ctx, http.MethodGet, "/api/books", nil, &out)
	return out, err
}

func (c *HTTPClient) GetBook(ctx context.Context, id int64) (*dto.BookDTOWithUser, error) {
	var out dto.BookDTOWithUser
	if err := c.do(ctx, http.MethodGet, "/api/books/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AddBook(ctx context.Context, in dto.BookAddDTO) (*dto.BookDTO, error) {
	var out dto.BookDTO
	if err := c.do(ctx, http.MethodPost, "/api/books", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) EditBook(ctx context.Context, in dto.BookEditDTO) (*dto.BookDTO, error) {
	var out dto.BookDTO
	if err := c.do(ctx, http.MethodPut, "/api/books", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteBook(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/books/"+strconv.FormatInt(id, 10), nil, nil)
}

// Users

func (c *HTTPClient) ListUsers(ctx context.Context) ([]dto.UserDTO, error) {
	var out []dto.UserDTO
	err := c.do(ctx, http.MethodGet, "/api/users", nil, &out)
	return out, err
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*dto.UserDTOWithBooks, error) {
	var out dto.UserDTOWithBooks
	if err := c.do(ctx, http.MethodGet, "/api/users/"+strconv.FormatInt(id, 10), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AddUser(ctx context.Context, in dto.UserAddDTO) (*dto.UserDTO, error) {
	var out dto.UserDTO
	if err := c.do(ctx, http.MethodPost, "/api/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) EditUser(ctx context.Context, in dto.UserEditDTO) (*dto.UserDTO, error) {
	var out dto.UserDTO
	if err := c.do(ctx, http.MethodPut, "/api/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+strconv.FormatInt(id, 10), nil, nil)
}

// Loans

func (c *HTTPClient) Borrow(ctx context.Context, userID, bookID int64) error {
	in := dto.BorrowDTO{UserID: dto.ID(userID), BookID: dto.ID(bookID)}
	return c.do(ctx, http.MethodPost, "/api/users/Borrow", in, nil)
}

func (c *HTTPClient) Return(ctx context.Context, bookID int64) error {
	q := url.Values{"bookId": {strconv.FormatInt(bookID, 10)}}
	return c.do(ctx, http.MethodPost, "/api/users/Return?"+q.Encode(), nil, nil)
}

// do sends body as JSON (when non-nil) and decodes a 2xx answer into out
// (when non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	response, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &APIError{StatusCode: response.StatusCode, Message: errorMessage(response.Body)}
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage understands both {"error": "..."} and plain-text bodies.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(raw))
}

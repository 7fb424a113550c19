package webclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"kb-server/entities"
	"kb-server/repositories"
	"kb-server/usecases"
)

// APIClient is a typed client for the REST API; every call except
// register/login carries the bearer token mirrored in the page cookie.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// APIError carries the server's envelope message and status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *APIClient) do(method, path, token string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func (c *APIClient) Register(email, password string) (*usecases.AuthResult, error) {
	var result usecases.AuthResult
	err := c.do(http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *APIClient) Login(email, password string) (*usecases.AuthResult, error) {
	var result usecases.AuthResult
	err := c.do(http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": email, "password": password}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *APIClient) ListArticles(token, search, tags string, page int) (*repositories.PaginatedArticles, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if tags != "" {
		q.Set("tags", tags)
	}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}

	path := "/api/articles"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var result repositories.PaginatedArticles
	if err := c.do(http.MethodGet, path, token, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *APIClient) GetArticle(token, id string) (*entities.Article, error) {
	var article entities.Article
	if err := c.do(http.MethodGet, "/api/articles/"+id, token, nil, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *APIClient) CreateArticle(token, title, body string, tags []string) (*entities.Article, error) {
	var article entities.Article
	err := c.do(http.MethodPost, "/api/articles", token,
		map[string]interface{}{"title": title, "body": body, "tags": tags}, &article)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *APIClient) UpdateArticle(token, id, title, body string, tags []string) (*entities.Article, error) {
	var article entities.Article
	err := c.do(http.MethodPut, "/api/articles/"+id, token,
		map[string]interface{}{"title": title, "body": body, "tags": tags}, &article)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

func (c *APIClient) DeleteArticle(token, id string) error {
	return c.do(http.MethodDelete, "/api/articles/"+id, token, nil, nil)
}

func (c *APIClient) Summarize(token, id string) (string, error) {
	var result struct {
		Summary string `json:"summary"`
	}
	if err := c.do(http.MethodPost, "/api/ai/summarize/"+id, token, nil, &result); err != nil {
		return "", err
	}
	return result.Summary, nil
}

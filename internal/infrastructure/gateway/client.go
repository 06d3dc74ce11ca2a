package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/you/termbridge/domain"
)

// Endpoint paths of the portal backend.
const (
	loginPath         = "/abha/login"
	profilePath       = "/abha/profile"
	historyPath       = "/abha/translation-history"
	saveHistoryPath   = "/abha/save-translation"
	namasteSearchPath = "/namaste/namaste/search"
	icdSearchPath     = "/icd/icd11/tm2/search"
	translatePath     = "/mapping/translate"
)

// Client implements domain.GatewayClient over the portal's REST API. It is
// the only place that knows endpoint paths and payload shapes. The bearer
// token is read from the token store at call time; the client itself never
// writes the store.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     domain.TokenStore
	logger     *zap.Logger
}

// New creates a gateway client for the backend at baseURL. A zero timeout
// means requests wait indefinitely; callers abandon responses they no
// longer want rather than aborting them.
func New(baseURL string, tokens domain.TokenStore, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

type loginRequest struct {
	ABHAID string `json:"abha_id"`
	Phone  string `json:"phone"`
}

type codeSystemResponse struct {
	ResourceType string                     `json:"resourceType"`
	Concepts     []domain.CodeSystemConcept `json:"concepts"`
}

type conceptMapResponse struct {
	ResourceType string                     `json:"resourceType"`
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	Mappings     []domain.ConceptMapMapping `json:"mappings"`
}

type historyResponse struct {
	History []domain.TranslationHistoryEntry `json:"history"`
}

type saveTranslationResponse struct {
	Message string `json:"message"`
	EntryID int64  `json:"entry_id"`
}

// Login implements domain.GatewayClient
func (c *Client) Login(ctx context.Context, abhaID, phone string) (*domain.LoginResult, error) {
	var result domain.LoginResult
	body := loginRequest{ABHAID: abhaID, Phone: phone}
	if err := c.do(ctx, http.MethodPost, loginPath, nil, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchProfile implements domain.GatewayClient
func (c *Client) FetchProfile(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.do(ctx, http.MethodGet, profilePath, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchHistory implements domain.GatewayClient
func (c *Client) FetchHistory(ctx context.Context) ([]domain.TranslationHistoryEntry, error) {
	var resp historyResponse
	if err := c.do(ctx, http.MethodGet, historyPath, nil, nil, &resp); err != nil {
		return nil, err
	}
	if resp.History == nil {
		return []domain.TranslationHistoryEntry{}, nil
	}
	return resp.History, nil
}

// SaveTranslation implements domain.GatewayClient
func (c *Client) SaveTranslation(ctx context.Context, rec *domain.TranslationRecord) (int64, error) {
	var resp saveTranslationResponse
	if err := c.do(ctx, http.MethodPost, saveHistoryPath, nil, rec, &resp); err != nil {
		return 0, err
	}
	return resp.EntryID, nil
}

// Search implements domain.GatewayClient
func (c *Client) Search(ctx context.Context, system domain.SearchSystem, query string) ([]domain.CodeSystemConcept, error) {
	var path string
	switch system {
	case domain.SearchNamaste:
		path = namasteSearchPath
	case domain.SearchICD:
		path = icdSearchPath
	default:
		return nil, &domain.ValidationError{Field: "system", Message: fmt.Sprintf("unsupported search system %q", system)}
	}

	q := url.Values{}
	q.Set("query", query)

	var resp codeSystemResponse
	if err := c.do(ctx, http.MethodGet, path, q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Concepts == nil {
		return []domain.CodeSystemConcept{}, nil
	}
	return resp.Concepts, nil
}

// Translate implements domain.GatewayClient
func (c *Client) Translate(ctx context.Context, system domain.TranslateSystem, code string, saveHistory bool) ([]domain.ConceptMapMapping, error) {
	switch system {
	case domain.SystemNAM, domain.SystemTM2:
	default:
		return nil, &domain.ValidationError{Field: "system", Message: fmt.Sprintf("unsupported translation system %q", system)}
	}

	q := url.Values{}
	q.Set("system", string(system))
	q.Set("code", code)
	q.Set("save_history", strconv.FormatBool(saveHistory))

	var resp conceptMapResponse
	if err := c.do(ctx, http.MethodGet, translatePath, q, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Mappings == nil {
		return []domain.ConceptMapMapping{}, nil
	}
	return resp.Mappings, nil
}

// do issues one HTTP request and decodes the JSON response into out. A
// transport failure becomes a NetworkError; a non-2xx status becomes a
// RequestError carrying the backend's message.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Absence of a token sends the request unauthenticated; the backend
	// decides per endpoint whether that is acceptable.
	token, err := c.tokens.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read token store: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request transport failure", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := &domain.RequestError{Status: resp.StatusCode, Message: errorMessage(data)}
		c.logger.Debug("request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", reqErr.Message))
		return reqErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// errorMessage extracts the human-readable message from an error body. The
// backend uses the FastAPI "detail" shape; "error" is accepted for
// compatibility with gin-style bodies.
func errorMessage(data []byte) string {
	var body struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return ""
}

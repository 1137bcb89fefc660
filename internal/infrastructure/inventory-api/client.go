package inventory_api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/DRSN-tech/production-admin/internal/cfg"
	"github.com/DRSN-tech/production-admin/pkg/e"
)

const maxErrorBodySize = 1 << 20

// Client - HTTP-клиент инвентарного API. Один вызов - один запрос: без повторов и кэширования.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *cfg.APICfg) *Client {
	return NewClientWithHTTP(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// errorBody - формат ошибки инвентарного API: {"error": "..."}
type errorBody struct {
	Error string `json:"error"`
}

// do выполняет запрос и декодирует тело ответа в result (если result != nil).
// Ошибка транспорта оборачивается в e.ErrTransport, ответ вне 2xx возвращается как *e.APIError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", e.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return e.NewAPIError(resp.StatusCode, "")
	}

	return e.NewAPIError(resp.StatusCode, body.Error)
}

// pageQuery формирует параметры page/size; пустые необязательные параметры опускаются.
func pageQuery(page, size int, optional ...string) url.Values {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))

	for i := 0; i+1 < len(optional); i += 2 {
		if optional[i+1] != "" {
			query.Set(optional[i], optional[i+1])
		}
	}

	return query
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

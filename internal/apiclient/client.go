package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrPunder/spasibki-front/internal/gzipcomp"
	"github.com/MrPunder/spasibki-front/internal/logger"
)

// Observer принимает метрики по запросам к бэкенду
type Observer interface {
	ObserveBackend(route string, status int, d time.Duration)
}

// Client представляет клиент для работы с REST API бэкенда
type Client struct {
	baseURL    *url.URL
	apiToken   string
	httpClient *http.Client
	logger     logger.Logger
	observer   Observer
}

type Option func(*Client)

// WithObserver подключает сбор метрик
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// WithHTTPClient подменяет http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient создает новый клиент для работы с API
func NewClient(baseURL, apiToken string, timeout time.Duration, log logger.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("некорректный адрес бэкенда: %q", baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    u,
		apiToken:   apiToken,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Upload файл для multipart-загрузки
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

type request struct {
	method string
	route  string // шаблон пути, уходит в метрики
	path   string
	query  url.Values
	body   any
	upload *Upload
}

func (c *Client) buildURL(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) encodeBody(r request) (io.Reader, string, error) {
	switch {
	case r.upload != nil:
		buf := &bytes.Buffer{}
		mw := multipart.NewWriter(buf)
		part, err := mw.CreateFormFile("file", r.upload.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("ошибка формирования multipart: %w", err)
		}
		if _, err := io.Copy(part, r.upload.Body); err != nil {
			return nil, "", fmt.Errorf("ошибка чтения файла: %w", err)
		}
		if err := mw.Close(); err != nil {
			return nil, "", fmt.Errorf("ошибка формирования multipart: %w", err)
		}
		return buf, mw.FormDataContentType(), nil
	case r.body != nil:
		data, err := json.Marshal(r.body)
		if err != nil {
			return nil, "", fmt.Errorf("ошибка кодирования JSON: %w", err)
		}
		return bytes.NewReader(data), "application/json", nil
	default:
		return nil, "", nil
	}
}

// do выполняет запрос и возвращает тело успешного ответа
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	body, contentType, err := c.encodeBody(r)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.buildURL(r.path, r.query), body)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(r.route, 0, start)
		c.logger.Errorf("%s %s: %s", r.method, r.path, err)
		return nil, fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()
	c.observe(r.route, resp.StatusCode, start)

	data, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Detail: parseDetail(data)}
		c.logger.Errorf("%s %s: %s", r.method, r.path, apiErr)
		return nil, apiErr
	}

	c.logger.Debugf("%s %s: %d", r.method, r.path, resp.StatusCode)
	return data, nil
}

func (c *Client) observe(route string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackend(route, status, time.Since(start))
	}
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		zr, err := gzipcomp.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("ошибка создания gzip-ридера: %w", err)
		}
		defer zr.Close()
		reader = zr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения ответа: %w", err)
	}
	return data, nil
}

// doJSON выполняет запрос и разбирает ответ в out
func (c *Client) doJSON(ctx context.Context, r request, out any) error {
	data, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedResponse, err)
	}
	return nil
}

func get(route, path string, query url.Values) request {
	return request{method: http.MethodGet, route: http.MethodGet + " " + route, path: path, query: query}
}

func send(method, route, path string, body any) request {
	return request{method: method, route: method + " " + route, path: path, body: body}
}

// IsNotFound сообщает, что бэкенд ответил 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

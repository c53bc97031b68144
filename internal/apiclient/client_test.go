package apiclient

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedObserver struct {
	mu     sync.Mutex
	routes []string
	codes  []int
}

func (o *recordedObserver) ObserveBackend(route string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.routes = append(o.routes, route)
	o.codes = append(o.codes, status)
}

func newTestClient(t *testing.T, r chi.Router, opts ...Option) *Client {
	t.Helper()
	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)

	c, err := NewClient(ts.URL, "secret", time.Second, logger.Nop{}, opts...)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewClientBadURL(t *testing.T) {
	_, err := NewClient("backend", "", 0, logger.Nop{})
	assert.Error(t, err)
}

func TestGetUser(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{
			"name": "Ann", "lastname": "Lee", "coins": 120, "likes": 3, "is_admin": false,
		})
	})
	obs := &recordedObserver{}
	c := newTestClient(t, r, WithObserver(obs))

	u, err := c.GetUser(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", u.FullName())
	assert.Equal(t, 120, u.Coins)
	assert.Equal(t, 7, u.BitrixID)
	assert.Equal(t, []string{"GET /api/user"}, obs.routes)
	assert.Equal(t, []int{200}, obs.codes)
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		description string
		status      int
		body        string
		wantDetail  string
		wantText    string
	}{
		{
			description: "detail из ответа",
			status:      http.StatusBadRequest,
			body:        `{"detail":"Нельзя отправить спасибку самому себе"}`,
			wantDetail:  "Нельзя отправить спасибку самому себе",
			wantText:    "Нельзя отправить спасибку самому себе",
		},
		{
			description: "ошибка валидации списком",
			status:      http.StatusUnprocessableEntity,
			body:        `{"detail":[{"loc":["body","to_id"],"msg":"field required"}]}`,
			wantText:    "Ошибка отправки (422)",
		},
		{
			description: "тело не JSON",
			status:      http.StatusInternalServerError,
			body:        `Internal Server Error`,
			wantText:    "Ошибка отправки (500)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			r := chi.NewRouter()
			r.Post("/api/like", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})
			c := newTestClient(t, r)

			err := c.SendLike(context.Background(), models.LikeRequest{FromID: 1, ToID: 2})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantDetail, Detail(err))
			assert.Equal(t, tt.wantText, Describe(err, "Ошибка отправки"))
		})
	}
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	obs := &recordedObserver{}
	c, err := NewClient(url, "", time.Second, logger.Nop{}, WithObserver(obs))
	require.NoError(t, err)

	_, err = c.ListStickers(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Ошибка загрузки", Describe(err, "Ошибка загрузки"))
	assert.Equal(t, []int{0}, obs.codes)
}

func TestMalformedResponse(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/stickers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "{не json")
	})
	c := newTestClient(t, r)

	_, err := c.ListStickers(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, "Ошибка загрузки", Describe(err, "Ошибка загрузки"))
}

func TestGzipResponse(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/stickers", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		_ = json.NewEncoder(zw).Encode([]models.Sticker{{ID: 1, Name: "Кот", URL: "/s/cat.png"}})
		_ = zw.Close()
	})
	c := newTestClient(t, r)

	list, err := c.ListStickers(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/s/cat.png", list[0].URL)
}

func TestListGamesShapes(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/games", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		if r.URL.Query().Get("is_active") == "true" {
			writeJSON(w, http.StatusOK, []models.Game{{ID: 1, Name: "Весна", IsActive: true}})
			return
		}
		writeJSON(w, http.StatusOK, models.GamesPage{Games: []models.Game{{ID: 2}, {ID: 3}}, TotalPages: 4})
	})
	c := newTestClient(t, r)

	active, err := c.ListGames(context.Background(), true, 2, 5)
	require.NoError(t, err)
	assert.Len(t, active.Games, 1)
	assert.Equal(t, 1, active.TotalPages)

	finished, err := c.ListGames(context.Background(), false, 2, 5)
	require.NoError(t, err)
	assert.Len(t, finished.Games, 2)
	assert.Equal(t, 4, finished.TotalPages)
}

func TestUploadImage(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/items/upload-image", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "photo.png", hdr.Filename)
		assert.Equal(t, "PNGDATA", string(data))
		writeJSON(w, http.StatusOK, models.UploadResult{URL: "/static/items/photo.png"})
	})
	r.Post("/api/stickers/upload-image", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	c := newTestClient(t, r)

	url, err := c.UploadItemImage(context.Background(), Upload{FileName: "photo.png", Body: strings.NewReader("PNGDATA")})
	require.NoError(t, err)
	assert.Equal(t, "/static/items/photo.png", url)

	_, err = c.UploadStickerImage(context.Background(), Upload{FileName: "s.png", Body: strings.NewReader("x")})
	assert.ErrorIs(t, err, ErrNoUploadURL)
	assert.Equal(t, "Сервер не вернул URL загруженного фото", Describe(err, "Ошибка загрузки фото"))
}

func TestUpdateEmployeeQuery(t *testing.T) {
	r := chi.NewRouter()
	r.Patch("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "15", chi.URLParam(r, "id"))
		assert.Equal(t, "7", r.URL.Query().Get("admin_id"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"coins": float64(40), "is_gamer": true, "is_admin": false}, body)
		writeJSON(w, http.StatusOK, models.User{BitrixID: 15, Coins: 40, IsGamer: true})
	})
	c := newTestClient(t, r)

	u, err := c.UpdateEmployee(context.Background(), 15, 7, map[string]any{"coins": 40, "is_gamer": true, "is_admin": false})
	require.NoError(t, err)
	assert.Equal(t, 40, u.Coins)
}

func TestDeleteNoContent(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/api/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Delete("/api/games/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Игра не найдена"})
	})
	c := newTestClient(t, r)

	assert.NoError(t, c.DeleteItem(context.Background(), 3))

	err := c.DeleteGame(context.Background(), 9)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Игра не найдена", Describe(err, "Ошибка удаления"))
}

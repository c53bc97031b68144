package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/middleware"
	"github.com/MrPunder/spasibki-front/internal/render"
	"github.com/MrPunder/spasibki-front/internal/view"
	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 10 << 20

type Handler struct {
	logger   logger.Logger
	store    *view.Store
	renderer *render.Renderer
	timeout  time.Duration
}

func NewHandler(logger logger.Logger, store *view.Store, renderer *render.Renderer) *Handler {
	return &Handler{logger, store, renderer, 60 * time.Second}
}

// Options служебные маршруты. Metrics nil отключает /metrics
type Options struct {
	Metrics     http.Handler
	MetricsAuth func(http.Handler) http.Handler
	Middlewares []func(http.Handler) http.Handler
}

func NewRouter(handler *Handler, opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(opts.Middlewares...)

	r.Get("/", handler.PageHandler)
	r.Get("/ping", handler.PingHandler)
	r.Get("/healthz", handler.PingHandler)
	r.With(middleware.StaticHeaders).Handle("/static/*",
		http.StripPrefix("/static/", http.FileServer(http.FS(render.Static()))))

	if opts.Metrics != nil {
		mh := opts.Metrics
		if opts.MetricsAuth != nil {
			mh = opts.MetricsAuth(mh)
		}
		r.Method(http.MethodGet, "/metrics", mh)
	}

	r.Route("/ui", func(r chi.Router) {
		r.Post("/toast/{id}/dismiss", handler.act(dismissToast))

		r.Route("/thanks", func(r chi.Router) {
			r.Post("/open", handler.act(openThanks))
			r.Post("/close", handler.act(closeThanks))
			r.Post("/list", handler.act(toggleRecipients))
			r.Post("/choose", handler.act(chooseRecipient))
			r.Post("/stickers", handler.act(toggleStickers))
			r.Post("/sticker", handler.act(selectSticker))
			r.Post("/send", handler.act(sendThanks))
		})

		r.Post("/likes/prev", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Likes.Prev(ctx) }))
		r.Post("/likes/next", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Likes.Next(ctx) }))
		r.Post("/likes/more", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Likes.More(ctx) }))
		r.Post("/likes/filter", handler.act(filterLikes))

		r.Post("/feed/prev", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Feed.Prev(ctx) }))
		r.Post("/feed/next", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Feed.Next(ctx) }))

		r.Post("/purchases/prev", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Purchases.Prev(ctx) }))
		r.Post("/purchases/next", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Purchases.Next(ctx) }))

		r.Route("/games", func(r chi.Router) {
			r.Post("/prev", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Games.Prev(ctx) }))
			r.Post("/next", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Games.Next(ctx) }))
			r.Post("/active/open", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Games.OpenActive(ctx) }))
			r.Post("/modal/close", handler.act(func(_ context.Context, s *view.Session, _ *http.Request) error {
				s.Games.CloseModal()
				return nil
			}))
			r.Post("/{id}/open", handler.act(openGame))
		})
		r.Post("/rating/prev", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Games.RatingPrev(ctx) }))
		r.Post("/rating/next", handler.act(func(ctx context.Context, s *view.Session, _ *http.Request) error { return s.Games.RatingNext(ctx) }))

		r.Route("/shop", func(r chi.Router) {
			r.Post("/image/close", handler.act(func(_ context.Context, s *view.Session, _ *http.Request) error {
				s.Shop.CloseImage()
				return nil
			}))
			r.Post("/{id}/buy", handler.act(buyItem))
			r.Post("/{id}/image", handler.act(openItemImage))
		})

		r.Route("/settings", handler.settingsRoutes)
	})

	r.NotFound(handler.DefoultHandler)

	return r
}

func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		h.logger.Errorf("Error writing response %v", err)
	}
}

// DefoultHandler for incorrect requests
func (h *Handler) DefoultHandler(w http.ResponseWriter, r *http.Request) {
	h.logger.Debugf("Неизвестный маршрут %s %s", r.Method, r.URL.Path)
	http.Error(w, "Страница не найдена", http.StatusNotFound)
}

// PageHandler отдаёт страницу из состояния сессии.
// reload=1 начинает сессию заново, tab переключает вкладку
func (h *Handler) PageHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	q := r.URL.Query()
	userID := parseUserID(q.Get("user_id"))
	tab := view.TabID(q.Get("tab"))

	if q.Get("reload") == "1" && userID != 0 {
		h.store.Reset(userID)
	}

	sess, created := h.store.Get(userID, tab)
	sess.Bootstrap(ctx)
	if !created && tab != "" {
		sess.Tabs.Activate(ctx, tab)
	}

	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, render.Build(sess)); err != nil {
		h.logger.Errorf("user_id=%d: %v", userID, err)
		http.Error(w, "Не удалось отобразить страницу", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Errorf("Error writing response %v", err)
	}
}

// action меняет состояние сессии в ответ на одно действие пользователя.
// Ошибки уже показаны уведомлением, наверх они идут только в лог
type action func(ctx context.Context, s *view.Session, r *http.Request) error

func (h *Handler) act(fn action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		if err := parseForm(w, r); err != nil {
			h.logger.Errorf("%s: ошибка разбора формы: %v", r.URL.Path, err)
			http.Error(w, "Некорректный запрос", http.StatusBadRequest)
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		sess := h.session(ctx, r)
		if err := fn(ctx, sess, r); err != nil {
			h.logger.Debugf("user_id=%d %s: %v", sess.UserID, r.URL.Path, err)
		}
		h.back(w, r, sess)
	}
}

func (h *Handler) session(ctx context.Context, r *http.Request) *view.Session {
	sess, _ := h.store.Get(parseUserID(r.Form.Get("user_id")), "")
	sess.Bootstrap(ctx)
	return sess
}

// back возвращает браузер на страницу (Post/Redirect/Get)
func (h *Handler) back(w http.ResponseWriter, r *http.Request, sess *view.Session) {
	if sess.UserID == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	q := url.Values{}
	q.Set("user_id", strconv.Itoa(sess.UserID))
	q.Set("tab", string(sess.Tabs.Active()))
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		return r.ParseMultipartForm(maxUploadSize)
	}
	return r.ParseForm()
}

func parseUserID(s string) int {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func pathID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}

func formID(r *http.Request, key string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(r.Form.Get(key)))
}

package handlers

import (
	"context"
	"net/http"

	"github.com/MrPunder/spasibki-front/internal/models"
	"github.com/MrPunder/spasibki-front/internal/view"
	"github.com/go-chi/chi/v5"
)

func dismissToast(_ context.Context, s *view.Session, r *http.Request) error {
	s.Notifier.Dismiss(chi.URLParam(r, "id"))
	return nil
}

func openThanks(ctx context.Context, s *view.Session, _ *http.Request) error {
	return s.Thanks.Open(ctx)
}

func closeThanks(_ context.Context, s *view.Session, _ *http.Request) error {
	s.Thanks.Close()
	return nil
}

func toggleRecipients(_ context.Context, s *view.Session, _ *http.Request) error {
	s.Thanks.ToggleList()
	return nil
}

func chooseRecipient(_ context.Context, s *view.Session, r *http.Request) error {
	id, err := formID(r, "to_id")
	if err != nil {
		return err
	}
	if !s.Thanks.Choose(id) {
		return view.ErrNotFound
	}
	return nil
}

func toggleStickers(ctx context.Context, s *view.Session, _ *http.Request) error {
	s.Selector.Toggle(ctx)
	return nil
}

func selectSticker(_ context.Context, s *view.Session, r *http.Request) error {
	id, err := formID(r, "sticker_id")
	if err != nil {
		return err
	}
	return s.Selector.Select(id)
}

func sendThanks(ctx context.Context, s *view.Session, r *http.Request) error {
	return s.Thanks.Submit(ctx, view.ParseThanksForm(r.Form))
}

func filterLikes(_ context.Context, s *view.Session, r *http.Request) error {
	switch dir := models.LikeDirection(r.Form.Get("dir")); dir {
	case models.LikeSent, models.LikeReceived:
		s.Likes.ToggleFilter(dir)
		return nil
	}
	return view.ErrBadForm
}

func openGame(ctx context.Context, s *view.Session, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	return s.Games.OpenGame(ctx, id)
}

func buyItem(ctx context.Context, s *view.Session, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	return s.Shop.Buy(ctx, id)
}

func openItemImage(_ context.Context, s *view.Session, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	return s.Shop.OpenImage(id)
}

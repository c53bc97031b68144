package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/view"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) settingsRoutes(r chi.Router) {
	admin := func(fn action) http.HandlerFunc { return h.act(adminOnly(fn)) }

	r.Post("/section", admin(selectSection))
	r.Post("/modal/close", admin(func(_ context.Context, s *view.Session, _ *http.Request) error {
		s.Settings.CloseModal()
		return nil
	}))

	r.Post("/create-game", admin(func(_ context.Context, s *view.Session, _ *http.Request) error {
		s.Settings.OpenGameCreate()
		return nil
	}))
	r.Post("/create-shop-item", admin(func(_ context.Context, s *view.Session, _ *http.Request) error {
		s.Settings.OpenItemCreate()
		return nil
	}))
	r.Post("/update-employees", admin(func(ctx context.Context, s *view.Session, _ *http.Request) error {
		return s.Settings.SyncEmployees(ctx)
	}))
	r.Post("/show-sticker-create", admin(func(_ context.Context, s *view.Session, _ *http.Request) error {
		s.Settings.OpenStickerCreate()
		return nil
	}))

	r.Post("/edit/{section}/{id}", admin(openEdit))
	r.Post("/delete/{section}/{id}", admin(askDelete))
	r.Post("/confirm", admin(func(ctx context.Context, s *view.Session, _ *http.Request) error {
		return s.Settings.ConfirmDelete(ctx)
	}))
	r.Post("/cancel", admin(func(_ context.Context, s *view.Session, _ *http.Request) error {
		s.Settings.CancelDelete()
		return nil
	}))

	r.Post("/game/create", admin(saveGame(false)))
	r.Post("/game/update", admin(saveGame(true)))

	r.Post("/shop/create", admin(saveItem(false)))
	r.Post("/shop/update", admin(saveItem(true)))
	r.Post("/shop/photo", admin(uploadItemPhoto))
	r.Post("/shop/photo/clear", admin(func(_ context.Context, s *view.Session, _ *http.Request) error {
		s.Settings.ClearItemPhoto()
		return nil
	}))

	r.Post("/employees/more", admin(func(ctx context.Context, s *view.Session, _ *http.Request) error {
		return s.Settings.MoreEmployees(ctx)
	}))
	r.Post("/employees/update", admin(saveEmployee))

	r.Post("/purchases/prev", admin(func(ctx context.Context, s *view.Session, _ *http.Request) error {
		return s.Settings.PurchasesPrev(ctx)
	}))
	r.Post("/purchases/next", admin(func(ctx context.Context, s *view.Session, _ *http.Request) error {
		return s.Settings.PurchasesNext(ctx)
	}))

	r.Post("/stickers/create", admin(createSticker))
}

var errNotAdmin = errors.New("нет доступа к настройкам")

// adminOnly пропускает действие только для загруженного профиля администратора
func adminOnly(fn action) action {
	return func(ctx context.Context, s *view.Session, r *http.Request) error {
		if !s.Profile.IsAdmin() || !s.Tabs.Has(view.TabSettings) {
			return errNotAdmin
		}
		return fn(ctx, s, r)
	}
}

func badForm(s *view.Session, err error) error {
	text := strings.TrimPrefix(err.Error(), view.ErrBadForm.Error()+": ")
	s.Notifier.Fail(err, "Проверьте форму: "+text)
	return err
}

func selectSection(ctx context.Context, s *view.Session, r *http.Request) error {
	return s.Settings.Select(ctx, view.Section(r.Form.Get("section")))
}

func openEdit(_ context.Context, s *view.Session, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	switch view.Section(chi.URLParam(r, "section")) {
	case view.SectionGame:
		return s.Settings.OpenGameEdit(id)
	case view.SectionShop:
		return s.Settings.OpenItemEdit(id)
	case view.SectionEmployees:
		return s.Settings.OpenEmployeeEdit(id)
	}
	return view.ErrNotFound
}

func askDelete(_ context.Context, s *view.Session, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}
	return s.Settings.AskDelete(view.Section(chi.URLParam(r, "section")), id)
}

func saveGame(update bool) action {
	return func(ctx context.Context, s *view.Session, r *http.Request) error {
		form, err := view.ParseGameForm(r.Form)
		if err != nil {
			return badForm(s, err)
		}
		if update {
			return s.Settings.UpdateGame(ctx, form)
		}
		return s.Settings.CreateGame(ctx, form)
	}
}

func saveItem(update bool) action {
	return func(ctx context.Context, s *view.Session, r *http.Request) error {
		form, err := view.ParseItemForm(r.Form)
		if err != nil {
			return badForm(s, err)
		}
		if update {
			return s.Settings.UpdateItem(ctx, form)
		}
		return s.Settings.CreateItem(ctx, form)
	}
}

func saveEmployee(ctx context.Context, s *view.Session, r *http.Request) error {
	form, err := view.ParseEmployeeForm(r.Form)
	if err != nil {
		return badForm(s, err)
	}
	return s.Settings.UpdateEmployee(ctx, form)
}

// formFile достаёт файл из поля file. Пустое поле даёт nil без ошибки
func formFile(r *http.Request) (*apiclient.Upload, func(), error) {
	f, hdr, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	return &apiclient.Upload{
		FileName:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
		Body:        f,
	}, func() { f.Close() }, nil
}

func uploadItemPhoto(ctx context.Context, s *view.Session, r *http.Request) error {
	file, closeFile, err := formFile(r)
	if err != nil {
		return err
	}
	defer closeFile()
	if file == nil {
		s.Notifier.Push("Выберите файл!")
		return view.ErrNoFile
	}
	return s.Settings.UploadItemPhoto(ctx, *file)
}

func createSticker(ctx context.Context, s *view.Session, r *http.Request) error {
	file, closeFile, err := formFile(r)
	if err != nil {
		return err
	}
	defer closeFile()
	return s.Settings.CreateSticker(ctx, r.Form.Get("name"), file)
}

package view

import (
	"context"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/models"
)

// LoadItems все товары, включая скрытые
func (s *Settings) LoadItems(ctx context.Context) error {
	s.mu.Lock()
	s.itemsGen++
	gen := s.itemsGen
	s.mu.Unlock()

	items, err := s.api.ListItems(ctx)

	s.mu.Lock()
	if gen != s.itemsGen {
		s.mu.Unlock()
		return nil
	}
	s.itemsLoaded = true
	if err != nil {
		s.items, s.itemsFailed = nil, true
		s.mu.Unlock()
		s.fail(err, "Не удалось загрузить товары магазина")
		return err
	}
	s.items, s.itemsFailed = items, false
	s.mu.Unlock()
	return nil
}

func (s *Settings) itemByID(id int) (models.ShopItem, bool) {
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return models.ShopItem{}, false
}

func (s *Settings) OpenItemCreate() {
	s.openModal(ModalItemCreate, 0)
}

func (s *Settings) OpenItemEdit(id int) error {
	s.mu.Lock()
	_, ok := s.itemByID(id)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.openModal(ModalItemEdit, id)
	return nil
}

// UploadItemPhoto загружает фото товара сразу, URL попадает в открытую форму
func (s *Settings) UploadItemPhoto(ctx context.Context, file apiclient.Upload) error {
	url, err := s.api.UploadItemImage(ctx, file)
	if err != nil {
		s.ClearItemPhoto()
		s.fail(err, "Ошибка загрузки фото")
		return err
	}

	s.mu.Lock()
	s.itemPhoto = url
	s.mu.Unlock()
	s.notifier.Push("Фото загружено")
	return nil
}

func (s *Settings) ClearItemPhoto() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemPhoto = ""
}

func (s *Settings) withDraftPhoto(form ItemForm) ItemForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.itemPhoto != "" {
		form.PhotoURL = s.itemPhoto
	}
	return form
}

func (s *Settings) CreateItem(ctx context.Context, form ItemForm) error {
	form = s.withDraftPhoto(form)
	if _, err := s.api.CreateItem(ctx, form.CreatePayload()); err != nil {
		s.fail(err, "Ошибка создания товара")
		return err
	}

	s.notifier.Push("Товар создан")
	s.CloseModal()
	err := s.LoadItems(ctx)
	fire(ctx, s.onItemsChanged)
	return err
}

func (s *Settings) UpdateItem(ctx context.Context, form ItemForm) error {
	s.mu.Lock()
	id := 0
	if s.modal == ModalItemEdit {
		id = s.editID
	}
	orig, ok := s.itemByID(id)
	s.mu.Unlock()

	if id == 0 || !ok {
		s.notifier.Push("Не выбран товар для сохранения")
		return ErrNoEditTarget
	}

	form = s.withDraftPhoto(form)
	updated, err := s.api.UpdateItem(ctx, id, form.EditPayload(orig))
	if err != nil {
		s.fail(err, "Ошибка обновления товара")
		return err
	}

	s.mu.Lock()
	if updated.ID == 0 {
		updated.ID = id
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = updated
		}
	}
	s.mu.Unlock()

	s.notifier.Push("Товар обновлён")
	s.CloseModal()
	fire(ctx, s.onItemsChanged)
	return nil
}

func (s *Settings) deleteItem(ctx context.Context, id int) error {
	if err := s.api.DeleteItem(ctx, id); err != nil {
		s.fail(err, "Ошибка удаления товара")
		return err
	}

	s.notifier.Push("Товар удалён")
	err := s.LoadItems(ctx)
	fire(ctx, s.onItemsChanged)
	return err
}

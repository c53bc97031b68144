package view

import (
	"context"
	"strings"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/models"
)

func (s *Settings) LoadStickers(ctx context.Context) error {
	s.mu.Lock()
	s.stickersGen++
	gen := s.stickersGen
	s.mu.Unlock()

	list, err := s.api.ListStickers(ctx)

	s.mu.Lock()
	if gen != s.stickersGen {
		s.mu.Unlock()
		return nil
	}
	s.stickersLoaded = true
	if err != nil {
		s.stickers, s.stickersFailed = nil, true
		s.mu.Unlock()
		s.log.Errorf("настройки: список стикеров: %v", err)
		return err
	}
	s.stickers, s.stickersFailed = list, false
	s.mu.Unlock()
	return nil
}

func (s *Settings) OpenStickerCreate() {
	s.openModal(ModalStickerCreate, 0)
}

func describeSticker(err error, generic string) string {
	text := apiclient.Detail(err)
	if text == "" {
		text = generic
	}
	return "Ошибка: " + text
}

// CreateSticker загружает картинку и создаёт запись каталога
func (s *Settings) CreateSticker(ctx context.Context, name string, file *apiclient.Upload) error {
	if file == nil {
		s.notifier.Push("Выберите файл!")
		return ErrNoFile
	}

	url, err := s.api.UploadStickerImage(ctx, *file)
	if err != nil {
		s.notifier.Fail(err, describeSticker(err, "Ошибка загрузки файла"))
		return err
	}

	err = s.api.CreateSticker(ctx, models.StickerCreate{Name: strings.TrimSpace(name), URL: url})
	if err != nil {
		s.notifier.Fail(err, describeSticker(err, "Ошибка сохранения стикера"))
		return err
	}

	s.notifier.Push("Стикер успешно создан!")
	s.CloseModal()
	s.catalog.Invalidate()
	return s.LoadStickers(ctx)
}

func (s *Settings) deleteSticker(ctx context.Context, id int) error {
	if err := s.api.DeleteSticker(ctx, id); err != nil {
		s.notifier.Fail(err, describeSticker(err, "Не удалось удалить стикер"))
		return err
	}

	s.notifier.Push("Стикер удален")
	s.catalog.Invalidate()
	return s.LoadStickers(ctx)
}

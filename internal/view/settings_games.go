package view

import (
	"context"

	"github.com/MrPunder/spasibki-front/internal/models"
)

// LoadGames список всех игр. Без force используется уже загруженный список
func (s *Settings) LoadGames(ctx context.Context, force bool) error {
	s.mu.Lock()
	if !force && s.gamesLoaded && len(s.games) > 0 {
		s.mu.Unlock()
		return nil
	}
	s.gamesGen++
	gen := s.gamesGen
	s.mu.Unlock()

	games, err := s.api.ListAllGames(ctx)

	s.mu.Lock()
	if gen != s.gamesGen {
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		s.games, s.gamesLoaded, s.gamesFailed = nil, false, true
		s.mu.Unlock()
		s.fail(err, "Не удалось получить список игр")
		return err
	}
	s.games, s.gamesLoaded, s.gamesFailed = games, true, false
	s.mu.Unlock()
	return nil
}

func (s *Settings) OpenGameCreate() {
	s.openModal(ModalGameCreate, 0)
}

func (s *Settings) OpenGameEdit(id int) error {
	s.mu.Lock()
	_, ok := s.gameByID(id)
	s.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	s.openModal(ModalGameEdit, id)
	return nil
}

func (s *Settings) gameByID(id int) (models.Game, bool) {
	for _, g := range s.games {
		if g.ID == id {
			return g, true
		}
	}
	return models.Game{}, false
}

func (s *Settings) CreateGame(ctx context.Context, form GameForm) error {
	if _, err := s.api.CreateGame(ctx, form.CreatePayload()); err != nil {
		s.fail(err, "Ошибка создания игры")
		return err
	}

	s.notifier.Push("Игра создана")
	s.CloseModal()
	err := s.LoadGames(ctx, true)
	fire(ctx, s.onGamesChanged)
	return err
}

// UpdateGame сохраняет изменённые поля редактируемой игры
func (s *Settings) UpdateGame(ctx context.Context, form GameForm) error {
	s.mu.Lock()
	id := 0
	if s.modal == ModalGameEdit {
		id = s.editID
	}
	orig, ok := s.gameByID(id)
	s.mu.Unlock()

	if id == 0 || !ok {
		s.notifier.Push("Не выбрана игра для сохранения")
		return ErrNoEditTarget
	}

	updated, err := s.api.UpdateGame(ctx, id, form.EditPayload(orig))
	if err != nil {
		s.fail(err, "Ошибка сохранения игры")
		return err
	}

	s.mu.Lock()
	if updated.ID == 0 {
		updated.ID = id
	}
	for i := range s.games {
		if s.games[i].ID == id {
			s.games[i] = updated
		}
	}
	s.mu.Unlock()

	s.notifier.Push("Игра сохранена")
	s.CloseModal()
	fire(ctx, s.onGamesChanged)
	return nil
}

func (s *Settings) deleteGame(ctx context.Context, id int) error {
	if err := s.api.DeleteGame(ctx, id); err != nil {
		s.fail(err, "Ошибка удаления игры")
		return err
	}

	s.notifier.Push("Игра удалена")
	err := s.LoadGames(ctx, true)
	fire(ctx, s.onGamesChanged)
	return err
}

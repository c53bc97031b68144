package view

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSettings(api *fakeBackend) (*Settings, *Notifier) {
	n := NewNotifier(time.Minute, logger.Nop{})
	return NewSettings(1, 25, 10, api, NewStickerCatalog(api, logger.Nop{}), n, logger.Nop{}), n
}

func TestSettingsUpdateGame(t *testing.T) {
	api := newFakeBackend()
	api.user = models.User{IsAdmin: true}
	api.allGames = []models.Game{{ID: 4, Name: "Весна", IsActive: true}}
	s := newTestSession(api, 1, TabMyPage)
	ctx := context.Background()
	require.NoError(t, s.Settings.Select(ctx, SectionGame))

	err := s.Settings.UpdateGame(ctx, GameForm{Name: "Лето"})
	assert.ErrorIs(t, err, ErrNoEditTarget)
	assert.Equal(t, []string{"Не выбрана игра для сохранения"}, texts(s.Notifier))

	require.NoError(t, s.Settings.OpenGameEdit(4))
	assert.Equal(t, "Весна", s.Settings.View().EditGame.Name)

	require.NoError(t, s.Settings.UpdateGame(ctx, GameForm{Name: "Лето", IsActive: true}))
	assert.Equal(t, map[string]any{"name": "Лето", "game_is_active": true}, api.lastPayload())
	assert.Contains(t, texts(s.Notifier), "Игра сохранена")

	v := s.Settings.View()
	assert.Equal(t, ModalNone, v.Modal)
	assert.Equal(t, "Лето", v.Games[0].Name)
	assert.Equal(t, 1, api.count("ListAllGames"))
	assert.Equal(t, 1, api.count("ListGames:active"))
	assert.Equal(t, 1, api.count("GetOverallRating"))
}

func TestSettingsCreateGameError(t *testing.T) {
	api := newFakeBackend()
	api.createErr = &apiclient.APIError{Status: 422}
	s, n := newTestSettings(api)
	s.OpenGameCreate()

	require.Error(t, s.CreateGame(context.Background(), GameForm{Name: "Осень"}))
	assert.Equal(t, []string{"Ошибка создания игры (422)"}, texts(n))
	assert.Equal(t, ModalGameCreate, s.View().Modal)
}

func TestSettingsDeleteConfirm(t *testing.T) {
	api := newFakeBackend()
	api.items = []models.ShopItem{{ID: 1, Name: "Кружка"}}
	s, n := newTestSettings(api)
	ctx := context.Background()
	require.NoError(t, s.Select(ctx, SectionShop))

	assert.ErrorIs(t, s.AskDelete(SectionShop, 5), ErrNotFound)
	require.NoError(t, s.AskDelete(SectionShop, 1))
	assert.Equal(t, "Удалить товар «Кружка»?", s.View().Confirm.Prompt)

	s.CancelDelete()
	assert.Nil(t, s.View().Confirm)
	assert.ErrorIs(t, s.ConfirmDelete(ctx), ErrNotFound)

	require.NoError(t, s.AskDelete(SectionShop, 1))
	require.NoError(t, s.ConfirmDelete(ctx))
	assert.Equal(t, 1, api.count("DeleteItem"))
	assert.Equal(t, []string{"Товар удалён"}, texts(n))
	assert.Equal(t, 2, api.count("ListItems"))
}

func TestSettingsItemPhoto(t *testing.T) {
	api := newFakeBackend()
	api.uploadURL = "/static/items/1.png"
	s, n := newTestSettings(api)
	ctx := context.Background()
	s.OpenItemCreate()

	require.NoError(t, s.UploadItemPhoto(ctx, apiclient.Upload{FileName: "1.png", Body: strings.NewReader("x")}))
	assert.Equal(t, "/static/items/1.png", s.View().ItemPhoto)

	price := 50
	require.NoError(t, s.CreateItem(ctx, ItemForm{Name: "Худи", Price: &price, IsActive: true}))
	assert.Equal(t, map[string]any{
		"name": "Худи", "price": 50, "photo_url": "/static/items/1.png", "is_active": true,
	}, api.lastPayload())
	assert.Contains(t, texts(n), "Товар создан")
	assert.Empty(t, s.View().ItemPhoto)

	api.uploadErr = &apiclient.APIError{Status: 413}
	require.Error(t, s.UploadItemPhoto(ctx, apiclient.Upload{FileName: "big.png", Body: strings.NewReader("x")}))
	assert.Contains(t, texts(n), "Ошибка загрузки фото (413)")
	assert.Empty(t, s.View().ItemPhoto)
}

func TestSettingsEmployees(t *testing.T) {
	api := newFakeBackend()
	for i := 1; i <= 30; i++ {
		api.users = append(api.users, models.User{BitrixID: i, Name: "Сотрудник"})
	}
	s, n := newTestSettings(api)
	ctx := context.Background()

	require.NoError(t, s.Select(ctx, SectionEmployees))
	v := s.View()
	assert.Len(t, v.Employees, 25)
	assert.True(t, v.EmployeesMore)

	require.NoError(t, s.MoreEmployees(ctx))
	v = s.View()
	assert.Len(t, v.Employees, 30)
	assert.False(t, v.EmployeesMore)

	require.NoError(t, s.OpenEmployeeEdit(3))
	coins := 40
	require.NoError(t, s.UpdateEmployee(ctx, EmployeeForm{Name: "Сотрудник", Coins: &coins, IsGamer: true}))
	assert.Equal(t, map[string]any{"coins": 40, "is_gamer": true, "is_admin": false}, api.lastPayload())
	assert.Equal(t, []string{"Данные сотрудника обновлены"}, texts(n))

	v = s.View()
	assert.Len(t, v.Employees, 30)
	assert.Equal(t, 3, v.Employees[2].BitrixID)
	assert.Equal(t, 40, v.Employees[2].Coins)
	assert.True(t, v.Employees[2].IsGamer)
	assert.Equal(t, 2, api.count("ListUsers"))
}

func TestSettingsUpdateItem(t *testing.T) {
	api := newFakeBackend()
	api.items = []models.ShopItem{
		{ID: 1, Name: "Кружка", Price: 100, Stock: 3, IsActive: true},
		{ID: 2, Name: "Худи", Price: 500, Stock: 1, IsActive: true},
	}
	s, n := newTestSettings(api)
	ctx := context.Background()
	require.NoError(t, s.Select(ctx, SectionShop))

	assert.ErrorIs(t, s.UpdateItem(ctx, ItemForm{Name: "Чашка"}), ErrNoEditTarget)

	require.NoError(t, s.OpenItemEdit(1))
	price := 120
	require.NoError(t, s.UpdateItem(ctx, ItemForm{Name: "Чашка", Price: &price, IsActive: true}))
	assert.Equal(t, map[string]any{"name": "Чашка", "price": 120, "is_active": true}, api.lastPayload())
	assert.Contains(t, texts(n), "Товар обновлён")

	v := s.View()
	assert.Equal(t, ModalNone, v.Modal)
	require.Len(t, v.Items, 2)
	assert.Equal(t, models.ShopItem{ID: 1, Name: "Чашка", Price: 120, Stock: 3, IsActive: true}, v.Items[0])
	assert.Equal(t, "Худи", v.Items[1].Name)
	assert.Equal(t, 1, api.count("ListItems"))
}

func TestSettingsSync(t *testing.T) {
	twelve := 12
	tests := []struct {
		description string
		section     Section
		result      models.SyncResult
		err         error
		want        string
		wantReload  int
	}{
		{
			description: "с количеством в разделе сотрудников",
			section:     SectionEmployees,
			result:      models.SyncResult{Count: &twelve},
			want:        "Сотрудники обновлены (12)",
			wantReload:  2,
		},
		{
			description: "с сообщением в другом разделе",
			section:     SectionGame,
			result:      models.SyncResult{Message: "Синхронизация запущена"},
			want:        "Синхронизация запущена",
		},
		{
			description: "пустой ответ",
			section:     SectionGame,
			want:        "Список сотрудников обновлён",
		},
		{
			description: "ошибка",
			section:     SectionGame,
			err:         &apiclient.APIError{Status: 403, Detail: "Недостаточно прав"},
			want:        "Недостаточно прав",
		},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			api := newFakeBackend()
			api.syncRes, api.syncErr = tt.result, tt.err
			s, n := newTestSettings(api)
			ctx := context.Background()
			_ = s.Select(ctx, tt.section)

			_ = s.SyncEmployees(ctx)
			assert.Equal(t, []string{tt.want}, texts(n))
			assert.Equal(t, tt.wantReload, api.count("ListUsers"))
			assert.False(t, s.View().Syncing)
		})
	}
}

func TestSettingsCreateSticker(t *testing.T) {
	api := newFakeBackend()
	s, n := newTestSettings(api)
	ctx := context.Background()

	assert.ErrorIs(t, s.CreateSticker(ctx, "Кот", nil), ErrNoFile)
	assert.Equal(t, []string{"Выберите файл!"}, texts(n))

	api.uploadErr = apiclient.ErrNoUploadURL
	require.Error(t, s.CreateSticker(ctx, "Кот", &apiclient.Upload{FileName: "cat.png", Body: strings.NewReader("x")}))
	assert.Contains(t, texts(n), "Ошибка: Ошибка загрузки файла")

	api.uploadErr, api.uploadURL = nil, "/static/stickers/cat.png"
	require.NoError(t, s.CreateSticker(ctx, " Кот ", &apiclient.Upload{FileName: "cat.png", Body: strings.NewReader("x")}))
	assert.Equal(t, map[string]any{"name": "Кот", "url": "/static/stickers/cat.png"}, api.lastPayload())
	assert.Contains(t, texts(n), "Стикер успешно создан!")
	assert.Equal(t, 1, api.count("ListStickers"))
}

func TestSettingsPurchases(t *testing.T) {
	api := newFakeBackend()
	for i := 1; i <= 12; i++ {
		api.purch = append(api.purch, models.Purchase{ID: i, ItemName: "Кружка", BuyerName: "Анна", BuyerLastname: "Ли"})
	}
	s, _ := newTestSettings(api)
	ctx := context.Background()

	require.NoError(t, s.Select(ctx, SectionPurchases))
	p := s.View().Purchases
	assert.Len(t, p.Rows, 10)
	assert.Equal(t, PagerState{Page: 1, TotalPages: 2, CanNext: true}, p.Pager)

	require.NoError(t, s.PurchasesNext(ctx))
	assert.Len(t, s.View().Purchases.Rows, 2)
}

package view

import (
	"net/url"
	"testing"

	"github.com/MrPunder/spasibki-front/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameFormPayloads(t *testing.T) {
	ten := 10
	orig := models.Game{
		ID:             4,
		Name:           "Весна",
		Description:    "Весенняя игра",
		Start:          "2024-03-01T00:00:00",
		End:            "2024-05-31T00:00:00",
		LimitParameter: models.LimitWeek,
		LimitValue:     &ten,
	}

	tests := []struct {
		description string
		values      url.Values
		want        map[string]any
	}{
		{
			description: "изменено только название",
			values: url.Values{
				"name": {"Весна 2024"}, "description": {"Весенняя игра"},
				"game_start": {"2024-03-01"}, "game_end": {"2024-05-31"},
				"setting_limitValue": {"10"}, "setting_limitParameter": {"week"},
				"game_is_active": {"on"},
			},
			want: map[string]any{"name": "Весна 2024", "game_is_active": true},
		},
		{
			description: "пустые поля не уходят",
			values:      url.Values{"setting_limitToOneUser": {"2"}},
			want:        map[string]any{"setting_limitToOneUser": 2, "game_is_active": false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			f, err := ParseGameForm(tt.values)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.EditPayload(orig))
		})
	}
}

func TestGameFormCreatePayload(t *testing.T) {
	f, err := ParseGameForm(url.Values{
		"name": {"  Лето "}, "description": {""}, "setting_limitValue": {"5"},
		"setting_limitParameter": {"day"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":                   "Лето",
		"setting_limitValue":     5,
		"setting_limitParameter": "day",
		"game_is_active":         false,
	}, f.CreatePayload())
}

func TestGameFormErrors(t *testing.T) {
	_, err := ParseGameForm(url.Values{"setting_limitValue": {"много"}})
	assert.ErrorIs(t, err, ErrBadForm)

	_, err = ParseGameForm(url.Values{"setting_limitParameter": {"year"}})
	assert.ErrorIs(t, err, ErrBadForm)
}

func TestItemFormEditPayload(t *testing.T) {
	orig := models.ShopItem{ID: 1, Name: "Кружка", Description: "Белая", Price: 100, Stock: 3, IsActive: true}

	f, err := ParseItemForm(url.Values{
		"name": {"Кружка"}, "description": {""}, "price": {"100"}, "stock": {"5"}, "is_active": {"on"},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"description": "", "stock": 5, "is_active": true}, f.EditPayload(orig))
}

func TestEmployeeFormEditPayload(t *testing.T) {
	orig := models.User{BitrixID: 9, Name: "Анна", Lastname: "Ли", Coins: 10}

	f, err := ParseEmployeeForm(url.Values{"name": {"Анна"}, "lastname": {"Ли"}, "coins": {"40"}, "is_gamer": {"on"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"coins": 40, "is_gamer": true, "is_admin": false}, f.EditPayload(orig))
}

func TestParseThanksForm(t *testing.T) {
	f := ParseThanksForm(url.Values{"to_id": {"12"}, "message": {" спасибо "}, "sticker_id": {"x"}})
	assert.Equal(t, ThanksForm{ToID: 12, Message: " спасибо ", StickerID: 0}, f)
}

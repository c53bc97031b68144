package models

// User представляет сотрудника
type User struct {
	BitrixID int    `json:"bitrix_id,omitempty"` // Внешний идентификатор
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Position string `json:"position,omitempty"`
	Email    string `json:"email,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Coins    int    `json:"coins"` // Баланс
	Likes    int    `json:"likes"` // Получено спасибок всего
	IsAdmin  bool   `json:"is_admin"`
	IsGamer  bool   `json:"is_gamer"`
}

// FullName возвращает "Имя Фамилия" без лишних пробелов
func (u User) FullName() string {
	switch {
	case u.Name != "" && u.Lastname != "":
		return u.Name + " " + u.Lastname
	case u.Name != "":
		return u.Name
	default:
		return u.Lastname
	}
}

// LikeDirection направление спасибки относительно пользователя
type LikeDirection string

const (
	LikeSent     LikeDirection = "sent"
	LikeReceived LikeDirection = "received"
)

// LikeEvent представляет отправленную спасибку
type LikeEvent struct {
	ID           int           `json:"id"`
	Date         string        `json:"date"`
	Type         LikeDirection `json:"type,omitempty"`
	FromUserID   int           `json:"from_user_bitrix_id"`
	ToUserID     int           `json:"to_user_bitrix_id"`
	FromUserName string        `json:"from_user_name"`
	ToUserName   string        `json:"to_user_name"`
	Message      string        `json:"msg,omitempty"`
	StickerID    int           `json:"sticker_id,omitempty"`
}

// LikesPage страница истории спасибок или ленты
type LikesPage struct {
	Likes      []LikeEvent `json:"likes"`
	TotalPages int         `json:"total_pages"`
}

// LikesInfo состояние лимитов в активной игре
type LikesInfo struct {
	ReceivedLikes  int    `json:"received_likes"`
	RemainingLikes int    `json:"remaining_likes"`
	GameName       string `json:"game_name"`
	GameID         *int   `json:"game_id"`
	HasActiveGame  bool   `json:"has_active_game"`
}

// LimitParameter период ограничения спасибок
type LimitParameter string

const (
	LimitDay   LimitParameter = "day"
	LimitWeek  LimitParameter = "week"
	LimitMonth LimitParameter = "month"
	LimitGame  LimitParameter = "game"
)

// Valid проверяет, что период из допустимого набора
func (p LimitParameter) Valid() bool {
	switch p {
	case LimitDay, LimitWeek, LimitMonth, LimitGame:
		return true
	}
	return false
}

// Game представляет игру
type Game struct {
	ID             int            `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Start          string         `json:"game_start,omitempty"`
	End            string         `json:"game_end,omitempty"`
	IsActive       bool           `json:"game_is_active"`
	LimitParameter LimitParameter `json:"setting_limitParameter,omitempty"`
	LimitValue     *int           `json:"setting_limitValue,omitempty"`     // Не более N спасибок за период
	LimitToOneUser *int           `json:"setting_limitToOneUser,omitempty"` // Не более N спасибок одному человеку
}

// GamesPage страница списка игр
type GamesPage struct {
	Games      []Game `json:"games"`
	TotalPages int    `json:"total_pages"`
}

// ShopItem товар магазина
type ShopItem struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
	PhotoURL    string `json:"photo_url,omitempty"`
	IsActive    bool   `json:"is_active"`
}

// Purchase запись о покупке
type Purchase struct {
	ID            int    `json:"id"`
	ItemName      string `json:"item_name"`
	ItemPhotoURL  string `json:"item_photo_url,omitempty"`
	AmountSpent   int    `json:"amount_spent"`
	CreatedAt     string `json:"created_at"`
	BuyerName     string `json:"buyer_name,omitempty"`     // Только в общей истории
	BuyerLastname string `json:"buyer_lastname,omitempty"` // Только в общей истории
}

// PurchasesPage страница истории покупок
type PurchasesPage struct {
	Purchases  []Purchase `json:"purchases"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Size       int        `json:"size"`
	TotalPages int        `json:"total_pages"`
}

// Sticker стикер из каталога
type Sticker struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RatingRow строка рейтинга
type RatingRow struct {
	BitrixID int    `json:"bitrix_id"`
	FIO      string `json:"fio"`
	Received int    `json:"received"`
	Sent     int    `json:"sent"`
}

// RatingPage страница общего рейтинга
type RatingPage struct {
	Rating     []RatingRow `json:"rating"`
	TotalPages int         `json:"total_pages"`
}

// LikeRequest тело запроса на отправку спасибки
type LikeRequest struct {
	FromID    int    `json:"from_id"`
	ToID      int    `json:"to_id"`
	Message   string `json:"message,omitempty"`
	StickerID int    `json:"sticker_id,omitempty"`
}

// BuyRequest тело запроса на покупку
type BuyRequest struct {
	BuyerID     int `json:"buyer_id"`
	ItemID      int `json:"item_id"`
	AmountSpent int `json:"amount_spent"`
}

// StickerCreate тело запроса на создание стикера
type StickerCreate struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SyncResult ответ на синхронизацию сотрудников
type SyncResult struct {
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// UploadResult ответ на загрузку изображения
type UploadResult struct {
	URL string `json:"url"`
}

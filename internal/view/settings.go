package view

import (
	"context"
	"sync"

	"github.com/MrPunder/spasibki-front/internal/apiclient"
	"github.com/MrPunder/spasibki-front/internal/logger"
	"github.com/MrPunder/spasibki-front/internal/models"
)

type Section string

const (
	SectionGame      Section = "game"
	SectionShop      Section = "shop"
	SectionEmployees Section = "employees"
	SectionPurchases Section = "purchases"
	SectionStickers  Section = "stickers"
)

// SectionInfo заголовок раздела настроек и его кнопка создания
type SectionInfo struct {
	ID           Section
	Title        string
	CreateAction string
	CreateLabel  string
}

var sections = []SectionInfo{
	{ID: SectionGame, Title: "Список игр", CreateAction: "create-game", CreateLabel: "Создать игру"},
	{ID: SectionShop, Title: "Список товаров", CreateAction: "create-shop-item", CreateLabel: "Добавить товар"},
	{ID: SectionEmployees, Title: "Сотрудники", CreateAction: "update-employees", CreateLabel: "Обновить список"},
	{ID: SectionPurchases, Title: "История покупок"},
	{ID: SectionStickers, Title: "Список стикеров", CreateAction: "show-sticker-create", CreateLabel: "Добавить стикер"},
}

func Sections() []SectionInfo {
	return append([]SectionInfo(nil), sections...)
}

func sectionInfo(id Section) (SectionInfo, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return SectionInfo{}, false
}

// Modal открытое окно настроек
type Modal string

const (
	ModalNone          Modal = ""
	ModalGameCreate    Modal = "game-create"
	ModalGameEdit      Modal = "game-edit"
	ModalItemCreate    Modal = "item-create"
	ModalItemEdit      Modal = "item-edit"
	ModalEmployeeEdit  Modal = "employee-edit"
	ModalStickerCreate Modal = "sticker-create"
)

// Confirm вопрос перед удалением
type Confirm struct {
	Kind   Section
	ID     int
	Prompt string
}

// Settings административная вкладка
type Settings struct {
	mu       sync.Mutex
	api      Backend
	notifier *Notifier
	catalog  *StickerCatalog
	log      logger.Logger
	adminID  int

	section Section
	modal   Modal
	editID  int
	confirm *Confirm

	games       []models.Game
	gamesLoaded bool
	gamesFailed bool
	gamesGen    uint64

	items       []models.ShopItem
	itemsLoaded bool
	itemsFailed bool
	itemsGen    uint64
	itemPhoto   string

	employees      []models.User
	employeesMore  bool
	employeesLimit int
	employeesGen   uint64
	employeesReady bool
	syncing        bool

	purchases *pagedList[models.Purchase]

	stickers       []models.Sticker
	stickersLoaded bool
	stickersFailed bool
	stickersGen    uint64

	onGamesChanged    func(ctx context.Context)
	onItemsChanged    func(ctx context.Context)
	onEmployeeChanged func(ctx context.Context)
}

func NewSettings(adminID, employeesLimit, purchasesLimit int, api Backend, catalog *StickerCatalog, notifier *Notifier, log logger.Logger) *Settings {
	fetch := func(ctx context.Context, t Ticket) ([]models.Purchase, int, error) {
		pp, err := api.ListPurchases(ctx, t.Page, t.Limit)
		if err != nil {
			return nil, 0, err
		}
		return pp.Purchases, pp.TotalPages, nil
	}
	return &Settings{
		api:            api,
		notifier:       notifier,
		catalog:        catalog,
		log:            log,
		adminID:        adminID,
		section:        SectionGame,
		employeesLimit: employeesLimit,
		purchases:      newPagedList("история покупок магазина", purchasesLimit, fetch, log),
	}
}

// Select переключает раздел и загружает его данные
func (s *Settings) Select(ctx context.Context, id Section) error {
	if _, ok := sectionInfo(id); !ok {
		return ErrNotFound
	}

	s.mu.Lock()
	s.section = id
	s.mu.Unlock()

	return s.loadSection(ctx, id)
}

func (s *Settings) loadSection(ctx context.Context, id Section) error {
	switch id {
	case SectionGame:
		return s.LoadGames(ctx, false)
	case SectionShop:
		return s.LoadItems(ctx)
	case SectionEmployees:
		return s.LoadEmployees(ctx)
	case SectionPurchases:
		return s.LoadPurchases(ctx)
	case SectionStickers:
		return s.LoadStickers(ctx)
	}
	return nil
}

func (s *Settings) Section() Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.section
}

// CloseModal закрывает любое окно настроек и сбрасывает черновики
func (s *Settings) CloseModal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = ModalNone
	s.editID = 0
	s.itemPhoto = ""
}

func (s *Settings) openModal(m Modal, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modal = m
	s.editID = id
	s.itemPhoto = ""
}

// AskDelete запоминает объект, удаление которого нужно подтвердить
func (s *Settings) AskDelete(kind Section, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var prompt string
	switch kind {
	case SectionGame:
		for _, g := range s.games {
			if g.ID == id {
				prompt = "Удалить игру «" + g.Name + "»?"
			}
		}
	case SectionShop:
		for _, it := range s.items {
			if it.ID == id {
				prompt = "Удалить товар «" + it.Name + "»?"
			}
		}
	case SectionStickers:
		for _, st := range s.stickers {
			if st.ID == id {
				prompt = "Удалить стикер «" + st.Name + "»? Это действие необратимо."
			}
		}
	}
	if prompt == "" {
		return ErrNotFound
	}
	s.confirm = &Confirm{Kind: kind, ID: id, Prompt: prompt}
	return nil
}

func (s *Settings) CancelDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirm = nil
}

// ConfirmDelete выполняет подтверждённое удаление
func (s *Settings) ConfirmDelete(ctx context.Context) error {
	s.mu.Lock()
	c := s.confirm
	s.confirm = nil
	s.mu.Unlock()

	if c == nil {
		return ErrNotFound
	}
	switch c.Kind {
	case SectionGame:
		return s.deleteGame(ctx, c.ID)
	case SectionShop:
		return s.deleteItem(ctx, c.ID)
	case SectionStickers:
		return s.deleteSticker(ctx, c.ID)
	}
	return ErrNotFound
}

func fire(ctx context.Context, hook func(ctx context.Context)) {
	if hook != nil {
		hook(ctx)
	}
}

func (s *Settings) fail(err error, generic string) {
	s.notifier.Fail(err, apiclient.Describe(err, generic))
}

type SettingsView struct {
	Section  SectionInfo
	Sections []SectionInfo
	Modal    Modal
	Confirm  *Confirm

	EditGame     models.Game
	EditItem     models.ShopItem
	EditEmployee models.User
	ItemPhoto    string

	Games       []models.Game
	GamesFailed bool

	Items       []models.ShopItem
	ItemsLoaded bool
	ItemsFailed bool

	Employees       []models.User
	EmployeesLoaded bool
	EmployeesMore   bool
	Syncing         bool

	Purchases PagedSnapshot[models.Purchase]

	Stickers       []models.Sticker
	StickersLoaded bool
	StickersFailed bool
}

func (s *Settings) View() SettingsView {
	s.mu.Lock()
	info, _ := sectionInfo(s.section)
	v := SettingsView{
		Section:         info,
		Sections:        Sections(),
		Modal:           s.modal,
		ItemPhoto:       s.itemPhoto,
		Games:           append([]models.Game(nil), s.games...),
		GamesFailed:     s.gamesFailed,
		Items:           append([]models.ShopItem(nil), s.items...),
		ItemsLoaded:     s.itemsLoaded,
		ItemsFailed:     s.itemsFailed,
		Employees:       append([]models.User(nil), s.employees...),
		EmployeesLoaded: s.employeesReady,
		EmployeesMore:   s.employeesMore,
		Syncing:         s.syncing,
		Stickers:        append([]models.Sticker(nil), s.stickers...),
		StickersLoaded:  s.stickersLoaded,
		StickersFailed:  s.stickersFailed,
	}
	if s.confirm != nil {
		c := *s.confirm
		v.Confirm = &c
	}
	switch s.modal {
	case ModalGameEdit:
		v.EditGame, _ = s.gameByID(s.editID)
	case ModalItemEdit:
		v.EditItem, _ = s.itemByID(s.editID)
	case ModalEmployeeEdit:
		v.EditEmployee, _ = s.employeeByID(s.editID)
	}
	s.mu.Unlock()

	v.Purchases = s.purchases.snapshot()
	return v
}

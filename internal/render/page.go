package render

import (
	"github.com/MrPunder/spasibki-front/internal/models"
	"github.com/MrPunder/spasibki-front/internal/view"
)

// Page данные шаблона. Всё берётся из типизированного состояния контроллеров
type Page struct {
	UserID    int
	Active    view.TabID
	Tabs      []view.Tab
	Toasts    []view.Toast
	Profile   view.ProfileView
	Thanks    view.ThanksView
	Likes     view.LikesView
	Feed      view.PagedSnapshot[view.LikeRow]
	Purchases view.PagedSnapshot[models.Purchase]
	Games     view.GamesView
	Shop      view.ShopView
	Settings  *view.SettingsView
	Limits    []LimitOption
}

// Build снимает состояние сессии для одного рендера
func Build(s *view.Session) Page {
	p := Page{
		UserID:    s.UserID,
		Active:    s.Tabs.Active(),
		Tabs:      s.Tabs.List(),
		Profile:   s.Profile.View(),
		Thanks:    s.Thanks.View(),
		Likes:     s.Likes.View(),
		Feed:      s.Feed.View(),
		Purchases: s.Purchases.View(),
		Games:     s.Games.View(),
		Shop:      s.Shop.View(),
		Limits:    limitOptions,
	}
	if s.Profile.IsAdmin() && s.Tabs.Has(view.TabSettings) {
		v := s.Settings.View()
		p.Settings = &v
	} else {
		p.Tabs = withoutTab(p.Tabs, view.TabSettings)
		if p.Active == view.TabSettings {
			p.Active = view.TabMyPage
		}
	}
	p.Toasts = s.Notifier.Active()
	return p
}

func withoutTab(tabs []view.Tab, id view.TabID) []view.Tab {
	out := tabs[:0:0]
	for _, t := range tabs {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// Received текст счётчика полученных спасибок в активной игре
func (p Page) Received() string {
	if p.Games.Active == nil || p.Games.LikesInfo == nil {
		return "Получено Спасибок в текущей игре: —"
	}
	return "Получено Спасибок в текущей игре: " + view.FormatNumber(p.Games.LikesInfo.ReceivedLikes)
}

// Remaining текст остатка спасибок в активной игре
func (p Page) Remaining() string {
	if p.Games.Active == nil || p.Games.LikesInfo == nil {
		return "Остаток Спасибок в текущей игре: —"
	}
	return "Остаток Спасибок в текущей игре: " + view.FormatNumber(p.Games.LikesInfo.RemainingLikes)
}

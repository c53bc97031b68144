package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/MrPunder/spasibki-front/internal/models"
	"github.com/MrPunder/spasibki-front/internal/view"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static файлы оформления страницы
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// LimitOption вариант периода лимита в форме игры
type LimitOption struct {
	Value models.LimitParameter
	Label string
}

var limitOptions = []LimitOption{
	{Value: models.LimitDay, Label: "День"},
	{Value: models.LimitWeek, Label: "Неделя"},
	{Value: models.LimitMonth, Label: "Месяц"},
	{Value: models.LimitGame, Label: "Вся игра"},
}

var funcs = template.FuncMap{
	"date":     view.FormatDate,
	"datetime": view.FormatDateTime,
	"number":   view.FormatNumber,
	"rules":    view.FormatRules,
	"input":    view.InputDate,
	"dash": func(s string) string {
		if s == "" {
			return "—"
		}
		return s
	},
	"optint": func(v *int) string {
		if v == nil {
			return ""
		}
		return strconv.Itoa(*v)
	},
	"inc": func(i int) int { return i + 1 },
	"buyer": func(p models.Purchase) string {
		name := p.BuyerName
		if p.BuyerLastname != "" {
			if name != "" {
				name += " "
			}
			name += p.BuyerLastname
		}
		if name == "" {
			return "—"
		}
		return name
	},
	"pager": func(action string, st view.PagerState, userID int) pagerData {
		return pagerData{Action: action, State: st, UserID: userID}
	},
	"rowref": func(kind view.Section, id, userID int) rowRef {
		return rowRef{Kind: kind, ID: id, UserID: userID}
	},
	"yesno": func(b bool) string {
		if b {
			return "Да"
		}
		return "Нет"
	},
}

type pagerData struct {
	Action string
	State  view.PagerState
	UserID int
}

type rowRef struct {
	Kind   view.Section
	ID     int
	UserID int
}

// Renderer собирает HTML страницы из состояния сессии
type Renderer struct {
	page *template.Template
}

func New() (*Renderer, error) {
	t, err := template.New("page").Funcs(funcs).ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблонов: %w", err)
	}
	return &Renderer{page: t}, nil
}

// Page выводит страницу целиком
func (r *Renderer) Page(w io.Writer, p Page) error {
	if err := r.page.ExecuteTemplate(w, "page.gohtml", p); err != nil {
		return fmt.Errorf("ошибка рендеринга страницы: %w", err)
	}
	return nil
}

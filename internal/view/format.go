package view

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/MrPunder/spasibki-front/internal/models"
)

const placeholder = "—"

var isoDate = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)

// FormatDate ISO-дата в виде ДД.ММ.ГГГГ, прочее как прочерк
func FormatDate(iso string) string {
	m := isoDate.FindStringSubmatch(iso)
	if m == nil {
		return placeholder
	}
	return m[3] + "." + m[2] + "." + m[1]
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatDateTime ДД.ММ.ГГГГ, ЧЧ:ММ для истории покупок
func FormatDateTime(iso string) string {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t.Format("02.01.2006, 15:04")
		}
	}
	return FormatDate(iso)
}

// InputDate дата для поля <input type="date">
func InputDate(iso string) string {
	m := isoDate.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2] + "-" + m[3]
}

// FormatNumber целое с разделителем разрядов как в ru-RU
func FormatNumber(n int) string {
	s := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteString("\u00a0")
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}

var limitLabels = map[models.LimitParameter]string{
	models.LimitDay:   "в день",
	models.LimitWeek:  "в неделю",
	models.LimitMonth: "в месяц",
	models.LimitGame:  "за всю игру",
}

// FormatRules правила игры одной фразой
func FormatRules(g models.Game) string {
	var parts []string
	if label, ok := limitLabels[g.LimitParameter]; ok && g.LimitValue != nil {
		parts = append(parts, fmt.Sprintf("Вы можете отправить не более %d Спасибок %s", *g.LimitValue, label))
	}
	if g.LimitToOneUser != nil {
		parts = append(parts, fmt.Sprintf("и не более %d Спасибок одному и тому же человеку", *g.LimitToOneUser))
	}
	if len(parts) == 0 {
		return "Правила еще не заданы"
	}
	return strings.Join(parts, ", ")
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

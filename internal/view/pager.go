package view

// Ticket выданный запрос страницы. Ответ применяется, только если тикет последний
type Ticket struct {
	gen   uint64
	Page  int
	Limit int
}

func (t Ticket) Offset() int {
	return (t.Page - 1) * t.Limit
}

// Pager курсор страничного представления: page/limit запрос, total_pages ответ.
// Не потокобезопасен, защищается владельцем
type Pager struct {
	page       int
	limit      int
	totalPages int
	lastCount  int
	gen        uint64
}

func NewPager(limit int) Pager {
	return Pager{page: 1, limit: limit, totalPages: 1}
}

// Begin выдаёт тикет на страницу page, все ранее выданные становятся устаревшими
func (p *Pager) Begin(page int) Ticket {
	if page < 1 {
		page = 1
	}
	p.gen++
	return Ticket{gen: p.gen, Page: page, Limit: p.limit}
}

// Commit применяет ответ. false означает, что ответ устарел и отброшен
func (p *Pager) Commit(t Ticket, count, totalPages int) bool {
	if t.gen != p.gen {
		return false
	}
	if totalPages < 1 {
		totalPages = 1
	}
	p.page = t.Page
	p.lastCount = count
	p.totalPages = totalPages
	return true
}

func (p *Pager) Page() int { return p.page }

func (p *Pager) CanPrev() bool {
	return p.page > 1
}

// CanNext false на последней странице и после пустого ответа
func (p *Pager) CanNext() bool {
	return p.page < p.totalPages && p.lastCount > 0
}

type PagerState struct {
	Page       int
	TotalPages int
	CanPrev    bool
	CanNext    bool
}

func (p *Pager) State() PagerState {
	return PagerState{
		Page:       p.page,
		TotalPages: p.totalPages,
		CanPrev:    p.CanPrev(),
		CanNext:    p.CanNext(),
	}
}

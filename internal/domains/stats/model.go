package stats

import "time"

// GeneralStats backs the public landing page counters.
type GeneralStats struct {
	TotalLivros      int `json:"totalLivros"`
	TotalAutores     int `json:"totalAutores"`
	TotalCategorias  int `json:"totalCategorias"`
	TotalProfessores int `json:"totalProfessores"`
}

// AdminStats backs the admin dashboard counters.
type AdminStats struct {
	TotalUsuarios    int `json:"totalUsuarios"`
	TotalEstudantes  int `json:"totalEstudantes"`
	TotalProfessores int `json:"totalProfessores"`
	TotalVisitantes  int `json:"totalVisitantes"`
	TotalLivros      int `json:"totalLivros"`
	TotalAutores     int `json:"totalAutores"`
}

// ProfessorStats backs the professor dashboard counters.
type ProfessorStats struct {
	TotalLivros     int `json:"totalLivros"`
	TotalAutores    int `json:"totalAutores"`
	LivrosEsteMes   int `json:"livrosEsteMes"`
	TotalCategorias int `json:"totalCategorias"`
}

// Activity is one recent-activity feed entry.
type Activity struct {
	Tipo      string    `json:"tipo"`
	Descricao string    `json:"descricao"`
	Data      time.Time `json:"data"`
}

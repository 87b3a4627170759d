package entity

type Tab struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type Meta struct {
	Sections     map[string]string `json:"sections"`
	Tabs         []Tab             `json:"tabs"`
	OptionLabels map[string]string `json:"option_labels"`
	EmptyForms   map[Kind]Entry    `json:"-"`
}

// NewMeta returns the static labels of the content admin panel.
func NewMeta() Meta {
	return Meta{
		Sections: map[string]string{
			"hero":       "Hero",
			"industries": "Áreas de Atuação",
			"partners":   "Empresas Parceiras",
		},
		Tabs: []Tab{
			{ID: "home", Label: "Home", Description: "Hero autenticado + hero público, áreas e parceiros."},
			{ID: "weeklyTips", Label: "Dicas da semana", Description: "Sugestões rápidas para destacar na plataforma."},
			{ID: "globalVars", Label: "Variáveis globais", Description: "Texto e links reutilizados em várias páginas."},
		},
		OptionLabels: map[string]string{
			OptionFunctions:       "função",
			OptionCompetences:     "competência",
			OptionGeoAreas:        "área geográfica",
			OptionActivitySectors: "setor de atividade",
		},
		EmptyForms: map[Kind]Entry{
			KindIndustry: BlankEntry(KindIndustry),
			KindPartner:  BlankEntry(KindPartner),
		},
	}
}

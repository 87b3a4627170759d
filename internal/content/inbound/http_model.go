package inbound

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/talentflow/internal/content/entity"
)

// EntryForm is the editable part of a card. Industries send link_url and
// partners website_url; the other one is ignored.
type EntryForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	LinkURL     string `json:"link_url,omitempty"`
	WebsiteURL  string `json:"website_url,omitempty"`
	Active      bool   `json:"active"`
}

func (f EntryForm) url(kind entity.Kind) string {
	if kind == entity.KindPartner {
		return f.WebsiteURL
	}
	return f.LinkURL
}

func toForm(e entity.Entry) EntryForm {
	f := EntryForm{Name: e.Name, Description: e.Description, ImageURL: e.ImageURL, Active: e.Active}
	if e.Kind == entity.KindPartner {
		f.WebsiteURL = e.URL
	} else {
		f.LinkURL = e.URL
	}
	return f
}

type EntryResponse struct {
	ID int64 `json:"id,string"`
	EntryForm
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toEntry(e entity.Entry) EntryResponse {
	return EntryResponse{ID: e.ID, EntryForm: toForm(e), CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}
}

func toEntries(es []entity.Entry) []EntryResponse {
	return lo.Map(es, func(e entity.Entry, _ int) EntryResponse { return toEntry(e) })
}

type CreateEntryResponse struct {
	EntryResponse
}

func (CreateEntryResponse) StatusCode() int {
	return http.StatusCreated
}

type DeleteEntryResponse struct{}

func (DeleteEntryResponse) StatusCode() int {
	return http.StatusNoContent
}

type EmptyForms struct {
	Industry EntryForm `json:"industry"`
	Partner  EntryForm `json:"partner"`
}

type MetaResponse struct {
	Sections     map[string]string `json:"sections"`
	Tabs         []entity.Tab      `json:"tabs"`
	OptionLabels map[string]string `json:"option_labels"`
	EmptyForms   EmptyForms        `json:"empty_forms"`
}

func toMeta(m *entity.Meta) MetaResponse {
	return MetaResponse{
		Sections:     m.Sections,
		Tabs:         m.Tabs,
		OptionLabels: m.OptionLabels,
		EmptyForms: EmptyForms{
			Industry: toForm(m.EmptyForms[entity.KindIndustry]),
			Partner:  toForm(m.EmptyForms[entity.KindPartner]),
		},
	}
}

type ImageResponse struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

func (ImageResponse) Message() string {
	return "Imagem carregada"
}

package inbound

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/content/entity"
	"github.com/shandysiswandi/talentflow/internal/content/usecase"
	"github.com/shandysiswandi/talentflow/internal/pkg/router"
	"github.com/shandysiswandi/talentflow/internal/pkg/storage"
)

type uc interface {
	GetMeta(ctx context.Context) (*entity.Meta, error)

	ListEntries(ctx context.Context, kind entity.Kind) ([]entity.Entry, error)
	CreateEntry(ctx context.Context, in usecase.EntryInput) (*entity.Entry, error)
	UpdateEntry(ctx context.Context, in usecase.UpdateEntryInput) (*entity.Entry, error)
	DeleteEntry(ctx context.Context, kind entity.Kind, id int64) error

	GetOptions(ctx context.Context) (entity.Options, error)
	UpdateOptions(ctx context.Context, in entity.Options) (entity.Options, error)

	UploadImage(ctx context.Context, in usecase.UploadImageInput) (*storage.Object, error)
}

// RegisterHTTPEndpoint wires the landing page content routes used by the
// admin panel.
func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/content/meta", end.GetMeta)

	for path, kind := range map[string]entity.Kind{"industries": entity.KindIndustry, "partners": entity.KindPartner} {
		r.GET("/api/v1/content/"+path, end.ListEntries(kind))
		r.POST("/api/v1/content/"+path, end.CreateEntry(kind))
		r.PUT("/api/v1/content/"+path+"/:id", end.UpdateEntry(kind))
		r.DELETE("/api/v1/content/"+path+"/:id", end.DeleteEntry(kind))
	}

	r.GET("/api/v1/content/options", end.GetOptions)
	r.PUT("/api/v1/content/options", end.UpdateOptions)

	r.PUT("/api/v1/content/images", end.UploadImage)
}

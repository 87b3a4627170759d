package inbound

import (
	"context"

	"github.com/shandysiswandi/talentflow/internal/notification/entity"
)

type uc interface {
	SendVerificationCode(ctx context.Context, in entity.VerificationEmail) error
}

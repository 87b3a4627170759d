package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/shandysiswandi/talentflow/internal/pkg/goerror"
	"github.com/shandysiswandi/talentflow/internal/pkg/storage"
)

const maxImageBytes = 5 << 20

var (
	imageTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif", "image/svg+xml"}

	imageFolders = []string{"hero", "industries", "partners"}

	errImageTooLarge = errors.New("image exceeds size limit")
)

type UploadImageInput struct {
	Folder      string
	Filename    string
	ContentType string
	Body        io.Reader
}

// limitReader fails once more than n bytes were read.
type limitReader struct {
	r io.Reader
	n int64
}

func (l *limitReader) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.n -= int64(n)
	if l.n < 0 {
		return n, errImageTooLarge
	}
	return n, err
}

// UploadImage stores a landing page image and returns where it is served.
func (s *Usecase) UploadImage(ctx context.Context, in UploadImageInput) (*storage.Object, error) {
	ctx, span := s.startSpan(ctx, "UploadImage")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, objContent, actWrite)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(imageFolders, in.Folder) {
		return nil, goerror.NewInvalidInput(nil, "folder", "Unknown image folder")
	}
	if !slices.Contains(imageTypes, in.ContentType) {
		return nil, goerror.NewInvalidInput(nil, "file", "Only PNG, JPEG, WEBP, GIF or SVG images are accepted")
	}

	key := storage.ObjectKey("content/"+in.Folder, strconv.FormatInt(s.uid.Generate(), 10), in.Filename)

	obj, err := s.storage.Put(ctx, key, &limitReader{r: in.Body, n: maxImageBytes}, storage.PutOptions{
		Size:        -1,
		ContentType: in.ContentType,
		Metadata:    map[string]string{"uploaded-by": strconv.FormatInt(clm.UserID, 10)},
	})
	if errors.Is(err, errImageTooLarge) {
		return nil, goerror.NewInvalidInput(nil, "file", "Image must be at most 5 MB")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to storage put image", "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &obj, nil
}

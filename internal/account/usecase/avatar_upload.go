package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/jwt"
	"github.com/bodyclone/healthhub/internal/pkg/storage"
	"github.com/samber/lo"
)

//nolint:gochecknoglobals // global for fast reuse
var avatarContentTypeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var errAvatarTooLarge = errors.New("avatar exceeds max size")

type AvatarUploadInput struct {
	File        io.Reader
	ContentType string
}

type AvatarUploadOutput struct {
	AvatarURL string
	Message   string
}

// AvatarUpload stores the caller's avatar at a fixed per-user key so a new
// upload overwrites the old one, and saves a cache-busted URL on the profile.
func (s *Usecase) AvatarUpload(ctx context.Context, in AvatarUploadInput) (*AvatarUploadOutput, error) {
	ctx, span := s.startSpan(ctx, "AvatarUpload")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if in.File == nil {
		return nil, goerror.NewInvalidInput(nil, "avatar", "avatar file is required")
	}

	contentType := strings.ToLower(strings.TrimSpace(in.ContentType))
	ext, ok := avatarContentTypeExt[contentType]
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "avatar", "unsupported avatar content type")
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.account.avatar_bucket"))
	baseURL := strings.TrimSpace(s.cfg.GetString("modules.account.avatar_base_url"))
	maxSize := s.cfg.GetInt64("modules.account.avatar_max_size_bytes")
	key := clm.Subject + "/avatar" + ext

	reader := &maxBytesReader{
		r:   in.File,
		max: maxSize,
	}
	_, err := s.storage.PutObject(ctx, bucket, key, reader, storage.PutOptions{
		Size:        -1,
		ContentType: contentType,
		Metadata:    map[string]string{"user_id": clm.Subject},
	})
	if err != nil {
		if errors.Is(err, errAvatarTooLarge) {
			return nil, goerror.NewInvalidInput(nil, "avatar", "avatar must be smaller than "+strconv.FormatInt(maxSize, 10)+" bytes")
		}
		slog.ErrorContext(ctx, "failed to upload avatar", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	// Cache-busting query so clients re-fetch the overwritten object.
	avatarURL := baseURL + "/" + key + "?t=" + strconv.FormatInt(s.clock.Now().UnixMilli(), 10)
	if err := s.repoDB.SetAvatarURL(ctx, clm.Subject, lo.ToPtr(avatarURL)); err != nil {
		slog.ErrorContext(ctx, "failed to save avatar url", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AvatarUploadOutput{
		AvatarURL: avatarURL,
		Message:   "Avatar uploaded successfully.",
	}, nil
}

type maxBytesReader struct {
	r     io.Reader
	max   int64
	read  int64
	buf   [1]byte
	ended bool
}

func (m *maxBytesReader) Read(p []byte) (int, error) {
	if m.read >= m.max {
		if m.ended {
			return 0, errAvatarTooLarge
		}

		n, err := m.r.Read(m.buf[:])
		if n > 0 {
			m.ended = true
			return 0, errAvatarTooLarge
		}
		if err == nil {
			m.ended = true
			return 0, errAvatarTooLarge
		}
		return 0, err
	}

	remaining := m.max - m.read
	if int64(len(p)) > remaining {
		p = p[:remaining]
	}

	n, err := m.r.Read(p)
	m.read += int64(n)
	return n, err
}

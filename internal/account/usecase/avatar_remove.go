package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/bodyclone/healthhub/internal/pkg/jwt"
)

//nolint:gochecknoglobals // global for fast reuse
var avatarExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

type AvatarRemoveOutput struct {
	Message string
}

// AvatarRemove deletes the caller's avatar objects and clears the profile
// URL. The stored extension is not tracked, so every known extension is
// tried.
func (s *Usecase) AvatarRemove(ctx context.Context) (*AvatarRemoveOutput, error) {
	ctx, span := s.startSpan(ctx, "AvatarRemove")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	bucket := strings.TrimSpace(s.cfg.GetString("modules.account.avatar_bucket"))
	for _, ext := range avatarExtensions {
		key := clm.Subject + "/avatar" + ext
		if err := s.storage.DeleteObject(ctx, bucket, key); err != nil {
			slog.WarnContext(ctx, "failed to delete avatar object", "user_id", clm.Subject, "key", key, "error", err)
		}
	}

	if err := s.repoDB.SetAvatarURL(ctx, clm.Subject, nil); err != nil {
		slog.ErrorContext(ctx, "failed to clear avatar url", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AvatarRemoveOutput{Message: "Avatar removed successfully."}, nil
}

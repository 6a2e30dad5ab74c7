package db

import (
	"context"

	"github.com/bodyclone/healthhub/internal/account/entity"
	"github.com/bodyclone/healthhub/internal/pkg/goerror"
	"github.com/jackc/pgx/v5/pgtype"
)

func (s *DB) GetProfileByUserID(ctx context.Context, userID string) (_ *entity.Profile, err error) {
	ctx, span := s.startSpan(ctx, "GetProfileByUserID")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT p.user_id, p.full_name, p.age, p.gender, p.phone_number, p.avatar_url, p.updated_at,
		       COALESCE(r.role, 'patient')
		FROM profiles p
		LEFT JOIN user_roles r ON r.user_id = p.user_id
		WHERE p.user_id = $1`

	var (
		p           entity.Profile
		fullName    pgtype.Text
		age         pgtype.Int4
		gender      pgtype.Text
		phoneNumber pgtype.Text
		avatarURL   pgtype.Text
		updatedAt   pgtype.Timestamptz
	)
	err = s.conn.QueryRow(ctx, query, userID).
		Scan(&p.UserID, &fullName, &age, &gender, &phoneNumber, &avatarURL, &updatedAt, &p.Role)
	if err != nil {
		return nil, s.mapError(err)
	}

	p.FullName = fullName.String
	p.Gender = gender.String
	p.PhoneNumber = phoneNumber.String
	p.AvatarURL = avatarURL.String
	p.UpdatedAt = updatedAt.Time
	if age.Valid {
		v := age.Int32
		p.Age = &v
	}

	return &p, nil
}

// CreateProfileWithRole inserts the profile and its role row atomically.
func (s *DB) CreateProfileWithRole(ctx context.Context, in entity.NewProfile) (err error) {
	ctx, span := s.startSpan(ctx, "CreateProfileWithRole")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return s.mapError(err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const profileQuery = `
		INSERT INTO profiles (user_id, full_name, age, gender, phone_number)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))`

	if _, err = tx.Exec(ctx, profileQuery, in.UserID, in.FullName, in.Age, in.Gender, in.PhoneNumber); err != nil {
		err = s.mapError(err)
		return err
	}

	if _, err = tx.Exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, in.UserID, in.Role); err != nil {
		err = s.mapError(err)
		return err
	}

	err = s.mapError(tx.Commit(ctx))
	return err
}

func (s *DB) UpdateProfile(ctx context.Context, in entity.UpdateProfile) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateProfile")
	defer func() { s.endSpan(span, err) }()

	const query = `
		UPDATE profiles
		SET full_name = $2,
		    age = $3,
		    gender = NULLIF($4, ''),
		    phone_number = NULLIF($5, ''),
		    avatar_url = $6,
		    updated_at = now()
		WHERE user_id = $1`

	tag, err := s.conn.Exec(ctx, query, in.UserID, in.FullName, in.Age, in.Gender, in.PhoneNumber, in.AvatarURL)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

func (s *DB) SetAvatarURL(ctx context.Context, userID string, avatarURL *string) (err error) {
	ctx, span := s.startSpan(ctx, "SetAvatarURL")
	defer func() { s.endSpan(span, err) }()

	const query = `UPDATE profiles SET avatar_url = $2, updated_at = now() WHERE user_id = $1`

	tag, err := s.conn.Exec(ctx, query, userID, avatarURL)
	if err != nil {
		err = s.mapError(err)
		return err
	}
	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}

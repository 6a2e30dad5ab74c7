package db

import (
	"context"

	"github.com/bodyclone/healthhub/internal/verification/entity"
)

func (s *DB) GetProfileUserIDByPhone(ctx context.Context, phoneNumber string) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetProfileUserIDByPhone")
	defer func() { s.endSpan(span, err) }()

	var userID string
	err = s.conn.QueryRow(ctx, `SELECT user_id FROM profiles WHERE phone_number = $1`, phoneNumber).
		Scan(&userID)
	if err != nil {
		return "", s.mapError(err)
	}

	return userID, nil
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
		VALUES ($1, $2, $3, $4, $5)`

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

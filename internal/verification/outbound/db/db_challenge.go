package db

import (
	"context"

	"github.com/bodyclone/healthhub/internal/verification/entity"
)

func (s *DB) GetChallengeByPhoneCode(ctx context.Context, phoneNumber, code string) (_ *entity.Challenge, err error) {
	ctx, span := s.startSpan(ctx, "GetChallengeByPhoneCode")
	defer func() { s.endSpan(span, err) }()

	const query = `
		SELECT id, phone_number, code, expires_at
		FROM otp_challenges
		WHERE phone_number = $1 AND code = $2`

	var ch entity.Challenge
	err = s.conn.QueryRow(ctx, query, phoneNumber, code).
		Scan(&ch.ID, &ch.PhoneNumber, &ch.Code, &ch.ExpiresAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &ch, nil
}

func (s *DB) CreateChallenge(ctx context.Context, in entity.Challenge) (err error) {
	ctx, span := s.startSpan(ctx, "CreateChallenge")
	defer func() { s.endSpan(span, err) }()

	const query = `
		INSERT INTO otp_challenges (id, phone_number, code, expires_at)
		VALUES ($1, $2, $3, $4)`

	_, err = s.conn.Exec(ctx, query, in.ID, in.PhoneNumber, in.Code, in.ExpiresAt)
	err = s.mapError(err)
	return err
}

func (s *DB) DeleteChallengesByPhone(ctx context.Context, phoneNumber string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteChallengesByPhone")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM otp_challenges WHERE phone_number = $1`, phoneNumber)
	err = s.mapError(err)
	return err
}

func (s *DB) DeleteChallenge(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteChallenge")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM otp_challenges WHERE id = $1`, id)
	err = s.mapError(err)
	return err
}

package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nimbus-Analytics/stratus/internal/model"
)

var ErrNoSuchUser = errors.New("no such user")

// CreateUser inserts an admin account and returns its ID.
func CreateUser(email, hashedPassword string, name *string) (int, error) {
	const q = `
	INSERT INTO users (email, hashed_password, name, created_at, updated_at)
	VALUES ($1, $2, $3, now(), now())
	RETURNING id;`

	var id int
	if err := DB.QueryRow(q, email, hashedPassword, name).Scan(&id); err != nil {
		log.Error().Err(err).Str("email", email).Msg("CreateUser failed")
		return 0, err
	}
	return id, nil
}

// GetUserByEmail returns sql.ErrNoRows when no account matches.
func GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	const q = `
	SELECT id, email, hashed_password, name, created_at, updated_at
	  FROM users
	 WHERE email = $1;`

	if err := DB.Get(&u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Str("email", email).Msg("GetUserByEmail failed")
		return nil, err
	}
	return &u, nil
}

// GetUserByID returns sql.ErrNoRows when no account matches.
func GetUserByID(id int) (*model.User, error) {
	var u model.User
	const q = `
	SELECT id, email, hashed_password, name, created_at, updated_at
	  FROM users
	 WHERE id = $1;`

	if err := DB.Get(&u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("user_id", id).Msg("GetUserByID failed")
		return nil, err
	}
	return &u, nil
}

// UpdateUserProfile sets email and name and bumps updated_at. Updating a
// nonexistent ID is an error, not a silent no-op.
func UpdateUserProfile(id int, email string, name *string) error {
	const q = `
	UPDATE users
	   SET email = $2, name = $3, updated_at = now()
	 WHERE id = $1;`

	res, err := DB.Exec(q, id, email, name)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("UpdateUserProfile failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoSuchUser
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/models"
)

// userRepository is the SQL-backed implementation of [UserRepository].
// It handles the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.PIN, &user.MustResetPIN)
	return user, err
}

// CreateUser inserts a new user and returns it with the assigned ID.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.db.builder, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.db.classify(ErrExecutingStatement, err)
	}

	return created, nil
}

// GetUser returns the user with the given ID or [ErrUserNotFound].
func (r *userRepository) GetUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUserByIDQuery(r.db.builder, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.GetUser").Int64("user_id", userID).Msg("error selecting user")
		return models.User{}, r.db.classify(ErrExecutingQuery, err)
	}

	return user, nil
}

// ListUsers returns every user ordered by ID.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	query, args, err := buildSelectUsersQuery(r.db.builder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUsers(ctx, "*userRepository.ListUsers", query, args)
}

// FindUsersByPIN returns every user currently holding pin. More than one
// row is possible only for the shared default PIN.
func (r *userRepository) FindUsersByPIN(ctx context.Context, pin string) ([]models.User, error) {
	query, args, err := buildSelectUsersByPINQuery(r.db.builder, pin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryUsers(ctx, "*userRepository.FindUsersByPIN", query, args)
}

func (r *userRepository) queryUsers(ctx context.Context, funcName, query string, args []any) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error selecting users")
		return nil, r.db.classify(ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("error scanning user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error iterating user rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser writes the non-nil fields of update and returns the stored
// user. A PIN already held by someone else yields [ErrUniqueViolation].
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.Name == nil && update.PIN == nil && update.MustResetPIN == nil {
		return r.GetUser(ctx, update.ID)
	}

	query, args, err := buildUpdateUserQuery(r.db.builder, update)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", update.ID).Msg("error updating user")
		return models.User{}, r.db.classify(ErrExecutingStatement, err)
	}

	return user, nil
}

// DeleteUser removes the user row. Transactions and history rows of the
// user are left in place.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserQuery(r.db.builder, userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.DeleteUser").Int64("user_id", userID).Msg("error deleting user")
		return r.db.classify(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

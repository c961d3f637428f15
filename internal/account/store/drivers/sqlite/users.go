package sqlite

import (
	"context"
	"time"

	"github.com/paywave/accountd/internal/account/domain"
	"github.com/paywave/accountd/internal/account/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, password_hash, transfer, deposit, receive, send, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash,
		&u.Transfer, &u.Deposit, &u.Receive, &u.Send,
		&u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Email, u.PasswordHash,
		u.Transfer, u.Deposit, u.Receive, u.Send,
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) UpdateUser(
	ctx context.Context,
	userID string,
	patch store.UserPatch,
) (domain.User, error) {
	u, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	// An empty patch changes nothing, not even updated_at
	if patch.IsZero() {
		return u, nil
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Transfer != nil {
		u.Transfer = *patch.Transfer
	}
	if patch.Deposit != nil {
		u.Deposit = *patch.Deposit
	}
	if patch.Receive != nil {
		u.Receive = *patch.Receive
	}
	if patch.Send != nil {
		u.Send = *patch.Send
	}
	u.UpdatedAt = time.Now().UTC()

	_, err = r.db.ExecContext(ctx,
		`UPDATE users
		    SET name = ?, email = ?, password_hash = ?,
		        transfer = ?, deposit = ?, receive = ?, send = ?,
		        updated_at = ?
		  WHERE id = ?`,
		u.Name, u.Email, u.PasswordHash,
		u.Transfer, u.Deposit, u.Receive, u.Send,
		u.UpdatedAt, u.ID,
	)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return u, nil
}

func (r *usersRepo) DeleteUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// ListUsers never selects password_hash; the credential stays out of any
// listing even before the view layer redacts.
func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, transfer, deposit, receive, send, created_at, updated_at
		   FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email,
			&u.Transfer, &u.Deposit, &u.Receive, &u.Send,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

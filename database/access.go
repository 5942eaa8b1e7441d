package database

import (
	"context"
	"fmt"
)

// AccessStore is the admin and authorization surface consumed by the
// access gate and the admin commands.
type AccessStore interface {
	IsAdmin(ctx context.Context, telegramID string) (bool, error)
	ListAdmins(ctx context.Context) ([]string, error)
	InsertAdmin(ctx context.Context, telegramID, name string) error
	DeleteAdminByName(ctx context.Context, name string) (int64, error)

	IsAuthorized(ctx context.Context, chatID, command string) (bool, error)
	ListAuthorizations(ctx context.Context, chatID string) ([]string, error)
	Authorize(ctx context.Context, chatID, command string) error
	Unauthorize(ctx context.Context, chatID, command string) error
}

// IsAdmin reports whether the given telegram identity has an admin row.
func (p *Postgres) IsAdmin(ctx context.Context, telegramID string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM admins WHERE telegram_id = $1"
	err := p.connections.GetContext(ctx, &count, query, telegramID)
	if err != nil {
		return false, fmt.Errorf("error checking admin: %w", err)
	}
	return count > 0, nil
}

// ListAdmins returns the display names of all admins.
func (p *Postgres) ListAdmins(ctx context.Context) ([]string, error) {
	var names []string
	query := "SELECT name FROM admins ORDER BY name ASC"
	err := p.connections.SelectContext(ctx, &names, query)
	if err != nil {
		return nil, fmt.Errorf("error listing admins: %w", err)
	}
	return names, nil
}

// InsertAdmin records a new admin identity. No uniqueness is enforced on
// the display name: two people can authenticate with the same name, and
// DeleteAdminByName will then remove both.
func (p *Postgres) InsertAdmin(ctx context.Context, telegramID, name string) error {
	query := "INSERT INTO admins(telegram_id, name) VALUES($1, $2)"
	_, err := p.connections.ExecContext(ctx, query, telegramID, name)
	if err != nil {
		return fmt.Errorf("error inserting admin: %w", err)
	}
	return nil
}

// DeleteAdminByName removes every admin row with the given display name
// and returns how many were removed. Zero is a normal outcome, not an
// error.
func (p *Postgres) DeleteAdminByName(ctx context.Context, name string) (int64, error) {
	query := "DELETE FROM admins WHERE name = $1"
	res, err := p.connections.ExecContext(ctx, query, name)
	if err != nil {
		return 0, fmt.Errorf("error deleting admin: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error counting deleted admins: %w", err)
	}
	return affected, nil
}

// IsAuthorized reports whether the chat has been granted the command.
func (p *Postgres) IsAuthorized(ctx context.Context, chatID, command string) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM authorizations WHERE chat_id = $1 AND command = $2"
	err := p.connections.GetContext(ctx, &count, query, chatID, command)
	if err != nil {
		return false, fmt.Errorf("error checking authorization: %w", err)
	}
	return count > 0, nil
}

// ListAuthorizations returns the command keys the chat may use.
func (p *Postgres) ListAuthorizations(ctx context.Context, chatID string) ([]string, error) {
	var commands []string
	query := "SELECT command FROM authorizations WHERE chat_id = $1 ORDER BY command ASC"
	err := p.connections.SelectContext(ctx, &commands, query, chatID)
	if err != nil {
		return nil, fmt.Errorf("error listing authorizations: %w", err)
	}
	return commands, nil
}

// Authorize grants the chat the command. The existence check and the
// insert run in one transaction so a concurrent duplicate grant cannot
// produce two rows; granting twice is a no-op.
func (p *Postgres) Authorize(ctx context.Context, chatID, command string) error {
	tx, err := p.connections.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	query := "SELECT COUNT(*) FROM authorizations WHERE chat_id = $1 AND command = $2"
	if err = tx.GetContext(ctx, &count, query, chatID, command); err != nil {
		return fmt.Errorf("error checking authorization: %w", err)
	}
	if count == 0 {
		_, err = tx.ExecContext(ctx, "INSERT INTO authorizations(command, chat_id) VALUES($1, $2)", command, chatID)
		if err != nil {
			return fmt.Errorf("error inserting authorization: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing authorization: %w", err)
	}
	return nil
}

// Unauthorize revokes the chat's grant for the command. Revoking a grant
// that does not exist is a no-op.
func (p *Postgres) Unauthorize(ctx context.Context, chatID, command string) error {
	tx, err := p.connections.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	query := "SELECT COUNT(*) FROM authorizations WHERE chat_id = $1 AND command = $2"
	if err = tx.GetContext(ctx, &count, query, chatID, command); err != nil {
		return fmt.Errorf("error checking authorization: %w", err)
	}
	if count > 0 {
		_, err = tx.ExecContext(ctx, "DELETE FROM authorizations WHERE command = $1 AND chat_id = $2", command, chatID)
		if err != nil {
			return fmt.Errorf("error deleting authorization: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing authorization removal: %w", err)
	}
	return nil
}

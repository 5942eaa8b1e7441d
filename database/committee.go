package database

import (
	"context"
	"fmt"
)

// CommitteeStore is the roster surface consumed by the bot handlers.
type CommitteeStore interface {
	ListCommittee(ctx context.Context) ([]CommitteeMember, error)
	IncrementPollCount(ctx context.Context, name string) error
	AddCommitteeMembers(ctx context.Context, names []string) error
	RemoveCommitteeMembers(ctx context.Context, names []string) error
}

// ListCommittee returns all committee members with their poll counts.
func (p *Postgres) ListCommittee(ctx context.Context) ([]CommitteeMember, error) {
	var members []CommitteeMember
	query := "SELECT name, poll_count FROM committee ORDER BY name ASC"
	rows, err := p.connections.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing committee: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var member CommitteeMember
		err = rows.StructScan(&member)
		if err != nil {
			return nil, fmt.Errorf("error scanning committee member: %w", err)
		}
		members = append(members, member)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error scanning committee: %w", err)
	}
	return members, nil
}

// IncrementPollCount bumps a member's poll counter by one. A name with
// no matching row is reported as an error so a finished quiz can never
// silently miss its bookkeeping.
func (p *Postgres) IncrementPollCount(ctx context.Context, name string) error {
	query := "UPDATE committee SET poll_count = poll_count + 1 WHERE name = $1"
	res, err := p.connections.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("error incrementing poll count: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking poll count update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no committee member named %q", name)
	}
	return nil
}

// AddCommitteeMembers inserts the given names, one statement per name,
// all inside a single transaction.
func (p *Postgres) AddCommitteeMembers(ctx context.Context, names []string) error {
	tx, err := p.connections.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		_, err = tx.ExecContext(ctx, "INSERT INTO committee(name) VALUES($1)", name)
		if err != nil {
			return fmt.Errorf("error adding committee member %q: %w", name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing committee additions: %w", err)
	}
	return nil
}

// RemoveCommitteeMembers deletes the given names inside a single
// transaction. Unknown names are not an error.
func (p *Postgres) RemoveCommitteeMembers(ctx context.Context, names []string) error {
	tx, err := p.connections.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		_, err = tx.ExecContext(ctx, "DELETE FROM committee WHERE name = $1", name)
		if err != nil {
			return fmt.Errorf("error removing committee member %q: %w", name, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing committee removals: %w", err)
	}
	return nil
}

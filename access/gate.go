// Package access decides whether an inbound command may run. Both
// predicates fail closed: if the database cannot be reached the answer
// is "no", never an error bubbling into command dispatch.
package access

import (
	"context"

	"github.com/clicepfl/roboclic/database"
	"github.com/clicepfl/roboclic/logging"
	"github.com/clicepfl/roboclic/metrics"
)

type Gate struct {
	store  database.AccessStore
	logger *logging.Logger
}

func NewGate(store database.AccessStore, logger *logging.Logger) *Gate {
	if logger == nil {
		logger = logging.Default()
	}
	return &Gate{store: store, logger: logger}
}

// IsCommandAuthorized reports whether the chat has been granted the
// command key. A store failure is logged, counted, and treated as a
// denial.
func (g *Gate) IsCommandAuthorized(ctx context.Context, chatID, command string) bool {
	ok, err := g.store.IsAuthorized(ctx, chatID, command)
	if err != nil {
		g.logger.Error("could not check authorization, denying", "chat", chatID, "command", command, "error", err.Error())
		metrics.StoreErrors.Add(1)
		return false
	}
	return ok
}

// IsSenderAdmin reports whether the sender identity belongs to an admin.
// Events without a resolvable sender (channel posts, anonymous group
// admins) are never admin. Store failures deny, same as above.
func (g *Gate) IsSenderAdmin(ctx context.Context, senderID string) bool {
	if senderID == "" {
		return false
	}
	ok, err := g.store.IsAdmin(ctx, senderID)
	if err != nil {
		g.logger.Error("could not check admin status, denying", "sender", senderID, "error", err.Error())
		metrics.StoreErrors.Add(1)
		return false
	}
	return ok
}

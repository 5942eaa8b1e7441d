package database

// CommitteeMember is a row of the committee table. PollCount is how many
// times the member has been the answer of a quiz poll.
type CommitteeMember struct {
	Name      string `db:"name"`
	PollCount int    `db:"poll_count"`
}

// Admin is a row of the admins table. TelegramID is the authenticated
// identity; Name is the display name used for listing and removal.
type Admin struct {
	TelegramID string `db:"telegram_id"`
	Name       string `db:"name"`
}

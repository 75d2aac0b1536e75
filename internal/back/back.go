package back

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

// LobbySize is the exact number of participants a lobby holds, two teams of
// five drafted by their captains.
const LobbySize = 10

type Back struct {
	db            *sqlx.DB
	notifications chan Notification

	randMu sync.Mutex
	rand   *rand.Rand
}

func New(sqlDriver string, sqlDSN string) (*Back, error) {
	// Why even bother converting names? A single greppable string across all
	// your source code is better than any odd conversion scheme you could ever
	// come up with.
	// HACK: This is global but putting this in init() makes test ugly.
	// As only the Back relies on the DB, this seems like an okay-ish place.
	sqlx.NameMapper = func(v string) string { return v }

	db, err := sqlx.Connect(sqlDriver, sqlDSN)
	if err != nil {
		return nil, err
	}

	return &Back{
		db:            db,
		notifications: make(chan Notification, 64),
		rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (b *Back) GetNotificationsChan() <-chan Notification {
	return b.notifications
}

// SetRandom replaces the random source used by lobby formation tie-breaks,
// a seeded source makes formation reproducible.
func (b *Back) SetRandom(r *rand.Rand) {
	b.randMu.Lock()
	defer b.randMu.Unlock()
	b.rand = r
}

func (b *Back) shuffle(n int, swap func(i, j int)) {
	b.randMu.Lock()
	defer b.randMu.Unlock()
	b.rand.Shuffle(n, swap)
}

type transactionCallback func(*sqlx.Tx) error

func (b *Back) transaction(cb transactionCallback) error {
	tx, err := b.db.Beginx()
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		if err2 := tx.Rollback(); err2 != nil {
			return fmt.Errorf("rollback error: %s\noriginal error: %s", err2, err)
		}

		return err
	}

	return tx.Commit()
}

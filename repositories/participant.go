package repositories

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"

	"batepapo/domain"
	apperrors "batepapo/errors"
)

const participantPrefix = "participant:"

// ParticipantRepository is the presence registry. It owns the Participant
// records in BadgerDB and keeps the message log in step with membership
// changes: the join and left announcements are written in the same
// transaction as the registry mutation, so both commit or neither does.
type ParticipantRepository struct {
	db       *badger.DB
	log      *slog.Logger
	messages MessageRepository
}

func NewParticipantRepository(db *badger.DB, log *slog.Logger, messages MessageRepository) ParticipantRepository {
	return ParticipantRepository{db: db, log: log, messages: messages}
}

func participantKey(name string) []byte {
	return []byte(participantPrefix + name)
}

// Register creates a participant with lastSeenAt = now and appends the
// "joined" announcement atomically. A name can be held at most once:
// the duplicate check runs inside the same transaction as the insert.
func (p ParticipantRepository) Register(name string, now time.Time) error {
	return p.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		if _, err := txn.Get(key); err == nil {
			return apperrors.ErrNameTaken
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if _, err := p.messages.AppendIn(txn, domain.JoinedMessage(name), now); err != nil {
			return err
		}

		data, err := json.Marshal(domain.NewParticipant(name, now))
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Touch refreshes lastSeenAt for a registered participant.
func (p ParticipantRepository) Touch(name string, now time.Time) error {
	return p.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return apperrors.ErrNotRegistered
		} else if err != nil {
			return err
		}

		data, err := json.Marshal(domain.NewParticipant(name, now))
		if err != nil {
			return err
		}
		return txn.Set(key, data)
	})
}

// Exists is a pure lookup with no side effect.
func (p ParticipantRepository) Exists(name string) (bool, error) {
	var found bool
	err := p.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(participantKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// List returns a snapshot of all registered participants.
func (p ParticipantRepository) List() ([]domain.Participant, error) {
	var participants []domain.Participant
	err := p.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(participantPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var participant domain.Participant
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &participant)
			})
			if err != nil {
				return err
			}
			participants = append(participants, participant)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return participants, nil
}

// EvictStale removes every participant whose lastSeenAt is older than
// now - threshold and appends one "left" announcement per eviction.
// The sweep snapshot only selects candidates: each eviction re-reads
// lastSeenAt inside its own transaction and skips the participant if a
// status ping refreshed it in the meantime. A transaction conflict from
// a concurrent touch is treated the same way, as proof of liveness.
// Returns the names actually evicted.
func (p ParticipantRepository) EvictStale(threshold time.Duration, now time.Time) ([]string, error) {
	stale, err := p.staleNames(threshold, now)
	if err != nil {
		return nil, err
	}

	var evicted []string
	for _, name := range stale {
		err := p.evictOne(name, threshold, now)
		switch {
		case errors.Is(err, errEvictionSuperseded), errors.Is(err, badger.ErrConflict):
			p.log.Debug("Skipping eviction, participant touched concurrently", "name", name)
		case err != nil:
			return evicted, err
		default:
			evicted = append(evicted, name)
		}
	}
	return evicted, nil
}

// errEvictionSuperseded aborts an eviction transaction when the candidate
// was refreshed or removed after the sweep snapshot.
var errEvictionSuperseded = errors.New("eviction superseded by a concurrent touch")

func (p ParticipantRepository) staleNames(threshold time.Duration, now time.Time) ([]string, error) {
	participants, err := p.List()
	if err != nil {
		return nil, err
	}
	var stale []string
	for _, participant := range participants {
		if participant.StaleAt(now, threshold) {
			stale = append(stale, participant.Name)
		}
	}
	return stale, nil
}

func (p ParticipantRepository) evictOne(name string, threshold time.Duration, now time.Time) error {
	return p.db.Update(func(txn *badger.Txn) error {
		key := participantKey(name)
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			// Already gone, nothing to announce
			return errEvictionSuperseded
		}
		if err != nil {
			return err
		}

		var participant domain.Participant
		if err = item.Value(func(value []byte) error {
			return json.Unmarshal(value, &participant)
		}); err != nil {
			return err
		}
		if !participant.StaleAt(now, threshold) {
			// Refreshed since the sweep snapshot, the touch wins
			return errEvictionSuperseded
		}

		if _, err = p.messages.AppendIn(txn, domain.LeftMessage(name), now); err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

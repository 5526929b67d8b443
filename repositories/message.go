package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"batepapo/domain"
)

const messagePrefix = "msg:"

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// Append validates the fixed field set, stamps the message with an ID and
// its wall-clock time, and stores it as the newest log entry.
// Existing entries are never touched.
func (m MessageRepository) Append(message domain.Message) (domain.Message, error) {
	var stored domain.Message
	err := m.db.Update(func(txn *badger.Txn) error {
		var err error
		stored, err = m.AppendIn(txn, message, time.Now())
		return err
	})
	return stored, err
}

// AppendIn writes a message inside an existing transaction so that callers
// can commit a log append together with their own mutations (registration
// and eviction rely on this for their join/left announcements).
//
// The key is formatted as "msg:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two
//     messages arrive at the same nanosecond.
func (m MessageRepository) AppendIn(txn *badger.Txn, message domain.Message, at time.Time) (domain.Message, error) {
	if err := message.Validate(); err != nil {
		return domain.Message{}, err
	}
	message.ID = uuid.New()
	message.Time = at.Format("15:04:05")

	key := fmt.Sprintf("%s%019d:%s", messagePrefix, at.UnixNano(), message.ID)
	bytes, err := json.Marshal(message)
	if err != nil {
		return domain.Message{}, err
	}
	if err = txn.Set([]byte(key), bytes); err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

// VisibleTo retrieves the messages the viewer may read, newest first.
// Thanks to the padded timestamp in the key, a reverse prefix scan walks
// the log from the most recent entry backwards. Filtering happens during
// the scan so a limit counts visible messages, not raw entries.
// A nil limit returns the full visible history.
func (m MessageRepository) VisibleTo(viewer string, limit *int) ([]domain.Message, error) {
	var messages []domain.Message
	err := m.db.View(func(txn *badger.Txn) error {
		prefix := []byte(messagePrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		// Seek past the newest possible key, then walk backwards
		seekKey := append([]byte(messagePrefix), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit != nil && len(messages) == *limit {
				m.log.Debug(fmt.Sprintf("Maximum of %d visible messages reached", *limit))
				break
			}
			item := it.Item()
			var message domain.Message
			err := item.Value(func(value []byte) error {
				return json.Unmarshal(value, &message)
			})
			if err != nil {
				return err
			}
			if message.VisibleTo(viewer) {
				messages = append(messages, message)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

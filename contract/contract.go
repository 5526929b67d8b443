package contract

import (
	"context"
	"reflect"
	"time"

	"batepapo/domain"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IParticipantRepository is the presence registry: it owns the
// Participant records and their last-seen timestamps.
type IParticipantRepository interface {
	Register(name string, now time.Time) error
	Touch(name string, now time.Time) error
	Exists(name string) (bool, error)
	List() ([]domain.Participant, error)
	EvictStale(threshold time.Duration, now time.Time) ([]string, error)
}

// IMessageRepository is the append-only message log.
type IMessageRepository interface {
	Append(message domain.Message) (domain.Message, error)
	VisibleTo(viewer string, limit *int) ([]domain.Message, error)
}

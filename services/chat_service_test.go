package services

import (
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"batepapo/domain"
	"batepapo/errors"
	"batepapo/repositories"
)

func newTestService(t *testing.T) *ChatService {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	messages := repositories.NewMessageRepository(db, slog.Default())
	participants := repositories.NewParticipantRepository(db, slog.Default(), messages)
	return NewChatService(participants, messages)
}

func Test_Register_Requires_Name(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	err := service.Register(RegisterRequest{})
	var validation ValidationError
	req.ErrorAs(err, &validation)
	req.Equal([]string{"name is required"}, validation.Violations)
}

func Test_Register_Rejects_Broadcast_Sentinel(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	err := service.Register(RegisterRequest{Name: domain.Broadcast})
	var validation ValidationError
	req.ErrorAs(err, &validation)
	req.Equal([]string{"name is reserved"}, validation.Violations)

	participants, err := service.Participants()
	req.NoError(err)
	req.Empty(participants)
}

func Test_Register_Duplicate_Conflicts(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	req.NoError(service.Register(RegisterRequest{Name: "Ana"}))
	req.ErrorIs(service.Register(RegisterRequest{Name: "Ana"}), errors.ErrNameTaken)
}

func Test_PostMessage_Lists_Every_Violation(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	_, err := service.PostMessage("Ana", PostMessageRequest{})
	var validation ValidationError
	req.ErrorAs(err, &validation)
	req.Len(validation.Violations, 3)
	req.Contains(validation.Violations, "to is required")
	req.Contains(validation.Violations, "text is required")
	req.Contains(validation.Violations, "type is required")
}

func Test_PostMessage_Rejects_Status_Type(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	// status messages are system-generated, never user-submitted
	_, err := service.PostMessage("Ana", PostMessageRequest{
		To:   domain.Broadcast,
		Text: "sneaky",
		Type: "status",
	})
	var validation ValidationError
	req.ErrorAs(err, &validation)
	req.Equal([]string{"type must be one of [message private_message]"}, validation.Violations)
}

func Test_PostMessage_Unknown_Sender(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	_, err := service.PostMessage("Ghost", PostMessageRequest{
		To:   domain.Broadcast,
		Text: "hi",
		Type: "message",
	})
	req.ErrorIs(err, errors.ErrNotRegistered)
}

func Test_PostMessage_And_Read_Back(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	req.NoError(service.Register(RegisterRequest{Name: "Ana"}))
	stored, err := service.PostMessage("Ana", PostMessageRequest{
		To:   domain.Broadcast,
		Text: "hi",
		Type: "message",
	})
	req.NoError(err)
	req.Equal("Ana", stored.From)

	// Newest first: the chat message precedes the join announcement
	messages, err := service.Messages("Bob", nil)
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("hi", messages[0].Text)
	req.Equal(domain.TypeStatus, messages[1].Type)
}

func Test_Messages_Rejects_Non_Positive_Limit(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	_, err := service.Messages("Ana", lo.ToPtr(0))
	req.ErrorIs(err, errors.ErrInvalidLimit)

	_, err = service.Messages("Ana", lo.ToPtr(-3))
	req.ErrorIs(err, errors.ErrInvalidLimit)
}

func Test_Status_Refreshes_Or_404(t *testing.T) {
	req := require.New(t)
	service := newTestService(t)

	req.ErrorIs(service.Status("Ghost"), errors.ErrNotRegistered)

	req.NoError(service.Register(RegisterRequest{Name: "Ana"}))
	req.NoError(service.Status("Ana"))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/require"

	"batepapo/errors"
)

func TestMessage_Validate(t *testing.T) {
	req := require.New(t)

	req.NoError(NewMessage("Ana", Broadcast, "hi", TypeMessage).Validate())
	req.NoError(JoinedMessage("Ana").Validate())
	req.NoError(LeftMessage("Ana").Validate())

	req.ErrorIs(NewMessage("", Broadcast, "hi", TypeMessage).Validate(), errors.ErrIncompleteMessage)
	req.ErrorIs(NewMessage("Ana", "", "hi", TypeMessage).Validate(), errors.ErrIncompleteMessage)
	req.ErrorIs(NewMessage("Ana", Broadcast, "", TypeMessage).Validate(), errors.ErrIncompleteMessage)
	req.ErrorIs(NewMessage("Ana", Broadcast, "hi", "typing").Validate(), errors.ErrUnknownMessageType)
}

func TestMessage_VisibleTo(t *testing.T) {
	req := require.New(t)

	broadcast := NewMessage("Ana", Broadcast, "hi", TypeMessage)
	req.True(broadcast.VisibleTo("Bob"))

	private := NewMessage("Caio", "Ana", "secret", TypePrivate)
	req.True(private.VisibleTo("Caio"))
	req.True(private.VisibleTo("Ana"))
	req.False(private.VisibleTo("Bob"))

	status := JoinedMessage("Ana")
	req.True(status.VisibleTo("Bob"))
}

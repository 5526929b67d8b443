package services

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"batepapo/contract"
	"batepapo/domain"
	"batepapo/errors"
)

var validate = validator.New()

type RegisterRequest struct {
	Name string `json:"name" validate:"required,ne=Todos"`
}

type PostMessageRequest struct {
	To   string `json:"to" validate:"required"`
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// ValidationError carries the full list of violated fields so callers can
// report every problem at once instead of only the first.
type ValidationError struct {
	Violations []string
}

func (v ValidationError) Error() string {
	return strings.Join(v.Violations, "; ")
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return err
	}
	violations := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		violations = append(violations, describeViolation(fe))
	}
	return ValidationError{Violations: violations}
}

func describeViolation(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "ne":
		return fmt.Sprintf("%s is reserved", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

type IChatService interface {
	Register(req RegisterRequest) error
	PostMessage(sender string, req PostMessageRequest) (domain.Message, error)
	Status(sender string) error
	Participants() ([]domain.Participant, error)
	Messages(viewer string, limit *int) ([]domain.Message, error)
}

type ChatService struct {
	participants contract.IParticipantRepository
	messages     contract.IMessageRepository
}

func NewChatService(participants contract.IParticipantRepository, messages contract.IMessageRepository) *ChatService {
	return &ChatService{participants: participants, messages: messages}
}

// Register validates the submission and creates the participant.
// The join announcement is the registry's responsibility, committed
// together with the participant record.
func (s *ChatService) Register(req RegisterRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.participants.Register(req.Name, time.Now())
}

// PostMessage validates the submission, checks the sender is registered
// and appends the message to the log.
func (s *ChatService) PostMessage(sender string, req PostMessageRequest) (domain.Message, error) {
	if err := validateRequest(req); err != nil {
		return domain.Message{}, err
	}
	exists, err := s.participants.Exists(sender)
	if err != nil {
		return domain.Message{}, err
	}
	if !exists {
		return domain.Message{}, errors.ErrNotRegistered
	}
	return s.messages.Append(domain.NewMessage(sender, req.To, req.Text, domain.MessageType(req.Type)))
}

// Status refreshes the sender's last-seen timestamp.
func (s *ChatService) Status(sender string) error {
	return s.participants.Touch(sender, time.Now())
}

func (s *ChatService) Participants() ([]domain.Participant, error) {
	return s.participants.List()
}

// Messages returns the viewer's visible history, newest first.
// A limit, when present, must be a positive integer.
func (s *ChatService) Messages(viewer string, limit *int) ([]domain.Message, error) {
	if limit != nil && *limit <= 0 {
		return nil, errors.ErrInvalidLimit
	}
	return s.messages.VisibleTo(viewer, limit)
}

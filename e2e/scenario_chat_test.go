package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"batepapo/domain"
)

type ChatScenarioSuite struct {
	BaseHTTPSuite
}

func TestChatScenario(t *testing.T) {
	suite.Run(t, new(ChatScenarioSuite))
}

func (s *ChatScenarioSuite) TestBroadcastFlow() {
	s.Step("Ana registers")
	code, _ := s.Do(http.MethodPost, "/participants", `{"name":"Ana"}`, "")
	s.Equal(http.StatusCreated, code)

	s.Step("Ana registers again")
	code, _ = s.Do(http.MethodPost, "/participants", `{"name":"Ana"}`, "")
	s.Equal(http.StatusConflict, code)

	s.Step("Ana greets the room")
	code, _ = s.Do(http.MethodPost, "/messages", `{"to":"Todos","text":"hi","type":"message"}`, "Ana")
	s.Equal(http.StatusCreated, code)

	s.Step("Bob reads the room")
	code, body := s.Do(http.MethodGet, "/messages", "", "Bob")
	s.Equal(http.StatusOK, code)

	var messages []domain.Message
	s.Require().NoError(json.Unmarshal([]byte(body), &messages))
	texts := make([]string, 0, len(messages))
	for _, m := range messages {
		texts = append(texts, m.Text)
	}
	s.Contains(texts, "hi")
	s.Contains(texts, "joined")
}

func (s *ChatScenarioSuite) TestPrivateMessageFlow() {
	s.Step("Ana and Caio register")
	code, _ := s.Do(http.MethodPost, "/participants", `{"name":"Ana"}`, "")
	s.Equal(http.StatusCreated, code)
	code, _ = s.Do(http.MethodPost, "/participants", `{"name":"Caio"}`, "")
	s.Equal(http.StatusCreated, code)

	s.Step("Caio whispers to Ana")
	code, _ = s.Do(http.MethodPost, "/messages", `{"to":"Ana","text":"secret","type":"private_message"}`, "Caio")
	s.Equal(http.StatusCreated, code)

	s.Step("Bob cannot read the secret")
	code, body := s.Do(http.MethodGet, "/messages", "", "Bob")
	s.Equal(http.StatusOK, code)
	s.NotContains(body, "secret")

	s.Step("Ana can")
	code, body = s.Do(http.MethodGet, "/messages", "", "Ana")
	s.Equal(http.StatusOK, code)
	s.Contains(body, "secret")
}

func (s *ChatScenarioSuite) TestStatusPing() {
	s.Step("Unknown sender pings")
	code, _ := s.Do(http.MethodPost, "/status", "", "Ghost")
	s.Equal(http.StatusNotFound, code)

	s.Step("Ana registers and pings")
	code, _ = s.Do(http.MethodPost, "/participants", `{"name":"Ana"}`, "")
	s.Equal(http.StatusCreated, code)
	code, _ = s.Do(http.MethodPost, "/status", "", "Ana")
	s.Equal(http.StatusOK, code)

	s.Step("Ana is listed with a fresh lastSeenAt")
	code, body := s.Do(http.MethodGet, "/participants", "", "")
	s.Equal(http.StatusOK, code)

	var participants []domain.Participant
	s.Require().NoError(json.Unmarshal([]byte(body), &participants))
	s.Require().Len(participants, 1)
	s.Equal("Ana", participants[0].Name)
	s.Positive(participants[0].LastSeenAt)
}

package testutils

import (
	"github.com/stretchr/testify/mock"
)

type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) SendPlain(to []string, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

// CapturingSender records every message so tests can pull the OTP code
// out of the body the way a user would out of their inbox.
type CapturingSender struct {
	Messages []CapturedMessage
}

type CapturedMessage struct {
	To      []string
	Subject string
	Body    string
}

func (s *CapturingSender) SendPlain(to []string, subject, body string) error {
	s.Messages = append(s.Messages, CapturedMessage{To: to, Subject: subject, Body: body})
	return nil
}

func (s *CapturingSender) Last() *CapturedMessage {
	if len(s.Messages) == 0 {
		return nil
	}
	return &s.Messages[len(s.Messages)-1]
}

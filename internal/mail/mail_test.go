package mail

import (
	"context"
	"strings"
	"testing"
	"time"

	"codeberg.org/skillsage/server/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestInvitationMail(t *testing.T) {
	m := InvitationMail(Invitation{
		CandidateEmail:     "cand@example.com",
		CandidateFirstName: "Ada",
		Title:              "Backend Round",
		Description:        "Two algorithm questions",
		StartTime:          time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC),
		DurationMinutes:    45,
	})

	assert.Equal(t, "cand@example.com", m.To)
	assert.Equal(t, "Interview Invitation: Backend Round", m.Subject)
	assert.Contains(t, m.Body, "Dear Ada,")
	assert.Contains(t, m.Body, "Two algorithm questions")
	assert.Contains(t, m.Body, "Wednesday, March 4, 2026 at 15:30 UTC")
	assert.Contains(t, m.Body, "Duration: 45 minutes")
	assert.True(t, strings.HasSuffix(m.Body, signature))
}

func TestOTPMail(t *testing.T) {
	m := OTPMail("a@example.com", "123456", 5*time.Minute)

	assert.Equal(t, "Reset your password - SkillSage", m.Subject)
	assert.Contains(t, m.Body, "Your OTP is: 123456")
	assert.Contains(t, m.Body, "5 minutes")
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("SkillSage <no-reply@skillsage.dev>", Mail{
		To:      "a@example.com",
		Subject: "Hi\r\nBcc: evil@example.com",
		Body:    "line one\nline two",
	}))

	assert.Contains(t, msg, "Subject: Hi  Bcc: evil@example.com\r\n")
	assert.Contains(t, msg, "line one\r\nline two")
	assert.NotContains(t, msg, "\r\nBcc:")
}

func TestEnvelopeAddress(t *testing.T) {
	assert.Equal(t, "no-reply@skillsage.dev", envelopeAddress("SkillSage <no-reply@skillsage.dev>"))
	assert.Equal(t, "plain@example.com", envelopeAddress("plain@example.com"))
}

func TestNewSender_FallsBackToLog(t *testing.T) {
	sender := NewSender(config.SMTPConfig{})

	_, ok := sender.(LogSender)
	assert.True(t, ok)
	assert.NoError(t, sender.Send(context.Background(), Mail{To: "a@example.com"}))
}

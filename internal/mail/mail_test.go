package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applog "github.com/hongminglow/finance-tracker-be/internal/log"
)

func TestMessage_Validate(t *testing.T) {
	assert.NoError(t, Message{To: "ann@example.com", Subject: "hi"}.Validate())
	assert.Error(t, Message{Subject: "hi"}.Validate())
	assert.Error(t, Message{To: "not-an-address", Subject: "hi"}.Validate())
	assert.Error(t, Message{To: "ann@example.com"}.Validate())
}

func TestLogSender(t *testing.T) {
	var buf bytes.Buffer
	sender := NewLogSender(applog.New(applog.Config{Output: &buf}))

	require.NoError(t, sender.Send(context.Background(), Message{To: "ann@example.com", Subject: "Weekly", Body: "hello"}))
	assert.Contains(t, buf.String(), "ann@example.com")
	assert.Contains(t, buf.String(), "component=mail")

	assert.Error(t, sender.Send(context.Background(), Message{Subject: "Weekly"}))
}

func TestNewSMTPSender(t *testing.T) {
	sender, err := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, Username: "u", Password: "p", From: "no-reply@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "no-reply@example.com", sender.from)

	err = sender.Send(context.Background(), Message{To: "bad", Subject: "x"})
	assert.ErrorContains(t, err, "invalid recipient")
}

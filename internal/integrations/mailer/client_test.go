package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/ekicare/ekicare-api/pkg/logger"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*gomail.Message
	err  error
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func newTestClient(enabled bool, s sender) *Client {
	c := NewClient(Config{Enabled: enabled, Host: "smtp.ekicare.test", Port: 587, From: "noreply@ekicare.test", QueueSize: 2}, logger.Nop())
	c.dialer = s
	return c
}

func TestClient_Send(t *testing.T) {
	fake := &fakeSender{}
	c := newTestClient(true, fake)

	slot := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	err := c.Send(context.Background(), AppointmentRequested("pro@ekicare.test", "Marie Dupont", slot))
	require.NoError(t, err)

	require.Len(t, fake.sent, 1)
	assert.Equal(t, []string{"pro@ekicare.test"}, fake.sent[0].GetHeader("To"))
	assert.Equal(t, []string{"noreply@ekicare.test"}, fake.sent[0].GetHeader("From"))
	assert.Equal(t, []string{"Nouvelle demande de rendez-vous"}, fake.sent[0].GetHeader("Subject"))
}

func TestClient_Send_Errors(t *testing.T) {
	fake := &fakeSender{err: errors.New("connection refused")}
	c := newTestClient(true, fake)

	err := c.Send(context.Background(), Message{To: "a@b.c", Subject: "s", Body: "b"})
	assert.ErrorIs(t, err, ErrSendFailed)

	err = c.Send(context.Background(), Message{Subject: "s"})
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestClient_Disabled(t *testing.T) {
	fake := &fakeSender{}
	c := newTestClient(false, fake)

	assert.False(t, c.Enabled())
	require.NoError(t, c.Send(context.Background(), Message{To: "a@b.c"}))
	require.NoError(t, c.Enqueue(Message{To: "a@b.c"}))
	assert.Zero(t, fake.count())
}

func TestClient_EnqueueDrainsOnClose(t *testing.T) {
	fake := &fakeSender{}
	c := newTestClient(true, fake)

	require.NoError(t, c.Enqueue(Message{To: "a@b.c", Subject: "one"}))
	require.NoError(t, c.Enqueue(Message{To: "a@b.c", Subject: "two"}))
	assert.ErrorIs(t, c.Enqueue(Message{To: "a@b.c", Subject: "three"}), ErrQueueFull)

	c.Start(context.Background())
	c.Close()

	assert.Equal(t, 2, fake.count())
	assert.ErrorIs(t, c.Enqueue(Message{To: "a@b.c"}), ErrClosed)
}

func TestAppointmentStatusChanged(t *testing.T) {
	slot := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	msg := AppointmentStatusChanged("owner@ekicare.test", "Dr Martin", "confirmed", slot)

	assert.Equal(t, "owner@ekicare.test", msg.To)
	assert.Contains(t, msg.Body, "10/03/2025 à 14:30")
	assert.Contains(t, msg.Body, "confirmé")
}

package mailer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/gomail.v2"
)

const defaultQueueSize = 100

// Logger interface du mailer
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// sender implémenté par *gomail.Dialer
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Config paramètres SMTP
type Config struct {
	Enabled   bool
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	QueueSize int
}

// Client envoi des notifications SMTP.
// Un client désactivé accepte tous les messages et n'envoie rien.
type Client struct {
	dialer  sender
	from    string
	enabled bool
	queue   chan Message
	mu      sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	log     Logger
}

// NewClient crée le mailer. Appeler Start pour traiter la file.
func NewClient(cfg Config, log Logger) *Client {
	size := cfg.QueueSize
	if size <= 0 {
		size = defaultQueueSize
	}

	return &Client{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:    cfg.From,
		enabled: cfg.Enabled && cfg.Host != "",
		queue:   make(chan Message, size),
		log:     log,
	}
}

// Enabled les mails sortent réellement du processus
func (c *Client) Enabled() bool {
	return c.enabled
}

// Send envoie le message de façon synchrone
func (c *Client) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("%w: empty recipient", ErrInvalidMessage)
	}
	if !c.enabled {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSendFailed, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSendFailed, msg.To, err)
	}

	c.log.Info("Mailer: sent %q to %s", msg.Subject, msg.To)
	return nil
}

// Enqueue confie le message au worker sans bloquer
func (c *Client) Enqueue(msg Message) error {
	if !c.enabled {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}

	select {
	case c.queue <- msg:
		return nil
	default:
		c.log.Warn("Mailer: queue full, dropping %q to %s", msg.Subject, msg.To)
		return ErrQueueFull
	}
}

// Start fait tourner le worker jusqu'à la fin de ctx ou l'appel à Close
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-c.queue:
				if !ok {
					return
				}
				if err := c.Send(context.Background(), msg); err != nil {
					c.log.Error("Mailer: %v", err)
				}
			}
		}
	}()
}

// Close refuse les nouveaux messages et attend que le worker vide la file
func (c *Client) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.queue)
	}
	c.mu.Unlock()
	c.wg.Wait()
}

package notify

import (
	"context"
	"fmt"
	"net/smtp"
)

// EmailDispatcher delivers email-channel dispatches over plain SMTP.
type EmailDispatcher struct {
	addr string
	from string
}

func NewEmailDispatcher(addr, from string) *EmailDispatcher {
	return &EmailDispatcher{addr: addr, from: from}
}

func (c *EmailDispatcher) Send(_ context.Context, d Dispatch) error {
	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		c.from, d.Recipient, d.Subject, d.Message)
	if err := smtp.SendMail(c.addr, nil, c.from, []string{d.Recipient}, []byte(body)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

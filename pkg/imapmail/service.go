// Package imapmail implements the mail provider interface against a real
// mail server pair: IMAP for retrieval, SMTP for submission. Credential
// material ("user:password") is carried in the account's access token,
// matching how the environment-driven variant held SMTP/IMAP logins.
package imapmail

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	maildomain "startupmail-backend/internal/mail/domain"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"golang.org/x/oauth2"
)

const fetchLimit = 50

type Service struct {
	smtpHost   string
	smtpPort   int
	smtpUseTLS bool
	imapHost   string
	imapPort   int
	imapUseSSL bool
}

func NewService(smtpHost string, smtpPort int, smtpUseTLS bool, imapHost string, imapPort int, imapUseSSL bool) *Service {
	return &Service{
		smtpHost:   smtpHost,
		smtpPort:   smtpPort,
		smtpUseTLS: smtpUseTLS,
		imapHost:   imapHost,
		imapPort:   imapPort,
		imapUseSSL: imapUseSSL,
	}
}

func splitCredentials(material string) (username, password string, err error) {
	username, password, ok := strings.Cut(material, ":")
	if !ok || username == "" || password == "" {
		return "", "", fmt.Errorf("credentials must be in user:password form")
	}
	return username, password, nil
}

func (s *Service) dialIMAP() (*client.Client, error) {
	addr := fmt.Sprintf("%s:%d", s.imapHost, s.imapPort)
	if s.imapUseSSL {
		return client.DialTLS(addr, nil)
	}
	return client.Dial(addr)
}

// Authenticate verifies the credential material with an IMAP login and
// hands it back as the account's token.
func (s *Service) Authenticate(ctx context.Context, authCode string) (*maildomain.ProviderAuth, error) {
	username, password, err := splitCredentials(authCode)
	if err != nil {
		return nil, err
	}

	c, err := s.dialIMAP()
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP: %w", err)
	}
	defer c.Logout()

	if err := c.Login(username, password); err != nil {
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	return &maildomain.ProviderAuth{
		Token: &oauth2.Token{
			AccessToken: authCode,
			TokenType:   "Basic",
		},
		AccountEmail: username,
	}, nil
}

func (s *Service) ListMessages(ctx context.Context, accessToken, folder string) ([]*maildomain.ProviderMessage, error) {
	username, password, err := splitCredentials(accessToken)
	if err != nil {
		return nil, err
	}

	c, err := s.dialIMAP()
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP: %w", err)
	}
	defer c.Logout()

	if err := c.Login(username, password); err != nil {
		return nil, fmt.Errorf("IMAP login failed: %w", err)
	}

	mailbox := "INBOX"
	if folder != "" && folder != maildomain.FolderInbox {
		mailbox = folder
	}
	mbox, err := c.Select(mailbox, true)
	if err != nil {
		return nil, fmt.Errorf("selecting %s: %w", mailbox, err)
	}
	if mbox.Messages == 0 {
		return nil, nil
	}

	from := uint32(1)
	if mbox.Messages > fetchLimit {
		from = mbox.Messages - fetchLimit + 1
	}
	seqset := new(imap.SeqSet)
	seqset.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, imap.FetchFlags, imap.FetchInternalDate, section.FetchItem()}

	ch := make(chan *imap.Message, fetchLimit)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqset, items, ch)
	}()

	var messages []*maildomain.ProviderMessage
	for msg := range ch {
		messages = append(messages, toProviderMessage(msg, section))
	}
	if err := <-done; err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}
	return messages, nil
}

func toProviderMessage(msg *imap.Message, section *imap.BodySectionName) *maildomain.ProviderMessage {
	out := &maildomain.ProviderMessage{
		ReceivedAt: msg.InternalDate,
	}

	for _, flag := range msg.Flags {
		if flag == imap.SeenFlag {
			out.IsRead = true
		}
	}

	if env := msg.Envelope; env != nil {
		out.MessageID = env.MessageId
		out.Subject = env.Subject
		if len(env.From) > 0 {
			out.From = formatAddress(env.From[0])
		}
		for _, addr := range env.To {
			out.To = append(out.To, addr.Address())
		}
	}

	if body := msg.GetBody(section); body != nil {
		out.Body, out.IsHTML = extractBody(body)
	}
	return out
}

func formatAddress(addr *imap.Address) string {
	if addr.PersonalName != "" {
		return fmt.Sprintf("%s <%s>", addr.PersonalName, addr.Address())
	}
	return addr.Address()
}

// extractBody returns the first text part of the message, preferring
// plain text over HTML.
func extractBody(r io.Reader) (string, bool) {
	mr, err := mail.CreateReader(r)
	if err != nil {
		return "", false
	}

	var html string
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		header, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := header.ContentType()
		content, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		switch contentType {
		case "text/plain":
			return string(content), false
		case "text/html":
			html = string(content)
		}
	}
	if html != "" {
		return html, true
	}
	return "", false
}

func (s *Service) SendMessage(ctx context.Context, accessToken string, msg *maildomain.OutgoingMessage) (*maildomain.SendResult, error) {
	username, password, err := splitCredentials(accessToken)
	if err != nil {
		return nil, err
	}

	raw, messageID, err := buildMessage(msg)
	if err != nil {
		return nil, err
	}

	recipients := make([]string, 0, len(msg.To)+len(msg.Cc)+len(msg.Bcc))
	recipients = append(recipients, msg.To...)
	recipients = append(recipients, msg.Cc...)
	recipients = append(recipients, msg.Bcc...)

	addr := fmt.Sprintf("%s:%d", s.smtpHost, s.smtpPort)
	auth := sasl.NewPlainClient("", username, password)

	if s.smtpUseTLS {
		err = smtp.SendMailTLS(addr, auth, msg.From, recipients, bytes.NewReader(raw))
	} else {
		err = smtp.SendMail(addr, auth, msg.From, recipients, bytes.NewReader(raw))
	}
	if err != nil {
		return nil, fmt.Errorf("SMTP submission failed: %w", err)
	}

	return &maildomain.SendResult{
		MessageID: messageID,
		Status:    "sent",
		SentAt:    time.Now(),
	}, nil
}

func buildMessage(msg *maildomain.OutgoingMessage) ([]byte, string, error) {
	var buf bytes.Buffer

	var h mail.Header
	h.SetDate(time.Now())
	h.SetSubject(msg.Subject)
	h.SetAddressList("From", []*mail.Address{{Address: msg.From}})
	h.SetAddressList("To", toAddressList(msg.To))
	if len(msg.Cc) > 0 {
		h.SetAddressList("Cc", toAddressList(msg.Cc))
	}
	h.GenerateMessageID()
	messageID, _ := h.MessageID()

	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, "", err
	}

	var inline mail.InlineHeader
	if msg.IsHTML {
		inline.Set("Content-Type", "text/html; charset=utf-8")
	} else {
		inline.Set("Content-Type", "text/plain; charset=utf-8")
	}

	iw, err := mw.CreateInline()
	if err != nil {
		return nil, "", err
	}
	pw, err := iw.CreatePart(inline)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.WriteString(pw, msg.Body); err != nil {
		return nil, "", err
	}
	pw.Close()
	iw.Close()
	mw.Close()

	return buf.Bytes(), messageID, nil
}

func toAddressList(addrs []string) []*mail.Address {
	list := make([]*mail.Address, 0, len(addrs))
	for _, a := range addrs {
		list = append(list, &mail.Address{Address: a})
	}
	return list
}

func (s *Service) GetProfile(ctx context.Context, accessToken string) (*maildomain.ProviderProfile, error) {
	username, _, err := splitCredentials(accessToken)
	if err != nil {
		return nil, err
	}
	name := username
	if local, _, ok := strings.Cut(username, "@"); ok {
		name = local
	}
	return &maildomain.ProviderProfile{
		Email: username,
		Name:  name,
	}, nil
}

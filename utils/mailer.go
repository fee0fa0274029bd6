package utils

import (
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"fuelreq/models"

	"github.com/google/uuid"
)

// Message is one outbound e-mail. PlainBody becomes the alternative part
// when HTMLBody is set. The attachment MIME type is inferred from the
// filename extension.
type Message struct {
	To             string
	Subject        string
	PlainBody      string
	HTMLBody       string
	Attachment     []byte
	AttachmentName string
}

// Mailer sends messages synchronously through the configured relay.
// One attempt per call; no retry, no queue.
type Mailer struct {
	Settings *models.Settings
}

// Configured reports whether the relay has enough configuration to attempt
// a send.
func (m *Mailer) Configured() bool {
	s := m.Settings
	return s != nil && s.SMTPServer != "" && s.SMTPUser != ""
}

// Send composes and transmits the message. All transport failures come back
// as an error value; nothing panics past this boundary.
func (m *Mailer) Send(msg Message) error {
	if !m.Configured() {
		return fmt.Errorf("SMTP não configurado - preencha as configurações")
	}
	if msg.To == "" {
		return fmt.Errorf("destinatário vazio")
	}

	s := m.Settings
	raw := BuildMIMEMessage(s.SMTPUser, msg)
	addr := fmt.Sprintf("%s:%d", s.SMTPServer, s.SMTPPort)

	if s.SMTPPort == 465 {
		return sendMailImplicitTLS(s, addr, []string{msg.To}, raw)
	}
	return sendMailSTARTTLS(s, addr, []string{msg.To}, raw)
}

// sendMailSTARTTLS sends over a plain connection, upgrading with STARTTLS
// when smtp_use_tls is set. With the flag on, a relay that does not offer
// STARTTLS is an error; with the flag off the session stays in clear text.
func sendMailSTARTTLS(s *models.Settings, addr string, to []string, raw []byte) error {
	c, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("falha ao conectar ao servidor SMTP: %w", err)
	}
	defer c.Close()

	if s.SMTPUseTLS {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			return fmt.Errorf("servidor SMTP não oferece STARTTLS")
		}
		if err := c.StartTLS(&tls.Config{ServerName: s.SMTPServer}); err != nil {
			return fmt.Errorf("falha no STARTTLS: %w", err)
		}
	}

	if ok, _ := c.Extension("AUTH"); ok && s.SMTPPassword != "" {
		auth := smtp.PlainAuth("", s.SMTPUser, s.SMTPPassword, s.SMTPServer)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("falha na autenticação SMTP: %w", err)
		}
	}

	if err := c.Mail(s.SMTPUser); err != nil {
		return fmt.Errorf("falha ao enviar e-mail: %w", err)
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("falha ao enviar e-mail: %w", err)
		}
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("falha ao enviar e-mail: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("falha ao enviar e-mail: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("falha ao enviar e-mail: %w", err)
	}
	return c.Quit()
}

// sendMailImplicitTLS dials TLS directly, the port-465 path.
func sendMailImplicitTLS(s *models.Settings, addr string, to []string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.SMTPServer})
	if err != nil {
		return fmt.Errorf("TLS dial failed: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.SMTPServer)
	if err != nil {
		return fmt.Errorf("SMTP client creation failed: %w", err)
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.SMTPUser, s.SMTPPassword, s.SMTPServer)
	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}
	if err = client.Mail(s.SMTPUser); err != nil {
		return fmt.Errorf("SMTP MAIL FROM failed: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("SMTP RCPT TO failed for %s: %w", rcpt, err)
		}
	}
	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("SMTP DATA failed: %w", err)
	}
	if _, err = writer.Write(raw); err != nil {
		return fmt.Errorf("SMTP write failed: %w", err)
	}
	return writer.Close()
}

// BuildMIMEMessage assembles the raw RFC 2822 payload: multipart/mixed when
// there is an attachment, multipart/alternative when both body kinds are
// present, bare text otherwise.
func BuildMIMEMessage(from string, msg Message) []byte {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", msg.Subject))
	sb.WriteString("MIME-Version: 1.0\r\n")

	mixedBoundary := "mixed_" + uuid.NewString()
	altBoundary := "alt_" + uuid.NewString()

	writeBodies := func() {
		if msg.HTMLBody != "" && msg.PlainBody != "" {
			sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", altBoundary))
			sb.WriteString(fmt.Sprintf("--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", altBoundary, msg.PlainBody))
			sb.WriteString(fmt.Sprintf("--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", altBoundary, msg.HTMLBody))
			sb.WriteString(fmt.Sprintf("--%s--\r\n", altBoundary))
			return
		}
		if msg.HTMLBody != "" {
			sb.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
			sb.WriteString(msg.HTMLBody + "\r\n")
			return
		}
		sb.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
		sb.WriteString(msg.PlainBody + "\r\n")
	}

	if len(msg.Attachment) == 0 {
		writeBodies()
		return []byte(sb.String())
	}

	sb.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=\"%s\"\r\n\r\n", mixedBoundary))
	sb.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
	writeBodies()
	sb.WriteString(fmt.Sprintf("\r\n--%s\r\n", mixedBoundary))
	sb.WriteString(fmt.Sprintf("Content-Type: %s; name=\"%s\"\r\n", AttachmentContentType(msg.AttachmentName), msg.AttachmentName))
	sb.WriteString("Content-Transfer-Encoding: base64\r\n")
	sb.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=\"%s\"\r\n\r\n", msg.AttachmentName))

	encoded := base64.StdEncoding.EncodeToString(msg.Attachment)
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	sb.WriteString(encoded + "\r\n")
	sb.WriteString(fmt.Sprintf("--%s--\r\n", mixedBoundary))
	return []byte(sb.String())
}

// AttachmentContentType infers the MIME type from the file extension.
func AttachmentContentType(filename string) string {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case strings.HasSuffix(lower, ".pdf"):
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

// IMailService delivers the shop's transactional mail. All sends are
// best-effort: callers run them in detached goroutines and only log failures.
type IMailService interface {
	SendBookingConfirmation(to, name, date, hour, service string) error
	SendOwnerAlert(customerName, customerEmail, date, hour, service string) error
	SendPaymentConfirmed(to, name, date, hour string) error
	SendMailToResetPassword(to, token string) error
}

// SMTPConfig holds the SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string
	FromName   string // display name, e.g. "Barbearia do Rod"
	UseSSL     bool   // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool

	OwnerEmail string // receives new-booking alerts
	AppName    string
	AppBaseURL string // front-end origin, used for reset links
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) IMailService {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("mailHTML").Parse(baseHTMLTemplate)),
		textTpl: template.Must(template.New("mailText").Parse(plainTextTemplate)),
	}
}

// ------------------- Public API -------------------

func (s *smtpMailService) SendBookingConfirmation(to, name, date, hour, service string) error {
	subject := "Agendamento Confirmado - " + s.cfg.AppName
	html, text, err := s.renderEmail(emailData{
		Title: fmt.Sprintf("Olá, %s!", name),
		Intro: "Seu horário está confirmado. Te esperamos lá!",
		Lines: []string{
			fmt.Sprintf("Data: %s às %s", date, hour),
			fmt.Sprintf("Serviço: %s", service),
		},
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendOwnerAlert(customerName, customerEmail, date, hour, service string) error {
	subject := fmt.Sprintf("NOVO CLIENTE: %s às %s", customerName, hour)
	html, text, err := s.renderEmail(emailData{
		Title: "Novo agendamento!",
		Intro: "Um cliente acabou de marcar um horário.",
		Lines: []string{
			fmt.Sprintf("Cliente: %s", customerName),
			fmt.Sprintf("E-mail: %s", customerEmail),
			fmt.Sprintf("Serviço: %s", service),
			fmt.Sprintf("Data: %s", date),
			fmt.Sprintf("Horário: %s", hour),
		},
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(s.cfg.OwnerEmail, subject, html, text)
}

func (s *smtpMailService) SendPaymentConfirmed(to, name, date, hour string) error {
	subject := "Pagamento Confirmado - " + s.cfg.AppName
	html, text, err := s.renderEmail(emailData{
		Title: fmt.Sprintf("Olá, %s!", name),
		Intro: "Recebemos o seu pagamento. Seu horário está garantido.",
		Lines: []string{
			fmt.Sprintf("Data: %s às %s", date, hour),
		},
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

func (s *smtpMailService) SendMailToResetPassword(to, token string) error {
	link := fmt.Sprintf("%s/resetar-senha.html?token=%s",
		strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	subject := "Redefinição de senha - " + s.cfg.AppName

	html, text, err := s.renderEmail(emailData{
		Title:     "Redefinir senha",
		Intro:     "Recebemos um pedido para redefinir a sua senha. O link abaixo vale por 1 hora. Se você não fez esse pedido, pode ignorar este e-mail.",
		ButtonURL: link,
		ButtonTxt: "Redefinir Senha",
		AppName:   s.cfg.AppName,
		Year:      time.Now().Year(),
	})
	if err != nil {
		return err
	}
	return s.send(to, subject, html, text)
}

// ------------------- Rendering -------------------

type emailData struct {
	Title     string
	Intro     string
	Lines     []string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:#111;color:#eee;font-family:Arial,Helvetica,sans-serif;">
  <div style="max-width:600px;margin:0 auto;padding:24px;">
    <div style="border:1px solid #333;border-radius:8px;overflow:hidden;background:#1b1b1b;">
      <div style="padding:20px 24px;border-bottom:1px solid #333;">
        <span style="font-size:20px;font-weight:bold;color:#d4af37;">{{.AppName}}</span>
      </div>
      <div style="padding:24px;">
        <h2 style="margin:0 0 12px;color:#d4af37;">{{.Title}}</h2>
        <p style="margin:0 0 16px;line-height:1.6;">{{.Intro}}</p>
        {{range .Lines}}<p style="margin:4px 0;"><strong>{{.}}</strong></p>{{end}}
        {{if .ButtonURL}}
          <p style="margin:24px 0;">
            <a href="{{.ButtonURL}}" style="display:inline-block;padding:12px 24px;background:#d4af37;color:#111;text-decoration:none;border-radius:6px;font-weight:bold;">{{.ButtonTxt}}</a>
          </p>
          <p style="font-size:12px;color:#999;">Se o botão não funcionar, copie e cole este link no navegador:<br><a href="{{.ButtonURL}}" style="color:#d4af37;word-break:break-all;">{{.ButtonURL}}</a></p>
        {{end}}
      </div>
      <div style="padding:16px 24px;border-top:1px solid #333;font-size:12px;color:#888;text-align:center;">
        © {{.Year}} {{.AppName}}
      </div>
    </div>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{range .Lines}}
{{.}}{{end}}
{{if .ButtonURL}}
Abra este link:
{{.ButtonURL}}
{{end}}
— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) renderEmail(data emailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.textTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// ------------------- SMTP Send -------------------

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := s.formatFromHeader()
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 8bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.Dial("tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		return s.submit(c, auth, to, msg.Bytes())
	}

	// STARTTLS path (typically port 587)
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
	}

	return s.submit(c, auth, to, msg.Bytes())
}

func (s *smtpMailService) submit(c *smtp.Client, auth smtp.Auth, to string, msg []byte) error {
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", name, s.cfg.From)
}

// Package smtp собирает и отправляет письма-напоминания техникам
// о завтрашних выездах через SMTP с обязательным STARTTLS.
package smtp

import (
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/smtp"
	"strings"

	"github.com/fieldray/fieldops/internal/config"
	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
)

// reminderSubject тема письма-напоминания.
const reminderSubject = "Напоминание о завтрашнем выезде"

// Client часть SMTP-сессии, которой пользуется рассыльщик.
// *smtp.Client из стандартной библиотеки реализует его напрямую.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Mailer отправляет письма-напоминания о выездах. Соединение
// устанавливается на каждое письмо: объём рассылки небольшой,
// пул соединений не нужен.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	log      *slog.Logger

	connect func() (Client, error)
}

// NewMailer создает рассыльщик напоминаний по настройкам SMTP.
func NewMailer(cfg config.SMTP, log *slog.Logger) *Mailer {
	m := &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		log:      log,
	}
	m.connect = m.dial
	return m
}

// SendReminder собирает письмо о завтрашнем выезде и отправляет его
// на адрес техника из напоминания.
func (m *Mailer) SendReminder(reminder models.JobReminder) error {
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nЗавтра, %s, у вас запланирован выезд по заявке «%s».\nКлиент: %s\nАдрес: %s",
		reminder.Technician,
		reminder.ScheduledAt.Format("02.01.2006 15:04"),
		reminder.Title,
		reminder.CustomerName,
		reminder.Address)

	msg := strings.Join([]string{
		"From: " + m.username,
		"To: " + reminder.Email,
		"Subject: " + reminderSubject,
		"MIME-Version: 1.0",
		`Content-Type: text/plain; charset="UTF-8"`,
		"",
		body,
	}, "\r\n")

	return m.deliver(reminder.Email, msg)
}

// deliver проводит SMTP-сессию для одного письма: MAIL FROM, RCPT TO,
// DATA, QUIT. Ошибка на любом шаге прерывает сессию.
func (m *Mailer) deliver(to, msg string) error {
	const op = "smtp.deliver"

	client, err := m.connect()
	if err != nil {
		m.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(m.username); err != nil {
		m.log.Error("failed to set MAIL FROM", slog.String("from", m.username), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Rcpt(to); err != nil {
		m.log.Error("failed to set RCPT TO", slog.String("recipient", to), sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	wc, err := client.Data()
	if err != nil {
		m.log.Error("failed to open DATA writer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		m.log.Error("failed to write message body", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = wc.Close(); err != nil {
		m.log.Error("failed to close DATA writer", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if err = client.Quit(); err != nil {
		m.log.Error("failed to quit SMTP session", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// dial открывает соединение с SMTP-сервером, поднимает STARTTLS
// и аутентифицируется. Сервер без STARTTLS отклоняется.
func (m *Mailer) dial() (Client, error) {
	const op = "smtp.dial"

	conn, err := net.Dial("tcp", net.JoinHostPort(m.host, m.port))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if ok, _ := client.Extension("STARTTLS"); !ok {
		_ = client.Close()
		return nil, fmt.Errorf("%s: server does not support STARTTLS", op)
	}
	tlsConfig := &tls.Config{
		ServerName: m.host,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	if err = client.Auth(auth); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return client, nil
}

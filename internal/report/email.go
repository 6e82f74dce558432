// Package report delivers end-of-batch summaries over email, Telegram, or
// the process log.
package report

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/swapnil/naukri-auto-apply/internal/types"
)

// EmailConfig configures the SMTP reporter.
type EmailConfig struct {
	Host     string   `json:"host"`
	Port     int      `json:"port"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from"`
	To       []string `json:"to"`
	// EscalationTo is appended to the recipient list on every third run of
	// the day, so a stalled pipeline gets noticed.
	EscalationTo []string `json:"escalationTo"`
}

// escalationEvery widens the recipient list when RunOfDay is a multiple.
const escalationEvery = 3

// EmailMessage is one rendered mail.
type EmailMessage struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// EmailSender abstracts delivery so tests can capture messages.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// SMTPClient sends mail through net/smtp with optional plain auth.
type SMTPClient struct {
	addr string
	auth smtp.Auth
}

func NewSMTPClient(cfg EmailConfig) *SMTPClient {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPClient{addr: addr, auth: auth}
}

func (c *SMTPClient) Send(_ context.Context, msg EmailMessage) error {
	data := buildEmailData(msg)
	return smtp.SendMail(c.addr, c.auth, msg.From, msg.To, []byte(data))
}

func buildEmailData(msg EmailMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	return b.String()
}

// EmailReporter mails the batch summary. It satisfies the orchestrator's
// Reporter contract.
type EmailReporter struct {
	cfg    EmailConfig
	sender EmailSender
}

// NewEmailReporter creates an EmailReporter. A nil sender uses SMTP.
func NewEmailReporter(cfg EmailConfig, sender EmailSender) *EmailReporter {
	if sender == nil {
		sender = NewSMTPClient(cfg)
	}
	return &EmailReporter{cfg: cfg, sender: sender}
}

// Send mails the batch report. Recipients widen with the escalation list on
// every third run of the day.
func (r *EmailReporter) Send(ctx context.Context, report types.BatchReport) error {
	to := append([]string(nil), r.cfg.To...)
	if report.RunOfDay > 0 && report.RunOfDay%escalationEvery == 0 {
		to = append(to, r.cfg.EscalationTo...)
	}
	if len(to) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	msg := EmailMessage{
		From:    r.cfg.From,
		To:      to,
		Subject: subjectFor(report),
		Body:    buildBody(report),
	}
	return r.sender.Send(ctx, msg)
}

func subjectFor(report types.BatchReport) string {
	segment := "Naukri"
	if report.MNCSegment {
		segment = "Naukri MNC"
	}
	return fmt.Sprintf("%s auto-apply: %d applied, %d skipped", segment, len(report.Applied), len(report.Skipped))
}

func buildBody(report types.BatchReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run %s\n", report.RunID)
	fmt.Fprintf(&b, "Applied this batch: %d\n", len(report.Applied))
	fmt.Fprintf(&b, "Skipped this batch: %d\n", len(report.Skipped))
	fmt.Fprintf(&b, "Applied today in total: %d\n\n", report.TotalAppliedJobsCount)

	if len(report.Applied) > 0 {
		b.WriteString("Applied:\n")
		for _, rec := range report.Applied {
			fmt.Fprintf(&b, "  - %s at %s (%.1f%%)\n    %s\n", rec.Title, rec.Company, rec.MatchPercentage, rec.Link)
		}
		b.WriteString("\n")
	}
	if len(report.Skipped) > 0 {
		b.WriteString("Skipped:\n")
		for _, rec := range report.Skipped {
			fmt.Fprintf(&b, "  - %s at %s: %s\n", rec.Title, rec.Company, rec.Reason)
		}
	}
	return b.String()
}

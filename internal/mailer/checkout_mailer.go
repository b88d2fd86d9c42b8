// Package mailer sends attendance notifications over SMTP.
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"tracewing-backend/internal/model"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// CheckOutMailer emails employees a summary of the day they just closed.
type CheckOutMailer struct {
	from   string
	dialer sender
	log    *slog.Logger
}

func NewCheckOutMailer(cfg Config, log *slog.Logger) *CheckOutMailer {
	return &CheckOutMailer{
		from:   cfg.From,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		log:    log,
	}
}

// NotifyCheckOut skips employees without an email address.
func (m *CheckOutMailer) NotifyCheckOut(ctx context.Context, employee *model.Employee, day *model.AttendanceDay) error {
	if employee.Email == "" {
		m.log.Debug("check-out mail skipped, no email on file", "employee_id", employee.ID)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := m.build(employee, day)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send check-out mail to %s: %w", employee.Email, err)
	}
	m.log.Info("check-out mail sent", "employee_id", employee.ID, "date", day.Date)
	return nil
}

func (m *CheckOutMailer) build(employee *model.Employee, day *model.AttendanceDay) *gomail.Message {
	hours := "-"
	if day.HoursWorked.Valid {
		hours = day.HoursWorked.Decimal.StringFixed(2)
	}
	var checkIn, checkOut string
	if day.CheckInAt != nil {
		checkIn = day.CheckInAt.UTC().Format("15:04:05 MST")
	}
	if day.CheckOutAt != nil {
		checkOut = day.CheckOutAt.UTC().Format("15:04:05 MST")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetAddressHeader("To", employee.Email, employee.Name)
	msg.SetHeader("Subject", fmt.Sprintf("Attendance summary for %s", day.Date))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour attendance for %s has been closed.\n\nCheck-in:  %s\nCheck-out: %s\nHours worked: %s\nOvertime: %s\n",
		employee.Name, day.Date, checkIn, checkOut, hours, day.OvertimeHours.StringFixed(2),
	))
	return msg
}

package service

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"parkhub/internal/config"
	"parkhub/internal/db"
	"parkhub/internal/logger"
)

// SenderService delivers reservation notifications. Everything here is
// best-effort and asynchronous: a failed send is logged and dropped, the
// reservation state is already committed.
type SenderService struct {
	cfg *config.Config
	log logger.Logger
}

func NewSenderService(cfg *config.Config, log logger.Logger) *SenderService {
	return &SenderService{cfg: cfg, log: log}
}

func (s *SenderService) SendReservationEmail(toEmail string, slot db.Slot, res db.Reservation, statusWord string) {
	subject := fmt.Sprintf("Your parking reservation is %s - Slot %s", statusWord, slot.SlotCode)
	body := fmt.Sprintf(
		"Hello,\n\nYour reservation for slot %s (zone %s) is %s.\n\n"+
			"Start: %s\n"+
			"End: %s\n\n"+
			"Thank you for using ParkHub.",
		slot.SlotCode, slot.Zone, statusWord,
		res.StartTime.Format("02 Jan 2006 15:04 MST"),
		res.EndTime.Format("02 Jan 2006 15:04 MST"),
	)

	go func() {
		if err := s.sendEmail(toEmail, subject, body); err != nil {
			s.log.Warn("reservation email not sent",
				logger.String("to", toEmail),
				logger.Error(err))
		}
	}()
}

func (s *SenderService) sendEmail(toEmail, subject, body string) error {
	if s.cfg.SendGridAPIKey == "" || s.cfg.SendGridFromEmail == "" {
		return fmt.Errorf("sendgrid credentials not configured")
	}

	from := mail.NewEmail(s.cfg.SendGridFromName, s.cfg.SendGridFromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *SenderService) SendReservationSMS(toNumber string, slot db.Slot, res db.Reservation, statusWord string) {
	message := fmt.Sprintf("ParkHub: reservation for slot %s is %s. Start: %s.",
		slot.SlotCode, statusWord, res.StartTime.Format("02/01 15:04"))

	go func() {
		if err := s.sendSMS(toNumber, message); err != nil {
			s.log.Warn("reservation SMS not sent",
				logger.String("to", toNumber),
				logger.Error(err))
		}
	}()
}

func (s *SenderService) sendSMS(toNumber, body string) error {
	if s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioFromNumber == "" {
		return fmt.Errorf("twilio credentials not configured")
	}
	if !strings.HasPrefix(toNumber, "+") {
		s.log.Warn("destination number not in E.164 format", logger.String("to", toNumber))
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   s.cfg.TwilioAccountSID,
		Password:   s.cfg.TwilioAuthToken,
		AccountSid: s.cfg.TwilioAccountSID,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(s.cfg.TwilioFromNumber)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send failed: %w", err)
	}
	return nil
}

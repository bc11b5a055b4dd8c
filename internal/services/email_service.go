package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/example/yaqeen/internal/models"
)

// EmailService sends transactional email over SMTP. Delivery failures are
// never fatal to the enclosing request; callers downgrade them to a warning
// string returned alongside the successful response.
type EmailService struct {
	host       string
	port       string
	username   string
	password   string
	from       string
	adminEmail string
}

// NewEmailService creates an EmailService.
func NewEmailService(host, port, username, password, from, adminEmail string) *EmailService {
	return &EmailService{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		from:       from,
		adminEmail: adminEmail,
	}
}

func (s *EmailService) configured() bool {
	return s.host != "" && s.from != ""
}

// SendMail delivers a plain-text message to a single recipient.
func (s *EmailService) SendMail(to, subject, body string) error {
	if !s.configured() {
		log.Println("[Email] SMTP not configured, skipping send")
		return nil
	}
	if to == "" {
		return fmt.Errorf("no recipient address")
	}

	var msg strings.Builder
	msg.WriteString("From: " + s.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	addr := s.host + ":" + s.port
	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		log.Printf("[Email] Failed to send %q to %s: %v", subject, to, err)
		return err
	}
	return nil
}

// SendWelcome greets a newly registered user.
func (s *EmailService) SendWelcome(to, name string) error {
	body := fmt.Sprintf("Hi %s,\n\nThank you for signing up to Yaqeen Clothing! You can now shop the latest collections and view your orders from your profile.", displayName(name))
	return s.SendMail(to, "Welcome to Yaqeen Clothing", body)
}

// SendOTP delivers a password-reset code.
func (s *EmailService) SendOTP(to, name, otp string) error {
	body := fmt.Sprintf("Hi %s,\n\nYou requested a password reset. Your OTP is: %s\n\nThis OTP is valid for 15 minutes. If you did not request this, please ignore this email.", displayName(name), otp)
	return s.SendMail(to, "Your Password Reset OTP", body)
}

// SendPasswordChanged confirms a password change.
func (s *EmailService) SendPasswordChanged(to, name string) error {
	body := fmt.Sprintf("Hi %s,\n\nYour password was successfully changed. If this wasn't you, please contact us at %s.", displayName(name), s.from)
	return s.SendMail(to, "Password Successfully Changed", body)
}

// SendOrderConfirmation mails an order summary to the orderer.
func (s *EmailService) SendOrderConfirmation(order *models.Order) error {
	var items strings.Builder
	for i, item := range order.Items {
		items.WriteString(fmt.Sprintf("%d. %s (%s, %s) x%d - %.2f EGP\n",
			i+1, item.Name, item.Color, item.Size, item.Quantity, item.UnitPrice))
	}

	body := fmt.Sprintf(`Hi %s,

Thank you for your order!

Order number: %s
Status: %s

Items:
%s
Total: %.2f EGP

We will keep you posted as your order makes its way to you.`,
		displayName(order.OrdererName()),
		order.OrderNumber,
		order.Status,
		items.String(),
		order.TotalPrice,
	)

	return s.SendMail(order.OrdererEmail(), "Order Confirmation "+order.OrderNumber, body)
}

// NotifyNewMessage forwards a contact-form submission to the store admin.
func (s *EmailService) NotifyNewMessage(message models.Message) error {
	if s.adminEmail == "" {
		log.Println("[Email] Admin email not configured, skipping contact notification")
		return nil
	}

	body := fmt.Sprintf("New message from %s\n\nPhone: %s\nEmail: %s\nCategory: %s\n\n%s",
		message.Name, message.Phone, message.Email, message.Category, message.Body)
	return s.SendMail(s.adminEmail, "New Message from "+message.Name, body)
}

func displayName(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendOrderReceipt(toEmail, productName string, quantity int, unit string, total float64) error
	SendPriceProposal(toEmail, proposal string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendOrderReceipt(toEmail, productName string, quantity int, unit string, total float64) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your FarmMarket Order")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Order confirmed</h2>
			<p>Your order has been placed:</p>
			<h3>%d %s of %s</h3>
			<p>Total: ₹%.2f</p>
			<p>The farmer will be in touch about delivery.</p>
		</div>
	`, quantity, unit, productName, total)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send receipt to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Order receipt sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendPriceProposal(toEmail, proposal string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "New Price Proposal")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Price proposal received</h2>
			<h3>%s</h3>
			<p>Open your FarmMarket messages to accept or counter.</p>
		</div>
	`, proposal)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send proposal to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Price proposal sent to %s\n", toEmail)
	return nil
}

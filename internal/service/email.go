package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"acharya-admissions-backend/internal/domain"
)

type emailService struct {
	apiKey      string
	fromEmail   string
	fromName    string
	trackingURL string
}

// NewEmailService sends admission communications through SendGrid.
// trackingURL is the public tracking page; the reference id is appended.
func NewEmailService(apiKey, fromEmail, fromName, trackingURL string) EmailService {
	return &emailService{
		apiKey:      apiKey,
		fromEmail:   fromEmail,
		fromName:    fromName,
		trackingURL: trackingURL,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendOTP(ctx context.Context, email, applicantName, otp string) error {
	greeting := "Hello,"
	if applicantName != "" {
		greeting = "Hello " + applicantName + ","
	}
	body := fmt.Sprintf(`%s

Thank you for starting your admission application with Acharya Schools.
To continue, please verify your email address using the OTP below:

Your OTP: %s

This OTP will expire in 10 minutes. Do not share it with anyone.
If you didn't request this verification, please ignore this email.

Best regards,
Acharya Admissions Office`, greeting, otp)
	return s.send(email, applicantName, "Verify Your Email - Acharya School Admission", body)
}

func (s *emailService) SendSubmissionConfirmation(ctx context.Context, app *domain.Application) error {
	body := fmt.Sprintf(`Hello %s,

Your admission application for %s has been received.

Your reference ID is: %s

Keep this ID safe; you will need it to track your application and to
complete your enrollment. Track your application at:
%s?reference_id=%s

Best regards,
Acharya Admissions Office`, app.ApplicantName, app.CourseApplied, app.ReferenceID, s.trackingURL, app.ReferenceID)
	return s.send(app.Email, app.ApplicantName, "Application Received - "+app.ReferenceID, body)
}

func (s *emailService) SendDecisionNotification(ctx context.Context, email, applicantName, schoolName string, status domain.DecisionStatus, comments string) error {
	body := fmt.Sprintf(`Hello %s,

%s has %s your admission application.`, applicantName, schoolName, status)
	if comments != "" {
		body += fmt.Sprintf("\n\nReviewer comments: %s", comments)
	}
	body += "\n\nLog in to the tracking page to see your options.\n\nBest regards,\nAcharya Admissions Office"
	return s.send(email, applicantName, fmt.Sprintf("Admission Update from %s", schoolName), body)
}

func (s *emailService) SendEnrollmentConfirmation(ctx context.Context, email, applicantName, schoolName, paymentReference string) error {
	body := fmt.Sprintf(`Hello %s,

Congratulations! Your enrollment at %s is confirmed.`, applicantName, schoolName)
	if paymentReference != "" {
		body += fmt.Sprintf("\n\nPayment reference: %s", paymentReference)
	}
	body += "\n\nBest regards,\nAcharya Admissions Office"
	return s.send(email, applicantName, "Enrollment Confirmed - "+schoolName, body)
}

func (s *emailService) SendWithdrawalConfirmation(ctx context.Context, email, applicantName, schoolName, reason string) error {
	body := fmt.Sprintf(`Hello %s,

Your enrollment at %s has been withdrawn.`, applicantName, schoolName)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason on record: %s", reason)
	}
	body += "\n\nBest regards,\nAcharya Admissions Office"
	return s.send(email, applicantName, "Enrollment Withdrawn - "+schoolName, body)
}

func (s *emailService) SendChoiceReminder(ctx context.Context, email, applicantName, referenceID string) error {
	body := fmt.Sprintf(`Hello %s,

More than one school has accepted your application %s, and you have not
yet chosen where to enroll. Visit the tracking page to make your choice:
%s?reference_id=%s

Best regards,
Acharya Admissions Office`, applicantName, referenceID, s.trackingURL, referenceID)
	return s.send(email, applicantName, "Action Needed: Choose Your School", body)
}

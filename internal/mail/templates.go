package mail

import (
	"fmt"
	"strings"
	"time"
)

const signature = "Best regards,\nSkillSage Team"

// details rendered into an interview invitation
type Invitation struct {
	CandidateEmail     string
	CandidateFirstName string
	Title              string
	Description        string
	StartTime          time.Time
	DurationMinutes    int
}

// builds the email sent to a candidate when an interview is scheduled
func InvitationMail(inv Invitation) Mail {
	var b strings.Builder

	fmt.Fprintf(&b, "Dear %s,\n\n", inv.CandidateFirstName)
	b.WriteString("You have been invited to an interview on SkillSage.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", inv.Title)
	fmt.Fprintf(&b, "Description: %s\n", inv.Description)
	fmt.Fprintf(&b, "Date: %s\n", inv.StartTime.UTC().Format("Monday, January 2, 2006 at 15:04 MST"))
	fmt.Fprintf(&b, "Duration: %d minutes\n\n", inv.DurationMinutes)
	b.WriteString("Please log in at the scheduled time to join the interview room.\n\n")
	b.WriteString(signature)

	return Mail{
		To:      inv.CandidateEmail,
		Subject: "Interview Invitation: " + inv.Title,
		Body:    b.String(),
	}
}

// builds the password reset email carrying the one-time code
func OTPMail(email, code string, ttl time.Duration) Mail {
	body := fmt.Sprintf("Your OTP is: %s\n\nThe code expires in %d minutes. If you did not request a password reset, you can ignore this email.\n\n%s",
		code, int(ttl.Minutes()), signature)

	return Mail{
		To:      email,
		Subject: "Reset your password - SkillSage",
		Body:    body,
	}
}

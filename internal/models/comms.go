package models

import "time"

// EmailStatus tracks an outreach email through delivery events.
type EmailStatus string

const (
	EmailDraft     EmailStatus = "draft"
	EmailSent      EmailStatus = "sent"
	EmailDelivered EmailStatus = "delivered"
	EmailOpened    EmailStatus = "opened"
	EmailReplied   EmailStatus = "replied"
	EmailBounced   EmailStatus = "bounced"
)

func (s EmailStatus) Valid() bool {
	switch s {
	case EmailDraft, EmailSent, EmailDelivered, EmailOpened, EmailReplied, EmailBounced:
		return true
	}
	return false
}

// Email is an outreach email tied to a prospect. Append-mostly; status is
// updated on delivery events.
type Email struct {
	ID         int64       `json:"id" db:"id"`
	AccountID  int64       `json:"account_id" db:"account_id"`
	ProspectID *int64      `json:"prospect_id,omitempty" db:"prospect_id"`
	Subject    *string     `json:"subject,omitempty" db:"subject"`
	Body       *string     `json:"body,omitempty" db:"body"`
	FromEmail  *string     `json:"from_email,omitempty" db:"from_email"`
	ToEmail    *string     `json:"to_email,omitempty" db:"to_email"`
	Status     EmailStatus `json:"status" db:"status"`
	SentAt     *time.Time  `json:"sent_at,omitempty" db:"sent_at"`
	OpenedAt   *time.Time  `json:"opened_at,omitempty" db:"opened_at"`
	RepliedAt  *time.Time  `json:"replied_at,omitempty" db:"replied_at"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// CallStatus is the disposition of an inbound call.
type CallStatus string

const (
	CallAnswered  CallStatus = "answered"
	CallMissed    CallStatus = "missed"
	CallVoicemail CallStatus = "voicemail"
)

func (s CallStatus) Valid() bool {
	switch s {
	case CallAnswered, CallMissed, CallVoicemail:
		return true
	}
	return false
}

// LeadQuality grades an inbound call.
type LeadQuality string

const (
	LeadHot  LeadQuality = "hot"
	LeadWarm LeadQuality = "warm"
	LeadCold LeadQuality = "cold"
	LeadSpam LeadQuality = "spam"
)

func (q LeadQuality) Valid() bool {
	switch q {
	case LeadHot, LeadWarm, LeadCold, LeadSpam:
		return true
	}
	return false
}

// Call is an inbound call record tied to a GBP listing. Duration is seconds.
type Call struct {
	ID            int64        `json:"id" db:"id"`
	AccountID     int64        `json:"account_id" db:"account_id"`
	GBPID         *int64       `json:"gbp_id,omitempty" db:"gbp_id"`
	CallerPhone   *string      `json:"caller_phone,omitempty" db:"caller_phone"`
	ReceiverPhone *string      `json:"receiver_phone,omitempty" db:"receiver_phone"`
	Duration      *int         `json:"duration,omitempty" db:"duration"`
	Status        *CallStatus  `json:"status,omitempty" db:"status"`
	RecordingURL  *string      `json:"recording_url,omitempty" db:"recording_url"`
	Transcription *string      `json:"transcription,omitempty" db:"transcription"`
	LeadQuality   *LeadQuality `json:"lead_quality,omitempty" db:"lead_quality"`
	CalledAt      time.Time    `json:"called_at" db:"called_at"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

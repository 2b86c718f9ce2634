package event

const (
	ResetTokenIssuedEventName EventName = "admin.reset_token.issued"
)

// ResetTokenIssuedEvent is published when an admin requests a password
// reset. Subscribers deliver the recovery link out of band.
type ResetTokenIssuedEvent struct {
	Username string
	Email    string
	Token    string
}

func (e *ResetTokenIssuedEvent) GetEventName() EventName {
	return ResetTokenIssuedEventName
}

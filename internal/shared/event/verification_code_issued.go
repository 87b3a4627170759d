package event

import "time"

const VerificationCodeIssuedTopic string = "verification.code_issued"
const VerificationCodeIssuedConsumerNotification string = "verification_code_issued_notification"

type VerificationCodeIssuedMessage struct {
	Purpose   string    `json:"purpose"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
)

// SMSMessage is the payload shape the SMS gateway expects.
type SMSMessage struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendVerificationCode delivers a login code to a phone via the configured
// SMS gateway. Without SMS_API_URL the code is logged instead, which is the
// development mode behaviour.
func SendVerificationCode(phone, code string) error {
	apiURL := os.Getenv("SMS_API_URL")
	if apiURL == "" {
		log.WithFields(log.Fields{"phone": phone}).Infof("SMS gateway not configured, verification code is %s", code)
		return nil
	}

	message := SMSMessage{
		Phone:   phone,
		Message: fmt.Sprintf("【ReferralX】您的验证码是：%s，5分钟内有效。", code),
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("marshal SMS payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, apiURL+"/api/v1/sendMessage", bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("create SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SMS_API_KEY"))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	log.WithFields(log.Fields{"phone": phone}).Info("Verification code sent")
	return nil
}

package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// QuickScreeningEmail carries the desensitized candidate profile forwarded to
// the hiring contact for a quick-screening referral. It must not contain any
// contact information.
type QuickScreeningEmail struct {
	ReferralID  uint
	UserName    string
	JobTitle    string
	Company     string
	Industry    string
	Experience  string
	Skills      string
	Education   string
	Location    string
	MatchReason string
}

// FormalReferralEmail carries the full candidate details of a formal
// referral.
type FormalReferralEmail struct {
	ReferralID     uint
	UserName       string
	JobTitle       string
	Company        string
	CandidateName  string
	CandidatePhone string
	CandidateEmail string
	MatchReason    string
}

// SendQuickScreeningEmail notifies the hiring contact about a new
// quick-screening request. Best effort: failures are logged and never
// propagate to the referral write.
func SendQuickScreeningEmail(data QuickScreeningEmail) {
	subject := fmt.Sprintf("[快速初筛] 职位：%s - %s", data.JobTitle, time.Now().Format("2006-01-02 15:04"))
	body := strings.Join([]string{
		"ReferralX - 快速初筛请求",
		"",
		fmt.Sprintf("推荐ID：%d", data.ReferralID),
		fmt.Sprintf("推荐人：%s", data.UserName),
		fmt.Sprintf("目标职位：%s", data.JobTitle),
		fmt.Sprintf("招聘公司：%s", data.Company),
		"",
		"候选人概况（已脱敏）：",
		fmt.Sprintf("行业方向：%s", orUnknown(data.Industry)),
		fmt.Sprintf("工作年限：%s", orUnknown(data.Experience)),
		fmt.Sprintf("技能亮点：%s", orUnknown(data.Skills)),
		fmt.Sprintf("学历层级：%s", orUnknown(data.Education)),
		fmt.Sprintf("所在城市：%s", orUnknown(data.Location)),
		fmt.Sprintf("匹配理由：%s", orUnknown(data.MatchReason)),
		"",
		"此信息已经过脱敏处理，不包含候选人姓名、联系方式等敏感信息。",
		"评估完成后请通过平台反馈结果给推荐人。",
	}, "\n")

	sendMail(subject, body)
}

// SendFormalReferralEmail notifies the hiring contact about a formal
// referral. Best effort, same as SendQuickScreeningEmail.
func SendFormalReferralEmail(data FormalReferralEmail) {
	subject := fmt.Sprintf("[正式推荐] 职位：%s - %s", data.JobTitle, time.Now().Format("2006-01-02 15:04"))
	body := strings.Join([]string{
		"ReferralX - 正式推荐",
		"",
		fmt.Sprintf("推荐ID：%d", data.ReferralID),
		fmt.Sprintf("推荐人：%s", data.UserName),
		fmt.Sprintf("目标职位：%s", data.JobTitle),
		fmt.Sprintf("招聘公司：%s", data.Company),
		"",
		"候选人信息：",
		fmt.Sprintf("姓名：%s", data.CandidateName),
		fmt.Sprintf("电话：%s", data.CandidatePhone),
		fmt.Sprintf("邮箱：%s", orUnknown(data.CandidateEmail)),
		fmt.Sprintf("推荐理由：%s", orUnknown(data.MatchReason)),
	}, "\n")

	sendMail(subject, body)
}

func sendMail(subject, body string) {
	host := os.Getenv("SMTP_HOST")
	recipient := os.Getenv("REFERRAL_INBOX")

	// Without SMTP configuration the mail is only logged, which is the
	// development mode behaviour.
	if host == "" || recipient == "" {
		log.WithFields(log.Fields{"subject": subject}).Info("SMTP not configured, logging email instead")
		log.Debug(body)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(
		host,
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.WithError(err).Errorf("Failed to send email %q", subject)
		return
	}

	log.Infof("Email %q sent to %s", subject, recipient)
}

func orUnknown(s string) string {
	if s == "" {
		return "未提供"
	}
	return s
}

package sensitivity

import (
	"strings"
)

// Placeholder tokens used when contact details are removed outright in the
// quick-screening path.
const (
	PlaceholderPhone  = "[联系方式已确认]"
	PlaceholderEmail  = "[邮箱已确认]"
	PlaceholderQQ     = "[QQ已确认]"
	PlaceholderWeChat = "[微信已确认]"
	PlaceholderIDCard = "[身份证号已移除]"
)

// Options toggles redaction per category. The zero value redacts nothing;
// use DefaultOptions for the everything-on default.
type Options struct {
	MaskPhone    bool
	MaskEmail    bool
	MaskName     bool
	MaskCompany  bool
	RemoveIDCard bool
}

// DefaultOptions enables every redaction category.
func DefaultOptions() Options {
	return Options{
		MaskPhone:    true,
		MaskEmail:    true,
		MaskName:     true,
		MaskCompany:  true,
		RemoveIDCard: true,
	}
}

// Desensitize applies the partial-masking transform: phone numbers keep the
// first 3 and last 4 digits, email local parts keep their first two
// characters, names keep first and last rune, company names are replaced
// with a generic placeholder, ID numbers are removed.
func Desensitize(text string, opts Options) string {
	result := text

	if opts.RemoveIDCard {
		result = idCardPattern.ReplaceAllString(result, PlaceholderIDCard)
	}

	if opts.MaskPhone {
		result = phonePattern.ReplaceAllStringFunc(result, func(match string) string {
			return match[:3] + "****" + match[7:]
		})
	}

	if opts.MaskEmail {
		result = emailPattern.ReplaceAllStringFunc(result, maskEmail)
	}

	if opts.MaskName {
		result = namePattern.ReplaceAllStringFunc(result, func(match string) string {
			name := trimNameBoundary(match)
			return maskName(name) + match[len(name):]
		})
	}

	if opts.MaskCompany {
		result = companyFullPattern.ReplaceAllString(result, "某知名企业")
		result = companyChinesePattern.ReplaceAllString(result, "某大型企业")
	}

	return result
}

// ForQuickScreening is the stricter transform for the quick-screening path:
// any contact channel is removed wholesale, not masked, so no contact
// information can survive into the screening email.
func ForQuickScreening(text string) string {
	result := Desensitize(text, Options{
		MaskName:     true,
		MaskCompany:  true,
		RemoveIDCard: true,
	})
	result = phonePattern.ReplaceAllString(result, PlaceholderPhone)
	result = emailPattern.ReplaceAllString(result, PlaceholderEmail)
	result = qqPattern.ReplaceAllString(result, PlaceholderQQ)
	result = wechatPattern.ReplaceAllString(result, PlaceholderWeChat)
	return result
}

func maskEmail(match string) string {
	at := strings.Index(match, "@")
	if at < 0 {
		return match
	}
	local, domain := match[:at], match[at+1:]
	if len(local) > 2 {
		local = local[:2] + strings.Repeat("*", len(local)-2)
	}
	return local + "@" + domain
}

func maskName(name string) string {
	runes := []rune(name)
	switch {
	case len(runes) == 2:
		return string(runes[0]) + "*"
	case len(runes) >= 3:
		return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
	default:
		return name
	}
}

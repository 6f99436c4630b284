// Package sensitivity flags and redacts personally-identifying substrings in
// free-text referral fields. It is a heuristic filter feeding a soft warning
// UI: categories are matched independently, spans may overlap, and false
// positives are acceptable.
package sensitivity

import (
	"regexp"
	"strings"
	"unicode"
)

// Detection categories.
const (
	CategoryPhone       = "phone"
	CategoryEmail       = "email"
	CategoryIDCard      = "idCard"
	CategoryCompanyName = "companyName"
	CategoryChineseName = "chineseName"
	CategoryQQ          = "qq"
	CategoryWeChat      = "wechat"
)

var (
	phonePattern   = regexp.MustCompile(`1[3-9]\d{9}`)
	emailPattern   = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	idCardPattern  = regexp.MustCompile(`\d{15}|\d{17}[\dXx]`)
	companyPattern = regexp.MustCompile(`(公司|集团|有限|科技|股份|企业|工作室|合作社)`)
	// 2-4 CJK runes terminated by whitespace, CJK punctuation or end of text.
	namePattern   = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,4}([\s，。：；]|$)`)
	qqPattern     = regexp.MustCompile(`[1-9]\d{4,11}`)
	wechatPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9_-]{5,19}`)

	companyFullPattern    = regexp.MustCompile(`[^\s]{2,10}(公司|集团|有限|科技|股份)`)
	companyChinesePattern = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]{2,8}(公司|集团)`)
)

// categories in detection order; suggestions are reported in the same order.
var categories = []struct {
	name    string
	pattern *regexp.Regexp
}{
	{CategoryPhone, phonePattern},
	{CategoryEmail, emailPattern},
	{CategoryIDCard, idCardPattern},
	{CategoryCompanyName, companyPattern},
	{CategoryChineseName, namePattern},
	{CategoryQQ, qqPattern},
	{CategoryWeChat, wechatPattern},
}

var suggestions = map[string]string{
	CategoryPhone:       "检测到手机号，请移除或使用\"联系方式已确认\"等描述",
	CategoryEmail:       "检测到邮箱地址，请移除或使用\"邮箱已确认\"等描述",
	CategoryChineseName: "检测到可能的姓名，请使用\"候选人\"、\"该同学\"等称谓",
	CategoryCompanyName: "检测到公司名，请使用\"某互联网公司\"、\"知名外企\"等模糊描述",
	CategoryIDCard:      "检测到身份证号，请立即移除",
}

// trimNameBoundary removes the trailing rune the name pattern consumed: any
// whitespace, or the CJK punctuation from its boundary class.
func trimNameBoundary(s string) string {
	return strings.TrimRightFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("，。：；", r)
	})
}

// CheckResult is the structured outcome of a sensitivity scan.
type CheckResult struct {
	HasSensitiveInfo bool                `json:"has_sensitive_info"`
	DetectedTypes    []string            `json:"detected_types"`
	Matches          map[string][]string `json:"matches"`
	Suggestions      []string            `json:"suggestions"`
}

// Check scans text against every category and reports what was found,
// together with a human-readable suggestion per triggered category.
func Check(text string) CheckResult {
	result := CheckResult{
		DetectedTypes: []string{},
		Matches:       map[string][]string{},
		Suggestions:   []string{},
	}

	for _, c := range categories {
		matches := c.pattern.FindAllString(text, -1)
		if len(matches) == 0 {
			continue
		}
		if c.name == CategoryChineseName {
			// Strip the boundary rune the pattern had to consume.
			for i := range matches {
				matches[i] = trimNameBoundary(matches[i])
			}
		}
		result.HasSensitiveInfo = true
		result.DetectedTypes = append(result.DetectedTypes, c.name)
		result.Matches[c.name] = matches
	}

	for _, c := range categories {
		if suggestion, ok := suggestions[c.name]; ok && result.Matches[c.name] != nil {
			result.Suggestions = append(result.Suggestions, suggestion)
		}
	}

	return result
}

// Hint builds a short advisory message for the submission form, or "" when
// the text is clean.
func Hint(text string) string {
	check := Check(text)
	if !check.HasSensitiveInfo {
		return ""
	}

	var hints []string
	if check.Matches[CategoryPhone] != nil {
		hints = append(hints, "• 请移除手机号或使用\"联系方式已确认\"")
	}
	if check.Matches[CategoryEmail] != nil {
		hints = append(hints, "• 请移除邮箱或使用\"邮箱已确认\"")
	}
	if check.Matches[CategoryChineseName] != nil {
		hints = append(hints, "• 请使用\"候选人\"而非真实姓名")
	}
	if check.Matches[CategoryCompanyName] != nil {
		hints = append(hints, "• 请使用\"某互联网公司\"等模糊描述")
	}
	if len(hints) == 0 {
		return ""
	}
	return "检测到敏感信息，建议调整：\n" + strings.Join(hints, "\n")
}

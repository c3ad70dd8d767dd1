// Package validate implements the field rules for member registration as a
// pure function: candidate in, ordered violation messages out. It performs no
// I/O; the email uniqueness check lives in the service and the store.
package validate

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"memberlist/internal/member/models"
)

// Violation messages, word for word as presented to API clients.
const (
	MsgNameRequired            = "名前は必須です"
	MsgNameTooLong             = "名前は100文字以内で入力してください"
	MsgNameKanaRequired        = "読み仮名は必須です"
	MsgNameKanaTooLong         = "読み仮名は100文字以内で入力してください"
	MsgNameKanaNotHiragana     = "読み仮名はひらがなで入力してください"
	MsgEmailRequired           = "メールアドレスは必須です"
	MsgEmailTooLong            = "メールアドレスは255文字以内で入力してください"
	MsgEmailInvalid            = "有効なメールアドレスを入力してください"
	MsgPositionTooLong         = "役職は100文字以内で入力してください"
	MsgLocationTooLong         = "所在地は200文字以内で入力してください"
	MsgSelfIntroductionTooLong = "自己紹介は1000文字以内で入力してください"
)

// Length limits, counted in Unicode code points.
const (
	maxNameLen             = 100
	maxNameKanaLen         = 100
	maxEmailLen            = 255
	maxPositionLen         = 100
	maxLocationLen         = 200
	maxSelfIntroductionLen = 1000
)

// Member checks a candidate against all field rules and returns one message
// per failing field, ordered as the fields are declared on the model. A blank
// value short-circuits the remaining checks on that field, so a field never
// contributes more than one message.
func Member(m *models.Member) []string {
	var violations []string

	switch {
	case isBlank(m.Name):
		violations = append(violations, MsgNameRequired)
	case runeLen(m.Name) > maxNameLen:
		violations = append(violations, MsgNameTooLong)
	}

	switch {
	case isBlank(m.NameKana):
		violations = append(violations, MsgNameKanaRequired)
	case runeLen(m.NameKana) > maxNameKanaLen:
		violations = append(violations, MsgNameKanaTooLong)
	case !isHiragana(m.NameKana):
		violations = append(violations, MsgNameKanaNotHiragana)
	}

	switch {
	case isBlank(m.Email):
		violations = append(violations, MsgEmailRequired)
	case runeLen(m.Email) > maxEmailLen:
		violations = append(violations, MsgEmailTooLong)
	case !isValidEmail(m.Email):
		violations = append(violations, MsgEmailInvalid)
	}

	if m.Position != nil && runeLen(*m.Position) > maxPositionLen {
		violations = append(violations, MsgPositionTooLong)
	}
	if m.Location != nil && runeLen(*m.Location) > maxLocationLen {
		violations = append(violations, MsgLocationTooLong)
	}
	if m.SelfIntroduction != nil && runeLen(*m.SelfIntroduction) > maxSelfIntroductionLen {
		violations = append(violations, MsgSelfIntroductionTooLong)
	}

	return violations
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// isHiragana reports whether every rune lies in U+3041..U+3093. A single rune
// outside the range fails the whole field; the long vowel mark and katakana
// are deliberately excluded.
func isHiragana(s string) bool {
	for _, r := range s {
		if r < 'ぁ' || r > 'ん' {
			return false
		}
	}
	return true
}

// isValidEmail accepts bare addr-spec addresses only, rejecting the
// display-name forms net/mail would otherwise allow.
func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

package export

import (
	"net/url"
	"strings"

	"github.com/pkg/browser"
)

// Mailer hands a mailto url to the system mail composer
type Mailer interface {
	Open(mailto string) error
}

// SystemMailer opens urls with the OS default handler
type SystemMailer struct{}

// Open url
func (SystemMailer) Open(mailto string) error {
	return browser.OpenURL(mailto)
}

// MailtoURL makes "mailto:?subject=..&body=.." with both parts percent-encoded
func MailtoURL(subject, body string) string {
	return "mailto:?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

// encodeComponent escapes spaces as %20, mail clients don't treat "+" as space
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

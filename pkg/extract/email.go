package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/jhillyerd/enmime"
)

// readEmail parses a MIME email file (.eml/.email, best effort for .msg) and
// synthesizes a single text blob with the message headers up front.
//
// Email-derived text is intentionally NOT run through Normalize: the
// Subject/Sender/Recipients framing is part of the signal the classifier
// relies on, so casing and punctuation are preserved as-is.
func readEmail(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	env, err := enmime.ReadEnvelope(f)
	if err != nil {
		return "", err
	}

	subject := env.GetHeader("Subject")
	if subject == "" {
		subject = "No subject"
	}

	sender := "Unknown sender"
	if from, err := env.AddressList("From"); err == nil && len(from) > 0 {
		sender = from[0].Address
	}

	recipients := "Unknown recipients"
	if to, err := env.AddressList("To"); err == nil && len(to) > 0 {
		addrs := make([]string, len(to))
		for i, a := range to {
			addrs[i] = a.Address
		}
		recipients = strings.Join(addrs, ", ")
	}

	body := strings.TrimSpace(env.Text)
	if body == "" {
		body = "No content in email."
	}

	return fmt.Sprintf("Subject: %s\nSender: %s\nRecipients: %s\n\n%s", subject, sender, recipients, body), nil
}

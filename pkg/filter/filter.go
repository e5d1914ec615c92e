package filter

import (
	"strings"

	"github.com/AikenH/mySMSTransactionAnalyzer/pkg/models"
)

// Keep returns the messages whose text contains at least one of the
// keywords. With no keywords nothing matches; the caller decides what an
// empty keyword list means.
func Keep(msgs []models.DatedMessage, keywords []string) []models.DatedMessage {
	var out []models.DatedMessage
	for _, msg := range msgs {
		for _, kw := range keywords {
			if strings.Contains(msg.Text, kw) {
				out = append(out, msg)
				break
			}
		}
	}
	return out
}

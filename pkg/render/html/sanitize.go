package html

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/appform-io/formkit/pkg/formdef"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// labelMarkup returns the HTML-safe label for a question. Labels flagged as
// rich HTML pass through the sanitizer; everything else is escaped.
func labelMarkup(q *formdef.Question) string {
	if !q.RenderLabelAsHTML {
		return html.EscapeString(q.Label)
	}
	cleaned := strings.TrimSpace(labelSanitizer().Sanitize(q.Label))
	if cleaned == "" {
		return html.EscapeString(q.Label)
	}
	return cleaned
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("target", "rel").OnElements("a")
		labelPolicy = policy
	})
	return labelPolicy
}

package relation

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-relationfield/pkg/widget"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// defaultLabelPolicy strips every tag from labels coming back from lookup
// endpoints; option labels are remote data rendered into the form.
func defaultLabelPolicy() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}

func sanitizeLabel(policy *bluemonday.Policy, raw string, value any) string {
	if policy == nil {
		policy = defaultLabelPolicy()
	}
	cleaned := strings.TrimSpace(policy.Sanitize(raw))
	if cleaned == "" {
		return widget.IdentifierKey(value)
	}
	return cleaned
}

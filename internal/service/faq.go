package service

import (
	"strings"

	"github.com/fuelinnovation/line-autoreply/internal/model"
	"github.com/fuelinnovation/line-autoreply/internal/util"
)

type faqItem struct {
	keywords []string // normalized
	answer   string
}

// FAQMatcher answers a message with the first configured entry that has any
// keyword contained in it, after normalization of both sides.
type FAQMatcher struct {
	items []faqItem
}

func NewFAQMatcher(entries []model.FAQEntry) *FAQMatcher {
	items := make([]faqItem, 0, len(entries))
	for _, e := range entries {
		if len(e.Keywords) == 0 || e.Answer == "" {
			continue
		}
		item := faqItem{answer: e.Answer}
		for _, k := range e.Keywords {
			if nk := util.Normalize(k); nk != "" {
				item.keywords = append(item.keywords, nk)
			}
		}
		if len(item.keywords) == 0 {
			continue
		}
		items = append(items, item)
	}
	return &FAQMatcher{items: items}
}

func (m *FAQMatcher) Match(message string) (string, bool) {
	if strings.TrimSpace(message) == "" {
		return "", false
	}

	msg := util.Normalize(message)
	for _, item := range m.items {
		for _, k := range item.keywords {
			if strings.Contains(msg, k) {
				return item.answer, true
			}
		}
	}
	return "", false
}

func (m *FAQMatcher) Len() int {
	return len(m.items)
}

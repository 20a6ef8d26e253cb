package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fuelinnovation/line-autoreply/internal/content"
	"github.com/fuelinnovation/line-autoreply/internal/model"
)

func TestFAQMatcher_Match(t *testing.T) {
	m := NewFAQMatcher([]model.FAQEntry{
		{Keywords: []string{"ราคาถูก", "ทำไมถูก"}, Answer: "cheap"},
		{Keywords: []string{"ถูก"}, Answer: "generic"},
		{Keywords: []string{"ถาม-ตอบ"}, Answer: "qa"},
		{Keywords: []string{"DPF / SCR"}, Answer: "dpf"},
	})

	tests := []struct {
		name    string
		message string
		answer  string
		matched bool
	}{
		{name: "contains keyword", message: "ทำไมน้ำมันราคาถูกจัง", answer: "cheap", matched: true},
		{name: "earlier entry wins", message: "ถูกไหม ราคาถูก", answer: "cheap", matched: true},
		{name: "later entry when earlier misses", message: "ถูกมาก", answer: "generic", matched: true},
		{name: "whitespace ignored", message: "ราคา ถูก", answer: "cheap", matched: true},
		{name: "dash variants equal", message: "ถาม–ตอบ", answer: "qa", matched: true},
		{name: "case and spaces ignored", message: "dpf/scr คืออะไร", answer: "dpf", matched: true},
		{name: "no match", message: "สเปคน้ำมัน", matched: false},
		{name: "empty message", message: "", matched: false},
		{name: "whitespace only", message: "   ", matched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, ok := m.Match(tt.message)
			assert.Equal(t, tt.matched, ok)
			assert.Equal(t, tt.answer, answer)
		})
	}
}

func TestNewFAQMatcher_SkipsIncompleteEntries(t *testing.T) {
	m := NewFAQMatcher([]model.FAQEntry{
		{Keywords: nil, Answer: "no keywords"},
		{Keywords: []string{"a"}, Answer: ""},
		{Keywords: []string{"", "  "}, Answer: "blank keywords"},
		{Keywords: []string{"", "ok"}, Answer: "valid"},
	})

	assert.Equal(t, 1, m.Len())

	answer, ok := m.Match("anything ok")
	assert.True(t, ok)
	assert.Equal(t, "valid", answer)

	_, ok = m.Match("nothing here")
	assert.False(t, ok)
}

func TestFAQMatcher_EmbeddedContent(t *testing.T) {
	entries, err := content.LoadFAQ("")
	if err != nil {
		t.Fatalf("load embedded faq: %v", err)
	}
	m := NewFAQMatcher(entries)
	assert.Equal(t, len(entries), m.Len())

	for _, cmd := range []string{CommandAbout, CommandCalculate, CommandSpec, CommandQuote, CommandHelp, CommandSales, "สวัสดีครับ"} {
		_, ok := m.Match(cmd)
		assert.False(t, ok, "menu command %q must not be captured by the FAQ", cmd)
	}

	_, ok := m.Match("ทำไมน้ำมันของเราถึงราคาถูก")
	assert.True(t, ok)
}

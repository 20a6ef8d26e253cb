package content

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fuelinnovation/line-autoreply/internal/model"
)

//go:embed faq.yaml
var defaultFAQ []byte

// LoadFAQ reads the ordered FAQ entries from path, or the bundled set when
// path is empty.
func LoadFAQ(path string) ([]model.FAQEntry, error) {
	data := defaultFAQ
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read faq file: %w", err)
		}
		data = b
	}
	return ParseFAQ(data)
}

func ParseFAQ(data []byte) ([]model.FAQEntry, error) {
	var entries []model.FAQEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse faq: %w", err)
	}
	return entries, nil
}

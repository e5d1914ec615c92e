package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Vocab holds the keyword vocabularies the extractor classifies
// directions with. Banks keep inventing new phrasings, so the lists can
// be overridden from a YAML rules file instead of rebuilding the binary.
type Vocab struct {
	Income  []string `yaml:"income"`
	Outcome []string `yaml:"outcome"`
}

// Default returns the vocabularies observed across the supported banks.
func Default() *Vocab {
	return &Vocab{
		Income:  []string{"收入", "转存", "结息"},
		Outcome: []string{"支出", "支付支取", "转支", "通知存款交易"},
	}
}

// Load reads a vocabulary rules file. Lists present in the file replace
// the defaults; absent lists keep them.
func Load(path string) (*Vocab, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocab file: %w", err)
	}

	var v Vocab
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	base := Default()
	if len(v.Income) == 0 {
		v.Income = base.Income
	}
	if len(v.Outcome) == 0 {
		v.Outcome = base.Outcome
	}
	return &v, nil
}

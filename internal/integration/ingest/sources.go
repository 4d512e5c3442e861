package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rentledger/reconciler/internal/domain/valueobject"
)

// SourceSpec declares one income/expense report source: where its file
// lives, how to parse it, and how the matcher should treat it.
type SourceSpec struct {
	Name                      string   `yaml:"name"`
	File                      string   `yaml:"file"`
	Format                    string   `yaml:"format"` // "csv" or "html"
	PayeeToken                string   `yaml:"payee_token"`
	Properties                []string `yaml:"properties"`
	FlexibleSubCategory       bool     `yaml:"flexible_sub_category"`
	MonthlyCategories         []string `yaml:"monthly_categories"`
	PreferMonthlyCategories   []string `yaml:"prefer_monthly_categories"`
	InfersDistributions       bool     `yaml:"infers_distributions"`
	CapitalExpenseEquivalence bool     `yaml:"capital_expense_equivalence"`
}

// Config converts the spec to the matcher's source configuration.
func (s SourceSpec) Config() valueobject.ReportSourceConfig {
	return valueobject.ReportSourceConfig{
		Name:                      s.Name,
		PayeeToken:                s.PayeeToken,
		Properties:                s.Properties,
		FlexibleSubCategory:       s.FlexibleSubCategory,
		MonthlyCategories:         s.MonthlyCategories,
		PreferMonthlyCategories:   s.PreferMonthlyCategories,
		InfersDistributions:       s.InfersDistributions,
		CapitalExpenseEquivalence: s.CapitalExpenseEquivalence,
	}
}

type sourcesFile struct {
	Sources []SourceSpec `yaml:"sources"`
}

// LoadSources reads the report source declarations. A missing file is fine;
// not every portfolio has manager reports.
func LoadSources(path string) ([]SourceSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sources file %s: %w", path, err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}
	for i, s := range file.Sources {
		if s.Name == "" {
			return nil, fmt.Errorf("sources file %s: source %d has no name", path, i)
		}
	}
	return file.Sources, nil
}

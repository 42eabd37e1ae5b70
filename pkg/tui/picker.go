package tui

import (
	"context"
	"fmt"

	"github.com/goliatone/go-relationfield/pkg/relation"
)

// Picker prompts for relation values using the labels the editor resolved
// and feeds the chosen identifiers back through the editor's update path.
type Picker struct {
	driver PromptDriver
}

// NewPicker constructs a picker. A nil driver falls back to the survey-backed
// default.
func NewPicker(driver PromptDriver) *Picker {
	if driver == nil {
		driver = NewSurveyDriver()
	}
	return &Picker{driver: driver}
}

// Pick prompts with the editor's current option labels and stores the chosen
// identifiers via UpdateValue. It returns the value the editor stored.
func (p *Picker) Pick(ctx context.Context, editor *relation.Editor) (any, error) {
	if editor == nil {
		return nil, fmt.Errorf("tui: nil editor")
	}

	base := editor.Base()
	field := base.Field()
	values := base.Options().Values()
	labels := base.Options().Labels()
	if len(values) == 0 {
		return nil, fmt.Errorf("tui: field %q has no options to pick from", field.Name)
	}

	message := field.Label
	if message == "" {
		message = field.Name
	}

	cfg := SelectConfig{
		Message:  message,
		Options:  labels,
		Help:     field.Description,
		PageSize: 10,
	}

	if field.Multiple {
		indices, err := p.driver.MultiSelect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		chosen := make([]any, 0, len(indices))
		for _, idx := range indices {
			if idx >= 0 && idx < len(values) {
				chosen = append(chosen, values[idx])
			}
		}
		return editor.UpdateValue(chosen), nil
	}

	idx, err := p.driver.Select(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return nil, fmt.Errorf("tui: selection out of range for field %q", field.Name)
	}
	return editor.UpdateValue(values[idx]), nil
}

package cli

import (
	"github.com/alexanderramin/nuclea/internal/domain"
	"github.com/spf13/pflag"
)

// modeValue is a pflag.Value that accepts any analysis mode alias and
// stores the canonical tier.
type modeValue domain.AnalysisMode

var _ pflag.Value = (*modeValue)(nil)

func newModeValue(def domain.AnalysisMode, p *domain.AnalysisMode) *modeValue {
	*p = def
	return (*modeValue)(p)
}

func (m *modeValue) String() string { return string(*m) }

func (m *modeValue) Set(s string) error {
	mode, err := domain.ParseAnalysisMode(s)
	if err != nil {
		return err
	}
	*m = modeValue(mode)
	return nil
}

func (m *modeValue) Type() string { return "mode" }

// workTypeValue is the pflag.Value counterpart for work types.
type workTypeValue domain.WorkType

var _ pflag.Value = (*workTypeValue)(nil)

func newWorkTypeValue(def domain.WorkType, p *domain.WorkType) *workTypeValue {
	*p = def
	return (*workTypeValue)(p)
}

func (w *workTypeValue) String() string { return string(*w) }

func (w *workTypeValue) Set(s string) error {
	t, err := domain.ParseWorkType(s)
	if err != nil {
		return err
	}
	*w = workTypeValue(t)
	return nil
}

func (w *workTypeValue) Type() string { return "type" }

package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planify/internal/domain"
	"github.com/spf13/pflag"
)

// enumFlag is a pflag.Value restricted to the options of a form select.
type enumFlag[T ~string] struct {
	value   *T
	options []domain.Option
	kind    string
}

var _ pflag.Value = (*enumFlag[domain.Pace])(nil)

func newEnumFlag[T ~string](value *T, options []domain.Option, kind string) *enumFlag[T] {
	return &enumFlag[T]{value: value, options: options, kind: kind}
}

func (f *enumFlag[T]) String() string {
	if f.value == nil {
		return ""
	}
	return string(*f.value)
}

func (f *enumFlag[T]) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, o := range f.options {
		if o.Value == s {
			*f.value = T(s)
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(f.values(), ", "))
}

func (f *enumFlag[T]) Type() string {
	return f.kind
}

func (f *enumFlag[T]) values() []string {
	out := make([]string, len(f.options))
	for i, o := range f.options {
		out[i] = o.Value
	}
	return out
}

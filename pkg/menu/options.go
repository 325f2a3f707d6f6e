package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Options describes a menu declaratively, e.g. when layouts come from
// configuration rather than code.
type Options struct {
	Kind  Kind   `validate:"menukind"`
	Title string `validate:"max=128"`
	// Size is a slot or row count for Chest and ignored otherwise.
	Size int `validate:"gte=0,lte=54"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("menukind", func(fl validator.FieldLevel) bool {
		return Kind(fl.Field().Int()).Valid()
	})
	return v
}

// NewFromOptions validates o and creates the menu it describes. An empty title
// falls back to the kind's default.
func NewFromOptions(o Options) (*Menu, error) {
	if err := validate.Struct(o); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOptions, formatValidationError(err))
	}
	if o.Title == "" {
		o.Title = o.Kind.DefaultTitle()
	}
	if o.Size == 0 {
		o.Size = o.Kind.DefaultSize()
	}
	return New(o.Kind, o.Title, o.Size)
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		if e.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", field, e.Tag(), e.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed %s", field, e.Tag()))
		}
	}
	return strings.Join(parts, ", ")
}

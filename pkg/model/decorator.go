package model

// Decorator enriches or adjusts a form model after it has been loaded from a
// descriptor source.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// Apply runs decorators in order, stopping at the first error.
func Apply(form *FormModel, decorators ...Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}

// WithoutDefaults clears every descriptor default so the form starts from a
// fully empty record.
func WithoutDefaults() Decorator {
	return DecoratorFunc(func(form *FormModel) error {
		for i := range form.Fields {
			form.Fields[i].Default = nil
		}
		return nil
	})
}

// WithLabels fills missing labels using labeler (DefaultLabeler when nil).
func WithLabels(labeler func(string) string) Decorator {
	if labeler == nil {
		labeler = DefaultLabeler
	}
	return DecoratorFunc(func(form *FormModel) error {
		for i := range form.Fields {
			if form.Fields[i].Label == "" {
				form.Fields[i].Label = labeler(form.Fields[i].Name)
			}
		}
		return nil
	})
}

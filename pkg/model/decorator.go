package model

// Decorator enriches a form input after it has been derived from another
// schema source (for example an OpenAPI operation) and before a widget
// consumes it.
type Decorator interface {
	Decorate(*FormInput) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormInput) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(input *FormInput) error {
	return fn(input)
}

package quoteform

import (
	"fmt"
	"strings"
)

// FieldKind is the input control type of a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindNumber   FieldKind = "number"
	KindRadio    FieldKind = "radio"
	KindCheckbox FieldKind = "checkbox"
)

func (k FieldKind) valid() bool {
	switch k {
	case KindText, KindNumber, KindRadio, KindCheckbox:
		return true
	}
	return false
}

// Format selects an extra value rule and keystroke normaliser for text fields.
type Format string

const (
	FormatNone       Format = ""
	FormatPostalCode Format = "postal_code"
	FormatEmail      Format = "email"
	FormatPhone      Format = "phone"
)

func (f Format) valid() bool {
	switch f {
	case FormatNone, FormatPostalCode, FormatEmail, FormatPhone:
		return true
	}
	return false
}

// Option is one choice of a radio group.
type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// FieldDescriptor describes one input of a step.
type FieldDescriptor struct {
	ID       string    `yaml:"id" json:"id"`
	Label    string    `yaml:"label" json:"label"`
	Kind     FieldKind `yaml:"kind" json:"kind"`
	Required bool      `yaml:"required" json:"required"`
	Format   Format    `yaml:"format,omitempty" json:"format,omitempty"`
	Options  []Option  `yaml:"options,omitempty" json:"options,omitempty"`
}

// HasOption reports whether value is one of the field's options.
func (f FieldDescriptor) HasOption(value string) bool {
	for _, opt := range f.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

// Step is one panel of the form.
type Step struct {
	Title  string            `yaml:"title" json:"title"`
	Fields []FieldDescriptor `yaml:"fields" json:"fields"`
}

// Confirmation texts shown once the form is submitted.
type ConfirmationText struct {
	Heading string `yaml:"heading" json:"heading"`
	// Received may contain {postal_code}, replaced with the captured value.
	Received string `yaml:"received" json:"received"`
	FollowUp string `yaml:"follow_up" json:"follow_up"`
}

// ReceivedFor fills the postal code into the Received line.
func (c ConfirmationText) ReceivedFor(postalCode string) string {
	return strings.ReplaceAll(c.Received, "{postal_code}", postalCode)
}

type fieldRef struct {
	step  int
	field FieldDescriptor
}

// Definition is the immutable step layout of a form. Build it with NewDefinition.
type Definition struct {
	name         string
	steps        []Step
	confirmation ConfirmationText
	fields       map[string]fieldRef
	postalField  string
}

// NewDefinition validates steps and indexes every field by id.
func NewDefinition(name string, steps []Step, confirmation ConfirmationText) (*Definition, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: at least one step is required", ErrInvalidDefinition)
	}
	def := &Definition{
		name:         strings.TrimSpace(name),
		steps:        make([]Step, len(steps)),
		confirmation: confirmation,
		fields:       make(map[string]fieldRef),
	}
	for i, step := range steps {
		number := i + 1
		copied := Step{Title: step.Title, Fields: make([]FieldDescriptor, len(step.Fields))}
		for j, field := range step.Fields {
			field.ID = strings.TrimSpace(field.ID)
			if field.ID == "" {
				return nil, fmt.Errorf("%w: step %d field %d has no id", ErrInvalidDefinition, number, j+1)
			}
			if _, dup := def.fields[field.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate field id %q", ErrInvalidDefinition, field.ID)
			}
			if !field.Kind.valid() {
				return nil, fmt.Errorf("%w: field %q has unknown kind %q", ErrInvalidDefinition, field.ID, field.Kind)
			}
			if !field.Format.valid() {
				return nil, fmt.Errorf("%w: field %q has unknown format %q", ErrInvalidDefinition, field.ID, field.Format)
			}
			if field.Format != FormatNone && field.Kind != KindText && field.Kind != KindNumber {
				return nil, fmt.Errorf("%w: field %q: format requires a text input", ErrInvalidDefinition, field.ID)
			}
			if field.Kind == KindRadio && len(field.Options) == 0 {
				return nil, fmt.Errorf("%w: radio field %q has no options", ErrInvalidDefinition, field.ID)
			}
			field.Options = append([]Option(nil), field.Options...)
			copied.Fields[j] = field
			def.fields[field.ID] = fieldRef{step: number, field: field}
			if field.Format == FormatPostalCode && def.postalField == "" {
				def.postalField = field.ID
			}
		}
		def.steps[i] = copied
	}
	if def.confirmation.Heading == "" {
		def.confirmation.Heading = "Thank You!"
	}
	if def.confirmation.Received == "" {
		def.confirmation.Received = "We've received your request for zip code: {postal_code}"
	}
	return def, nil
}

// Name identifies the form.
func (d *Definition) Name() string { return d.name }

// TotalSteps is the fixed number of panels.
func (d *Definition) TotalSteps() int { return len(d.steps) }

// Step returns the 1-based step. ok is false when out of range.
func (d *Definition) Step(number int) (Step, bool) {
	if number < 1 || number > len(d.steps) {
		return Step{}, false
	}
	return d.steps[number-1], true
}

// Steps returns a copy of all steps in order.
func (d *Definition) Steps() []Step {
	return append([]Step(nil), d.steps...)
}

// Field looks up a descriptor and the step that owns it.
func (d *Definition) Field(id string) (FieldDescriptor, int, bool) {
	ref, ok := d.fields[id]
	return ref.field, ref.step, ok
}

// FieldByFormat returns the first field, in step order, carrying format.
func (d *Definition) FieldByFormat(format Format) (FieldDescriptor, bool) {
	for _, step := range d.steps {
		for _, f := range step.Fields {
			if f.Format == format {
				return f, true
			}
		}
	}
	return FieldDescriptor{}, false
}

// PostalCodeField is the id of the field echoed on confirmation, if any.
func (d *Definition) PostalCodeField() string { return d.postalField }

// Confirmation returns the confirmation texts.
func (d *Definition) Confirmation() ConfirmationText { return d.confirmation }

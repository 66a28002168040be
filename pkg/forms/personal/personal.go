// Package personal exposes the bundled personal-details form: names, contact
// details, gender, employment (with employment status derived from the yes/no
// answer) and terms acceptance.
package personal

import (
	"fmt"

	"github.com/goliatone/go-formengine/pkg/descriptor"
	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/model"
)

// FormID is the descriptor id of the bundled form.
const FormID = "personal"

const (
	FieldFirstName          = "firstName"
	FieldLastName           = "lastName"
	FieldEmail              = "email"
	FieldPhone              = "phone"
	FieldAddress            = "address"
	FieldGender             = "gender"
	FieldIsEmployed         = "isEmployed"
	FieldEmploymentStatus   = "employmentStatus"
	FieldTermsAndConditions = "termsAndConditions"
)

const (
	GenderFemale = "female"
	GenderMale   = "male"
	GenderOther  = "other"

	EmployedYes = "yes"
	EmployedNo  = "no"

	StatusEmployed   = "employed"
	StatusUnemployed = "unemployed"
)

// Form loads the bundled descriptor and applies decorators.
func Form(decorators ...model.Decorator) (model.FormModel, error) {
	store, err := descriptor.Embedded()
	if err != nil {
		return model.FormModel{}, fmt.Errorf("personal: load descriptors: %w", err)
	}
	return store.Build(FormID, decorators...)
}

// New returns an engine over the bundled form with descriptor defaults.
// Gender starts as "male", so validating an untouched form reports 8 errors,
// not 9. Use NewEmpty for a form where every field starts unset.
func New(opts ...engine.Option) (*engine.Engine, error) {
	form, err := Form()
	if err != nil {
		return nil, err
	}
	return engine.New(form, opts...)
}

// NewEmpty returns an engine whose fields all start unset; validating it
// untouched reports one error for each of the 9 fields.
func NewEmpty(opts ...engine.Option) (*engine.Engine, error) {
	form, err := Form(model.WithoutDefaults())
	if err != nil {
		return nil, err
	}
	return engine.New(form, opts...)
}

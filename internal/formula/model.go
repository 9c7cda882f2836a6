// Package formula defines the catalog document schema and the repository
// that stores it in MongoDB.
package formula

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func init() {
	_ = validate.RegisterValidation("formula_id", validFormulaID)
}

var formulaIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

func validFormulaID(fl validator.FieldLevel) bool {
	return formulaIDPattern.MatchString(fl.Field().String())
}

// Variable describes one symbol appearing in an equation.
type Variable struct {
	Name        string `bson:"name" json:"name" validate:"required"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Unit        string `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Formula is the document stored in the formulas collection.
//
// FormulaID is the stable external identifier (e.g. "kinetic_energy");
// the Mongo _id stays internal. Equation holds an evaluable expression
// string; its interpretation is up to consumers of the catalog.
type Formula struct {
	FormulaID       string     `bson:"formula_id" json:"formula_id" validate:"required,formula_id"`
	Name            string     `bson:"name" json:"name" validate:"required"`
	Description     string     `bson:"description" json:"description" validate:"required"`
	Equation        string     `bson:"equation" json:"equation" validate:"required"`
	Variables       []string   `bson:"variables" json:"variables" validate:"required,min=1,dive,required"`
	VariableDetails []Variable `bson:"variable_details,omitempty" json:"variable_details,omitempty" validate:"omitempty,dive"`
	Category        string     `bson:"category" json:"category"`
	Tags            []string   `bson:"tags" json:"tags"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updated_at"`
}

// Normalize fills defaults prior to validation and insertion.
func (f *Formula) Normalize() {
	if f.Category == "" {
		f.Category = "general"
	}
	if f.Tags == nil {
		f.Tags = []string{}
	}
	now := time.Now().UTC()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = now
	}
	if f.UpdatedAt.IsZero() {
		f.UpdatedAt = now
	}
}

// Validate checks required fields and the formula_id format.
func (f *Formula) Validate() error {
	return validate.Struct(f)
}

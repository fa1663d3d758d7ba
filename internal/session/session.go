// Package session holds the form data a wizard run accumulates: the vehicle
// being processed, its material composition, and the generated pathway.
package session

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// VehicleRecord identifies a vehicle by model year, make and model.
type VehicleRecord struct {
	Year  string `json:"year" validate:"required"`
	Make  string `json:"make" validate:"required"`
	Model string `json:"model" validate:"required"`
}

// Validate reports whether every field is filled in.
func (v VehicleRecord) Validate() error {
	return validate.Struct(v)
}

// Complete is true when year, make and model are all present.
func (v VehicleRecord) Complete() bool {
	return v.Validate() == nil
}

func (v VehicleRecord) String() string {
	return fmt.Sprintf("%s %s %s", v.Year, v.Make, v.Model)
}

// UnmarshalJSON accepts the year as either a JSON string or a number. The
// decode endpoint proxies NHTSA data and is not consistent about which one
// it sends.
func (v *VehicleRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Year  any    `json:"year"`
		Make  string `json:"make"`
		Model string `json:"model"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v.Make = raw.Make
	v.Model = raw.Model
	switch year := raw.Year.(type) {
	case nil:
		v.Year = ""
	case string:
		v.Year = year
	case float64:
		v.Year = strconv.FormatInt(int64(year), 10)
	default:
		return fmt.Errorf("vehicle year: unsupported type %T", raw.Year)
	}
	return nil
}

// FormData is the working record for one vehicle walkthrough. It only stores
// what the user and the backend put into it; all sequencing decisions live in
// the wizard package.
type FormData struct {
	VIN       string
	Vehicle   VehicleRecord
	Materials MaterialComposition
	Pathway   *Pathway
}

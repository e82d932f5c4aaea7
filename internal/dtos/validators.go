package dtos

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kuldeep27396/prime-backend/internal/utils"
)

// RegisterCustomValidators installs the binding rules used by the request
// structs in this package. Called once at startup.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		return utils.ValidWeekday(fl.Field().String())
	})
}

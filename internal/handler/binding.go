package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/rxhub/member-portal-api/internal/model"
)

// memberrole validates role names on bound request bodies before they
// reach the service layer.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("memberrole", func(fl validator.FieldLevel) bool {
			return model.ValidRole(fl.Field().String())
		})
	}
}

package dto

import (
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/pkg/validator"
)

// Validate aplica los tags `validate` y convierte el primer fallo en *domain.ValidationError.
func Validate(in interface{}) error {
	errs := validator.ValidateStruct(in)
	if len(errs) == 0 {
		return nil
	}
	fe := errs[0]
	reason := fe.Tag
	if fe.Param != "" {
		reason = fmt.Sprintf("%s=%s", fe.Tag, fe.Param)
	}
	return domain.Invalid(fe.Field, reason)
}

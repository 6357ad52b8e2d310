package serverutils

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ValidateRequest checks a DTO against its `validate` struct tags. Failures
// come back as 400 AppErrors naming the offending field so the error
// handler never downgrades them to a 500.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			return NewAppError(CodeValidation, http.StatusBadRequest,
				fmt.Sprintf("field %s failed on the %s rule", e.Field(), e.Tag()))
		}
		return NewAppError(CodeValidation, http.StatusBadRequest, err.Error())
	}
	return nil
}

// ParseUUID parses an id taken from a path or query parameter. A malformed
// id surfaces as 400 instead of flowing downstream as the zero UUID.
func ParseUUID(value, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, NewAppError(CodeBadRequest, http.StatusBadRequest,
			fmt.Sprintf("invalid %s: expected a UUID", name))
	}
	return id, nil
}

package controller

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type errorResponse struct {
	Reason string `json:"reason"`
}

func parseJobId(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("jobId"), 10, 64)
}

func getAllErrorMessages(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Input data is not formed correctly"
	}

	var builder strings.Builder
	for _, fe := range validationErrors {
		builder.WriteString(fmt.Sprintf("'%s': %s\n", fe.Field(), getMessage(fe)))
	}

	return builder.String()
}

func getMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "lte", "max":
		return "should be less or equal than " + fe.Param()
	case "gte", "min":
		return "should be greater or equal than " + fe.Param()
	case "gt":
		return "should be greater than " + fe.Param()
	case "oneof":
		return "should have value in: " + fe.Param()
	}

	return "incorrect value passed"
}

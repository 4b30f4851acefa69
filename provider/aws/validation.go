package aws

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"gopkg.in/go-playground/validator.v9"
)

var check = validator.New()

func mustRegister(err error) {
	if err != nil {
		panic(fmt.Sprintf("Register custom validator: %v", err))
	}
}

func init() {
	mustRegister(check.RegisterValidation("arn", func(fl validator.FieldLevel) bool {
		str := fl.Field().String()
		_, err := arn.Parse(str)
		return err == nil
	}))
}

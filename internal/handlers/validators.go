package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/mlm_backoffice/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validatorsOnce sync.Once

// registerValidators teaches gin's validator about decimal amounts. Decimals are validated
// through their string form, so `required` only fails when the field is absent.
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		_ = v.RegisterValidation("decimal_gt0", func(fl validator.FieldLevel) bool {
			d, ok := parseDecimalField(fl)
			return ok && d.IsPositive()
		})
		_ = v.RegisterValidation("decimal_ne0", func(fl validator.FieldLevel) bool {
			d, ok := parseDecimalField(fl)
			return ok && !d.IsZero()
		})
		// money: at most domain.MoneyScale decimal places
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			d, ok := parseDecimalField(fl)
			return ok && domain.HasMoneyScale(d)
		})
	})
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func parseDecimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

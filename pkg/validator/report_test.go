package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/modelkit/pkg/validator"
)

func TestReport(t *testing.T) {
	t.Parallel()

	var report validator.Report
	assert.True(t, report.IsEmpty())
	assert.Equal(t, "validation failed", report.Error())

	report.Add(validator.Issue{Field: "id", Kind: validator.MissingField, Message: "field is required"})
	report.Add(validator.Issue{Field: "name", Kind: validator.ConstraintViolation, Message: "length must be at least 2"})

	assert.False(t, report.IsEmpty())
	assert.True(t, report.Has("id"))
	assert.False(t, report.Has("age"))
	assert.Equal(t, "validation failed: id: field is required; name: length must be at least 2", report.Error())

	t.Run("unwraps from wrapped errors", func(t *testing.T) {
		err := fmt.Errorf("create user: %w", report)

		assert.True(t, validator.IsReport(err))
		assert.True(t, errors.Is(err, validator.ErrValidationFailed))
		assert.Equal(t, report, validator.ExtractReport(err))
	})

	t.Run("other errors", func(t *testing.T) {
		assert.False(t, validator.IsReport(errors.New("boom")))
		assert.Nil(t, validator.ExtractReport(errors.New("boom")))
		assert.Nil(t, validator.ExtractReport(nil))
	})
}

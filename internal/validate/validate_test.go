package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "showcase/internal/errors"
)

type signup struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(signup{Username: "alice", Email: "a@x.com", Password: "secret1"}))
}

func TestStruct_ReportsEveryFieldByJSONName(t *testing.T) {
	err := Struct(signup{Username: "al", Email: "nope", Password: ""})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 3)

	byField := map[string]string{}
	for _, f := range verr.Fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "username must be at least 3 characters", byField["username"])
	assert.Equal(t, "email must be a valid email address", byField["email"])
	assert.Equal(t, "password is required", byField["password"])
}

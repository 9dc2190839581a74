package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type account struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=7,nopassword"`
	Age      int    `json:"age" validate:"gte=0"`
}

func TestStruct_NoPasswordRule(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"plain", "red12345", false},
		{"lowercase word", "mypassword1", true},
		{"mixed case word", "MyPaSsWoRd!", true},
		{"too short", "abc", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(account{Email: "a@b.co", Password: tt.password})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestToDetails_UsesJSONNames(t *testing.T) {
	err := Struct(account{Email: "nope", Password: "password1", Age: -1})
	require.Error(t, err)

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must not contain \"password\"", details["password"])
	assert.Equal(t, "must be greater than or equal to 0", details["age"])
}

func TestToDetails_JSONErrors(t *testing.T) {
	var v struct {
		Age int `json:"age"`
	}
	err := json.Unmarshal([]byte(`{"age":"old"}`), &v)
	assert.Equal(t, map[string]string{"age": "must be of type int"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("boom")))
	assert.Nil(t, ToDetails(nil))
}

func TestMessage_Min(t *testing.T) {
	err := Struct(account{Email: "a@b.co", Password: "short"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "must be at least 7 characters long", Message(verrs[0]))
}

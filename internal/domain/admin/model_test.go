package admin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marineaxis/marine-axis-admin/internal/domain/validation"
)

func TestCreateInput_Validate(t *testing.T) {
	valid := CreateInput{
		Email:    "new@marine-axis.com",
		Name:     "New Admin",
		Password: "seaworthy1",
		Role:     "admin",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateInput)
		field  string
	}{
		{"missing email", func(in *CreateInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *CreateInput) { in.Email = "not-an-email" }, "email"},
		{"missing name", func(in *CreateInput) { in.Name = "" }, "name"},
		{"short password", func(in *CreateInput) { in.Password = "ab1" }, "password"},
		{"digitless password", func(in *CreateInput) { in.Password = "aaaaaaaa" }, "password"},
		{"unknown role", func(in *CreateInput) { in.Role = "root" }, "role"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)

			err := in.Validate()
			require.Error(t, err)

			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			_, found := errs.ByField(tt.field)
			assert.True(t, found, "expected an error on field %s, got %v", tt.field, errs)
		})
	}
}

func TestUpdateInput_Validate(t *testing.T) {
	assert.NoError(t, UpdateInput{}.Validate(), "everything optional")
	assert.NoError(t, UpdateInput{Role: "superadmin"}.Validate())
	assert.Error(t, UpdateInput{Role: "super_admin"}.Validate(), "legacy spelling is not accepted in forms")
}

func TestSelfDeleteGuard(t *testing.T) {
	guard := SelfDeleteGuard("ops@marine-axis.com")

	assert.Error(t, guard(Admin{ID: "1", Email: "ops@marine-axis.com"}))
	assert.Error(t, guard(Admin{ID: "1", Email: "OPS@Marine-Axis.com"}), "email comparison is case-insensitive")
	assert.NoError(t, guard(Admin{ID: "2", Email: "other@marine-axis.com"}))
}

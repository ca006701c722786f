package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "teacher", want: RoleTeacher},
		{in: "Student", want: RoleStudent},
		{in: "  STUDENT ", want: RoleStudent},
		{in: "principal", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleTeacher.Valid())
	assert.True(t, RoleStudent.Valid())
	assert.False(t, Role(7).Valid())
	assert.Equal(t, "role(7)", Role(7).String())
}

func TestUserJSONUsesRoleNames(t *testing.T) {
	data, err := json.Marshal(User{Name: "Alice", Role: RoleStudent})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Alice","role":"student"}`, string(data))

	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Bob","role":"teacher"}`), &u))
	assert.Equal(t, User{Name: "Bob", Role: RoleTeacher}, u)

	_, err = json.Marshal(User{Name: "X", Role: Role(9)})
	assert.Error(t, err)
}

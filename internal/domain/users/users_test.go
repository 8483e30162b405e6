package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_DisplayName(t *testing.T) {
	cases := map[string]struct {
		u    User
		want string
	}{
		"full":     {User{FirstName: "Priya", LastName: "Sharma", Username: "priya"}, "Priya Sharma"},
		"first":    {User{FirstName: "Priya"}, "Priya"},
		"last":     {User{LastName: "Sharma"}, "Sharma"},
		"username": {User{Username: "priya"}, "@priya"},
		"empty":    {User{}, ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.u.DisplayName())
		})
	}
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleClient}.IsAdmin())
}

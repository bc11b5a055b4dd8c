package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleSuperadmin.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("owner").Valid())
}

func TestRoleIn(t *testing.T) {
	assert.True(t, RoleAdmin.In(RoleAdmin, RoleSuperadmin))
	assert.True(t, RoleSuperadmin.In(RoleSuperadmin))
	assert.False(t, RoleAdmin.In(RoleSuperadmin))
	assert.False(t, Role("").In(RoleAdmin, RoleSuperadmin))
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role        Role
		manageStore bool
		manageStaff bool
	}{
		{RoleAdmin, true, false},
		{RoleSuperadmin, true, true},
		{Role(""), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.manageStore, tt.role.CanManageStore())
			assert.Equal(t, tt.manageStaff, tt.role.CanManageStaff())
		})
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, status := range []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("returned").Valid())
}

func TestTagKindValid(t *testing.T) {
	assert.True(t, TagKindCategory.Valid())
	assert.True(t, TagKindCollection.Valid())
	assert.False(t, TagKind("brand").Valid())
}

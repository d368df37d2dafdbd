package auth

import (
	"testing"

	"ricemill-backend/internal/models"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name      string
		principal Principal
		code      string
		want      bool
	}{
		{
			name:      "admin holds every permission",
			principal: Principal{Role: models.RoleAdmin},
			code:      models.PermMillingManage,
			want:      true,
		},
		{
			name:      "staff with explicit permission",
			principal: Principal{Role: models.RoleStaff, Permissions: []string{models.PermStockManage}},
			code:      models.PermStockManage,
			want:      true,
		},
		{
			name:      "staff without permission",
			principal: Principal{Role: models.RoleStaff, Permissions: []string{models.PermStockManage}},
			code:      models.PermMillingManage,
			want:      false,
		},
		{
			name:      "staff with empty permission set",
			principal: Principal{Role: models.RoleStaff},
			code:      models.PermStockManage,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasPermission(tt.principal, tt.code); got != tt.want {
				t.Errorf("HasPermission() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasAnyPermission(t *testing.T) {
	staff := Principal{Role: models.RoleStaff, Permissions: []string{models.PermMasterManage}}

	if !HasAnyPermission(staff, models.PermStockManage, models.PermMasterManage) {
		t.Error("expected true when one of the codes is held")
	}
	if HasAnyPermission(staff, models.PermStockManage, models.PermMillingManage) {
		t.Error("expected false when none of the codes is held")
	}
	if HasAnyPermission(staff) {
		t.Error("expected false for an empty code list")
	}
	if !HasAnyPermission(Principal{Role: models.RoleAdmin}, models.PermStockManage) {
		t.Error("expected true for admin")
	}
}

package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleStaff UserRole = "STAFF"
)

// Permission codes. ADMIN implicitly holds all of them.
const (
	PermStockManage   = "STOCK_MANAGE"
	PermMillingManage = "MILLING_MANAGE"
	PermMasterManage  = "MASTER_MANAGE"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	// Comma-separated permission codes, e.g. "STOCK_MANAGE,MILLING_MANAGE".
	Permissions string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PermissionList splits the stored permission string into codes.
func (u *User) PermissionList() []string {
	if strings.TrimSpace(u.Permissions) == "" {
		return nil
	}
	parts := strings.Split(u.Permissions, ",")
	codes := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			codes = append(codes, p)
		}
	}
	return codes
}

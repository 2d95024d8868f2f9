package models

import "time"

// BaseModel 所有模型共享的基础字段
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 角色常量，登录与鉴权使用统一的字符串字面量
const (
	RoleSuperAdmin    = "superAdmin"
	RoleBuildingAdmin = "buildingAdmin"
	RoleStaff         = "staff"
	RoleResident      = "resident"
)

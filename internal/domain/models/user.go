package models

import (
	"hms-http-service/utils"

	"gorm.io/gorm"
)

// User represents the generic admin collection (super admins and building admins)
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(50);not null" json:"name"`
	Surname  string `gorm:"type:varchar(50)" json:"surname"`
	Email    string `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Phone    string `gorm:"type:varchar(20)" json:"phone"`
	Role     string `gorm:"type:varchar(20);default:'buildingAdmin'" json:"role"` // Role: superAdmin, buildingAdmin

	// 关联关系
	Buildings []Building `gorm:"foreignKey:CreatedBy" json:"buildings,omitempty"` // 该管理员创建的楼宇
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

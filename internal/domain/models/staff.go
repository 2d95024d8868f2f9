package models

import (
	"hms-http-service/utils"

	"gorm.io/gorm"
)

// Staff 表示物业员工
type Staff struct {
	BaseModel
	Name         string `gorm:"type:varchar(50);not null" json:"name"`
	Surname      string `gorm:"type:varchar(50);not null" json:"surname"`
	Email        string `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password     string `gorm:"type:varchar(100);not null" json:"-"` // Password not exposed in JSON
	Phone        string `gorm:"type:varchar(20);not null" json:"phone"`
	BuildingID   uint   `gorm:"not null;index" json:"building_id"`
	RegisteredBy uint   `gorm:"not null" json:"registered_by"`
	Role         string `gorm:"type:varchar(20);default:'staff'" json:"role"`

	// 关联关系
	Building         *Building            `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	AssignedRequests []MaintenanceRequest `gorm:"foreignKey:AssignedStaffID" json:"assigned_requests,omitempty"` // 分配给该员工的维修请求
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if s.Password != "" && len(s.Password) < 60 {
		hashedPassword, err := utils.HashPassword(s.Password)
		if err != nil {
			return err
		}
		s.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (s *Staff) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if s.Password != "" && len(s.Password) < 60 {
		hashedPassword, err := utils.HashPassword(s.Password)
		if err != nil {
			return err
		}
		s.Password = hashedPassword
	}
	return nil
}

package models

import (
	"hms-http-service/utils"

	"gorm.io/gorm"
)

// Resident represents a housing society resident
type Resident struct {
	BaseModel
	FullName        string `gorm:"type:varchar(100);not null" json:"fullName"`
	Email           string `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password        string `gorm:"type:varchar(100)" json:"-"` // 激活前为空，激活时写入哈希
	ResidentCode    string `gorm:"type:varchar(10);unique;not null" json:"residentCode"` // 5位激活码，用于自助注册
	ApartmentNumber string `gorm:"type:varchar(20);not null" json:"apartmentNumber"`
	Floor           int    `gorm:"not null" json:"floor"`
	Phone           string `gorm:"type:varchar(20);not null" json:"phone"`
	BuildingID      uint   `gorm:"not null;index" json:"building_id"`
	ApartmentID     *uint  `json:"apartment_id,omitempty"` // 可选的公寓回引
	RegisteredBy    uint   `gorm:"not null" json:"registered_by"`
	Role            string `gorm:"type:varchar(20);default:'resident'" json:"role"`

	// 关联关系
	Building    *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	ReadNotices []Notice  `gorm:"many2many:resident_read_notices;" json:"read_notices,omitempty"` // 已读通知列表
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (r *Resident) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if r.Password != "" && len(r.Password) < 60 {
		hashedPassword, err := utils.HashPassword(r.Password)
		if err != nil {
			return err
		}
		r.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (r *Resident) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if r.Password != "" && len(r.Password) < 60 {
		hashedPassword, err := utils.HashPassword(r.Password)
		if err != nil {
			return err
		}
		r.Password = hashedPassword
	}
	return nil
}

package models

// 公寓状态常量
const (
	ApartmentStatusVacant   = "vacant"
	ApartmentStatusOccupied = "occupied"
)

// Apartment 表示公寓信息，内嵌住户快照字段
// 不变量：status为occupied当且仅当快照字段非空；分配/移除住户在同一事务内同时
// 更新Resident表和快照，避免两次写入之间出现不一致
type Apartment struct {
	BaseModel
	Number     string `gorm:"type:varchar(20);not null;uniqueIndex:idx_apartment_number_building" json:"number"` // 公寓编号，楼宇内唯一
	Floor      int    `gorm:"not null" json:"floor"`
	Status     string `gorm:"type:varchar(20);not null;default:'vacant'" json:"status"`                // 状态：vacant, occupied
	BuildingID uint   `gorm:"not null;uniqueIndex:idx_apartment_number_building" json:"building_id"` // 所属楼宇ID

	// 内嵌住户快照（非规范化副本，Resident表为事实来源）
	ResidentName  string `gorm:"type:varchar(100)" json:"-"`
	ResidentEmail string `gorm:"type:varchar(100)" json:"-"`
	ResidentPhone string `gorm:"type:varchar(20)" json:"-"`

	// 关联关系
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

// ResidentSnapshot 公寓内嵌的住户快照投影
type ResidentSnapshot struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// Snapshot 返回内嵌住户快照，公寓空置时返回nil
func (a *Apartment) Snapshot() *ResidentSnapshot {
	if a.ResidentName == "" && a.ResidentEmail == "" && a.ResidentPhone == "" {
		return nil
	}
	return &ResidentSnapshot{
		Name:        a.ResidentName,
		Email:       a.ResidentEmail,
		PhoneNumber: a.ResidentPhone,
	}
}

// SetSnapshot 写入内嵌住户快照并将状态置为occupied
func (a *Apartment) SetSnapshot(name, email, phone string) {
	a.ResidentName = name
	a.ResidentEmail = email
	a.ResidentPhone = phone
	a.Status = ApartmentStatusOccupied
}

// ClearSnapshot 清空内嵌住户快照并将状态置为vacant
func (a *Apartment) ClearSnapshot() {
	a.ResidentName = ""
	a.ResidentEmail = ""
	a.ResidentPhone = ""
	a.Status = ApartmentStatusVacant
}

package models

// Building 表示楼宇信息
type Building struct {
	BaseModel
	Name            string `gorm:"type:varchar(100);not null" json:"name"`    // 楼宇名称，如"阳光公寓A座"
	Address         string `gorm:"type:varchar(200);not null" json:"address"` // 楼宇地址
	TotalFloors     int    `gorm:"not null" json:"total_floors"`              // 总楼层数，至少为1
	TotalApartments int    `gorm:"not null" json:"total_apartments"`          // 总公寓数，至少为1
	CreatedBy       uint   `gorm:"not null;index" json:"created_by"`          // 创建该楼宇的管理员ID

	// 关联关系
	Apartments []Apartment `gorm:"foreignKey:BuildingID" json:"apartments,omitempty"` // 楼宇下的公寓（一对多）
	Residents  []Resident  `gorm:"foreignKey:BuildingID" json:"residents,omitempty"`  // 楼宇下的住户（一对多）
	Notices    []Notice    `gorm:"foreignKey:BuildingID" json:"notices,omitempty"`    // 楼宇下的通知（一对多）
}

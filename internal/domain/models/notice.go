package models

// Notice 表示管理员发布的楼宇通知
// 已读状态记录在住户侧（resident_read_notices连接表），通知本身不保存已读列表
type Notice struct {
	BaseModel
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	CreatedBy   uint   `gorm:"not null" json:"created_by"`
	BuildingID  uint   `gorm:"not null;index" json:"building_id"`

	// 关联关系
	Creator  *User     `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

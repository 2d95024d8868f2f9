package models

// 维修请求状态常量，规范值统一使用下划线形式
const (
	RequestStatusPending    = "pending"
	RequestStatusInProgress = "in_progress"
	RequestStatusResolved   = "resolved"
)

// NormalizeRequestStatus 将历史上的"in progress"空格写法归一为规范值，
// 返回规范状态和是否为合法状态
func NormalizeRequestStatus(status string) (string, bool) {
	switch status {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusResolved:
		return status, true
	case "in progress":
		return RequestStatusInProgress, true
	default:
		return status, false
	}
}

// MaintenanceRequest 表示住户提交的维修请求
type MaintenanceRequest struct {
	BaseModel
	Title           string `gorm:"type:varchar(200);not null" json:"title"`
	Description     string `gorm:"type:text;not null" json:"description"`
	Status          string `gorm:"type:varchar(20);not null;default:'pending'" json:"status"` // 状态：pending, in_progress, resolved
	ResidentID      uint   `gorm:"not null;index" json:"resident_id"`
	ApartmentNumber string `gorm:"type:varchar(20);not null" json:"apartment_number"` // 创建时从住户记录冗余，后续不再重算
	BuildingID      uint   `gorm:"not null;index" json:"building_id"`
	AssignedStaffID *uint  `gorm:"index" json:"assigned_staff_id,omitempty"`
	CreatedBy       uint   `gorm:"not null;index" json:"created_by"`

	// 关联关系
	Resident      *Resident      `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
	Building      *Building      `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	AssignedStaff *Staff         `gorm:"foreignKey:AssignedStaffID" json:"assigned_staff,omitempty"`
	Images        []RequestImage `gorm:"foreignKey:RequestID" json:"images,omitempty"` // 附带图片（一对多）
}

// RequestImage 表示维修请求附带的图片，base64负载随父记录存储
type RequestImage struct {
	BaseModel
	UUID        string `gorm:"type:varchar(40);unique;not null" json:"uuid"`
	RequestID   uint   `gorm:"not null;index" json:"request_id"`
	Data        string `gorm:"type:longtext" json:"data"` // base64编码的图片内容
	ContentType string `gorm:"type:varchar(50)" json:"content_type"`
	Filename    string `gorm:"type:varchar(255)" json:"filename"`
	Size        int64  `json:"size"`
}

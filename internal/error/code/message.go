package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrForbidden:       "角色无权访问该接口",
	ErrTooManyRequests: "请求频率过高",

	// 用户与认证相关错误码
	ErrUserNotFound:       "用户不存在",
	ErrUserAlreadyExist:   "用户已存在",
	ErrInvalidCredentials: "邮箱或密码错误",

	// 楼宇相关错误码
	ErrBuildingNotFound:   "楼宇不存在或无权访问",
	ErrBuildingIDRequired: "缺少楼宇ID参数",

	// 公寓相关错误码
	ErrApartmentNotFound:     "公寓不存在",
	ErrApartmentAlreadyExist: "该楼宇内公寓编号已存在",
	ErrApartmentOccupied:     "公寓已有住户",

	// 住户相关错误码
	ErrResidentNotFound:     "住户不存在",
	ErrResidentAlreadyExist: "住户已存在",
	ErrResidentCodeInvalid:  "住户激活码无效",

	// 员工相关错误码
	ErrStaffNotFound:     "员工不存在",
	ErrStaffAlreadyExist: "员工已存在",

	// 维修请求相关错误码
	ErrRequestNotFound:      "维修请求不存在",
	ErrRequestStatusInvalid: "无效的维修请求状态",
	ErrImageInvalid:         "图片格式或大小不符合要求",

	// 通知相关错误码
	ErrNoticeNotFound: "通知不存在",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrForbidden:       StatusForbidden,
	ErrTooManyRequests: StatusTooManyRequests,

	// 用户与认证相关错误码
	ErrUserNotFound:       StatusNotFound,
	ErrUserAlreadyExist:   StatusBadRequest,
	ErrInvalidCredentials: StatusBadRequest,

	// 楼宇相关错误码
	ErrBuildingNotFound:   StatusNotFound,
	ErrBuildingIDRequired: StatusBadRequest,

	// 公寓相关错误码
	ErrApartmentNotFound:     StatusNotFound,
	ErrApartmentAlreadyExist: StatusBadRequest,
	ErrApartmentOccupied:     StatusBadRequest,

	// 住户相关错误码
	ErrResidentNotFound:     StatusNotFound,
	ErrResidentAlreadyExist: StatusBadRequest,
	ErrResidentCodeInvalid:  StatusNotFound,

	// 员工相关错误码
	ErrStaffNotFound:     StatusNotFound,
	ErrStaffAlreadyExist: StatusBadRequest,

	// 维修请求相关错误码
	ErrRequestNotFound:      StatusNotFound,
	ErrRequestStatusInvalid: StatusBadRequest,
	ErrImageInvalid:         StatusBadRequest,

	// 通知相关错误码
	ErrNoticeNotFound: StatusNotFound,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}

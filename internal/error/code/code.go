package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusCreated - 201: 创建成功.
	StatusCreated = 201
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrForbidden - 403: 角色无权访问.
	ErrForbidden
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 用户与认证相关错误码 (101xxx).
const (
	// ErrUserNotFound - 404: 用户不存在.
	ErrUserNotFound int = iota + 101000
	// ErrUserAlreadyExist - 400: 用户已存在.
	ErrUserAlreadyExist
	// ErrInvalidCredentials - 400: 邮箱或密码错误. 登录失败故意返回400而非401.
	ErrInvalidCredentials
)

// 楼宇相关错误码 (102xxx).
const (
	// ErrBuildingNotFound - 404: 楼宇不存在或无权访问.
	ErrBuildingNotFound int = iota + 102000
	// ErrBuildingIDRequired - 400: 缺少楼宇ID参数.
	ErrBuildingIDRequired
)

// 公寓相关错误码 (103xxx).
const (
	// ErrApartmentNotFound - 404: 公寓不存在.
	ErrApartmentNotFound int = iota + 103000
	// ErrApartmentAlreadyExist - 400: 该楼宇内公寓编号已存在.
	ErrApartmentAlreadyExist
	// ErrApartmentOccupied - 400: 公寓已有住户.
	ErrApartmentOccupied
)

// 住户相关错误码 (104xxx).
const (
	// ErrResidentNotFound - 404: 住户不存在.
	ErrResidentNotFound int = iota + 104000
	// ErrResidentAlreadyExist - 400: 住户已存在.
	ErrResidentAlreadyExist
	// ErrResidentCodeInvalid - 404: 住户激活码无效.
	ErrResidentCodeInvalid
)

// 员工相关错误码 (105xxx).
const (
	// ErrStaffNotFound - 404: 员工不存在.
	ErrStaffNotFound int = iota + 105000
	// ErrStaffAlreadyExist - 400: 员工已存在.
	ErrStaffAlreadyExist
)

// 维修请求相关错误码 (106xxx).
const (
	// ErrRequestNotFound - 404: 维修请求不存在.
	ErrRequestNotFound int = iota + 106000
	// ErrRequestStatusInvalid - 400: 无效的维修请求状态.
	ErrRequestStatusInvalid
	// ErrImageInvalid - 400: 图片格式或大小不符合要求.
	ErrImageInvalid
)

// 通知相关错误码 (107xxx).
const (
	// ErrNoticeNotFound - 404: 通知不存在.
	ErrNoticeNotFound int = iota + 107000
)

// 数据库相关错误码 (108xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 108000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)

package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserBan                 = errors.New("用户已被封禁")
	ErrUserBanSelf             = errors.New("不能封禁自己")
	ErrUserBanAdmin            = errors.New("不能封禁管理员")
	ErrUserEmailExist          = errors.New("邮箱已注册")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrRoleInvalid             = errors.New("角色无效")
	ErrProductNotFound         = errors.New("商品不存在")
	ErrProductNotOwned         = errors.New("无权操作他人商品")
	ErrStockInsufficient       = errors.New("库存不足")
	ErrOrderNotFound           = errors.New("订单不存在")
	ErrOrderStatusInvalid      = errors.New("订单状态流转无效")
	ErrReviewExist             = errors.New("已评价过该商品")
	ErrReviewNotAllowed        = errors.New("仅已收货买家可评价")
	ErrRatingInvalid           = errors.New("评分范围为1到5")
	ErrReceiverNotFound        = errors.New("接收者不存在")
	ErrMessageEmpty            = errors.New("消息内容不能为空")
	ErrMessageSelf             = errors.New("不能给自己发送消息")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrPaymentFailed           = errors.New("支付请求失败")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserBan:                 Unauthorized,
	ErrUserBanSelf:             Unauthorized,
	ErrUserBanAdmin:            Unauthorized,
	ErrUserEmailExist:          BadRequest,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrRoleInvalid:             BadRequest,
	ErrProductNotFound:         NotFound,
	ErrProductNotOwned:         Forbidden,
	ErrStockInsufficient:       BadRequest,
	ErrOrderNotFound:           NotFound,
	ErrOrderStatusInvalid:      BadRequest,
	ErrReviewExist:             BadRequest,
	ErrReviewNotAllowed:        Forbidden,
	ErrRatingInvalid:           BadRequest,
	ErrReceiverNotFound:        NotFound,
	ErrMessageEmpty:            BadRequest,
	ErrMessageSelf:             BadRequest,
	ErrFileNotSupported:        BadRequest,
	ErrPaymentFailed:           InternalServerError,
	UnauthorizedError:          Forbidden,
	UnExpectedError:            InternalServerError,
}

package handler

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/response"
	"FarmLink/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService  service.UserService
	statsService service.StatsService
}

func NewUserHandler(userService service.UserService, statsService service.StatsService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		statsService: statsService,
	}
}

// Register 注册接口
func (s *UserHandler) Register(c *gin.Context) {
	var regDTO dto.RegisterDTO
	if err := c.ShouldBindJSON(&regDTO); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.userService.Register(c, &regDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Login 登录接口
func (s *UserHandler) Login(c *gin.Context) {
	var credentialDTO dto.CredentialDTO
	if err := c.ShouldBindJSON(&credentialDTO); err != nil {
		response.Error(c, service.ErrMissingLoginCredentials)
		return
	}

	res, err := s.userService.Login(c, &credentialDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// Logout 登出接口，把当前 token 拉入黑名单
func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.userService.Logout(c, token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Me 当前用户信息
func (s *UserHandler) Me(c *gin.Context) {
	userID := c.GetUint64("user_id")
	res, err := s.userService.GetUserInfo(c, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// ListUsers 管理端用户列表
func (s *UserHandler) ListUsers(c *gin.Context) {
	res, err := s.userService.ListUsers(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// BanUser 管理端封禁
func (s *UserHandler) BanUser(c *gin.Context) {
	var banDTO dto.BanUserDTO
	if err := c.ShouldBindJSON(&banDTO); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	operatorID := c.GetUint64("user_id")

	if err := s.userService.BanUser(c, operatorID, banDTO.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UnBanUser 管理端解封
func (s *UserHandler) UnBanUser(c *gin.Context) {
	var banDTO dto.BanUserDTO
	if err := c.ShouldBindJSON(&banDTO); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := s.userService.UnBanUser(c, banDTO.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// PlatformStats 管理端平台概览
func (s *UserHandler) PlatformStats(c *gin.Context) {
	res, err := s.statsService.GetPlatformStats(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/model"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/redis"
	"FarmLink/internal/pkg/security"
	"FarmLink/internal/pkg/util"
	"FarmLink/internal/repository"
	"context"
	"time"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credentialDTO *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	ListUsers(ctx context.Context) ([]*dto.UserDTO, error)
	BanUser(ctx context.Context, operatorID, targetID uint64) error
	UnBanUser(ctx context.Context, targetID uint64) error
}

type UserServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &UserServiceImpl{
		userRepo: userRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	if err := util.ValidateDTO(regDTO); err != nil {
		return ErrParamInvalid
	}
	if regDTO.Role != consts.RoleBuyer && regDTO.Role != consts.RoleFarmer {
		return ErrRoleInvalid
	}

	findUser, err := s.userRepo.GetUserByEmail(ctx, regDTO.Email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserEmailExist
	}

	passwordHash, err := security.HashPassword(regDTO.Password)
	if err != nil {
		return err
	}

	user := &model.User{
		Name:     regDTO.Name,
		Email:    util.PtrString(regDTO.Email),
		Password: util.PtrString(passwordHash),
		Role:     regDTO.Role,
	}
	if regDTO.Location != "" {
		user.Location = util.PtrString(regDTO.Location)
	}

	return s.userRepo.CreateUser(ctx, user)
}

func (s *UserServiceImpl) Login(ctx context.Context, credentialDTO *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, credentialDTO.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsBan {
		return nil, ErrUserBan
	}
	if user.Password == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(credentialDTO.Password, *user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID, []string{user.Role})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{
		Token: token,
		User:  s.toUserDTO(user),
	}, nil
}

// Logout 把 token 签名写入黑名单，保留到 token 自然过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, signature, true, time.Hour*24)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserDTO(user), nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.UserDTO, 0, len(users))
	for _, u := range users {
		res = append(res, s.toUserDTO(u))
	}
	return res, nil
}

func (s *UserServiceImpl) BanUser(ctx context.Context, operatorID, targetID uint64) error {
	if operatorID == targetID {
		return ErrUserBanSelf
	}
	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrUserNotFound
	}
	if target.Role == consts.RoleAdmin {
		return ErrUserBanAdmin
	}
	affected, err := s.userRepo.UpdateUserIsBan(ctx, targetID, true)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserServiceImpl) UnBanUser(ctx context.Context, targetID uint64) error {
	affected, err := s.userRepo.UpdateUserIsBan(ctx, targetID, false)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserServiceImpl) toUserDTO(user *model.User) *dto.UserDTO {
	d := &dto.UserDTO{
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if user.Email != nil {
		d.Email = *user.Email
	}
	if user.Location != nil {
		d.Location = *user.Location
	}
	return d
}

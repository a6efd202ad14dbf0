package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/model"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/security"
	"FarmLink/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newUserTestEnv(t *testing.T) (UserService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return NewUserService(repository.NewUserRepo(db)), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserTestEnv(t)
	ctx := context.Background()

	reg := &dto.RegisterDTO{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Role:     consts.RoleBuyer,
		Location: "Nairobi",
	}
	require.NoError(t, svc.Register(ctx, reg))

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := svc.Register(ctx, reg)
		assert.ErrorIs(t, err, ErrUserEmailExist)
	})

	t.Run("admin role cannot self register", func(t *testing.T) {
		err := svc.Register(ctx, &dto.RegisterDTO{
			Name: "Mallory", Email: "m@example.com", Password: "secret123", Role: consts.RoleAdmin,
		})
		assert.ErrorIs(t, err, ErrRoleInvalid)
	})

	t.Run("login returns token and profile", func(t *testing.T) {
		res, err := svc.Login(ctx, &dto.CredentialDTO{Email: "alice@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "Alice", res.User.Name)
		assert.Equal(t, consts.RoleBuyer, res.User.Role)

		claims, err := security.ValidateToken(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.UserID, claims.UserID)
		assert.Equal(t, []string{consts.RoleBuyer}, claims.Roles)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.CredentialDTO{Email: "alice@example.com", Password: "nope"})
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.CredentialDTO{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestBanUser(t *testing.T) {
	svc, db := newUserTestEnv(t)
	ctx := context.Background()

	admin := &model.User{Name: "Root", Role: consts.RoleAdmin}
	buyer := &model.User{Name: "Alice", Role: consts.RoleBuyer}
	otherAdmin := &model.User{Name: "Root2", Role: consts.RoleAdmin}
	require.NoError(t, db.Create(admin).Error)
	require.NoError(t, db.Create(buyer).Error)
	require.NoError(t, db.Create(otherAdmin).Error)

	t.Run("admin bans a buyer", func(t *testing.T) {
		require.NoError(t, svc.BanUser(ctx, admin.ID, buyer.ID))
		var u model.User
		require.NoError(t, db.First(&u, buyer.ID).Error)
		assert.True(t, u.IsBan)
	})

	t.Run("banned buyer cannot login", func(t *testing.T) {
		_ = db.Model(&model.User{}).Where("id = ?", buyer.ID).Update("email", "alice@example.com")
		_, err := svc.Login(ctx, &dto.CredentialDTO{Email: "alice@example.com", Password: "x"})
		assert.ErrorIs(t, err, ErrUserBan)
	})

	t.Run("cannot ban self", func(t *testing.T) {
		assert.ErrorIs(t, svc.BanUser(ctx, admin.ID, admin.ID), ErrUserBanSelf)
	})

	t.Run("cannot ban another admin", func(t *testing.T) {
		assert.ErrorIs(t, svc.BanUser(ctx, admin.ID, otherAdmin.ID), ErrUserBanAdmin)
	})

	t.Run("unban restores access flag", func(t *testing.T) {
		require.NoError(t, svc.UnBanUser(ctx, buyer.ID))
		var u model.User
		require.NoError(t, db.First(&u, buyer.ID).Error)
		assert.False(t, u.IsBan)
	})
}

package service

import (
	"FarmLink/internal/api/dto"
	"FarmLink/internal/pkg/consts"
	"FarmLink/internal/pkg/mongo"
	"FarmLink/internal/repository"
	"context"

	"golang.org/x/sync/errgroup"
)

type StatsService interface {
	GetPlatformStats(ctx context.Context) (*dto.PlatformStatsDTO, error)
}

type StatsServiceImpl struct {
	userRepo    repository.UserRepo
	productRepo repository.ProductRepo
	orderRepo   repository.OrderRepo
	messageRepo mongo.MessageRepo
}

func NewStatsService(userRepo repository.UserRepo, productRepo repository.ProductRepo, orderRepo repository.OrderRepo, messageRepo mongo.MessageRepo) StatsService {
	return &StatsServiceImpl{
		userRepo:    userRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		messageRepo: messageRepo,
	}
}

// GetPlatformStats 平台概览统计，各项计数并发查询
func (s *StatsServiceImpl) GetPlatformStats(ctx context.Context) (*dto.PlatformStatsDTO, error) {
	stats := &dto.PlatformStatsDTO{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.userRepo.CountByRole(gctx, consts.RoleBuyer)
		stats.BuyerCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.userRepo.CountByRole(gctx, consts.RoleFarmer)
		stats.FarmerCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.productRepo.CountProducts(gctx)
		stats.ProductCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.orderRepo.CountOrders(gctx)
		stats.OrderCount = count
		return err
	})
	g.Go(func() error {
		count, err := s.messageRepo.CountMessages(gctx)
		stats.MessageCount = count
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

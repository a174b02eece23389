package service

import (
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"

	"blood-connect/internal/config"
	"blood-connect/internal/repository"
	"blood-connect/internal/service/auth"
	"blood-connect/internal/service/blood"
	"blood-connect/internal/service/camp"
	"blood-connect/internal/service/donor"
	"blood-connect/internal/service/email"
	"blood-connect/internal/service/geo"
	"blood-connect/internal/service/helpers"
	"blood-connect/internal/service/notification"
	"blood-connect/internal/service/snapshot"
)

type Services struct {
	Auth         auth.Service
	Email        email.Service
	Notification notification.Service
	Blood        blood.Service
	Donor        donor.Service
	Camp         camp.Service
	// Snapshot is nil when no MinIO client is configured.
	Snapshot snapshot.Service
}

func NewServices(repos *repository.Repositories, minioClient *minio.Client, cfg *config.Config, logger *zap.Logger) (*Services, error) {
	rt := helpers.NewRuntime(logger, nil, cfg.SimulatedLatency)
	distance := geo.NewHashDistance()

	cooldown, err := donor.NewCooldown(cfg.DonationCooldownRRule)
	if err != nil {
		return nil, err
	}

	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, emailService, cfg, rt)
	notificationService := notification.NewService(repos.Notification, repos.User, emailService, rt)

	bloodService := blood.NewService(repos.BloodRequest, repos.Inventory, repos.User, distance, rt)
	bloodService.SetNotificationService(notificationService)

	donorService := donor.NewService(repos.User, repos.Camp, repos.Booking, distance, cooldown, cfg.NearbyMaxDistanceKm, rt)
	donorService.SetNotificationService(notificationService)

	campService := camp.NewService(repos.Camp, repos.Booking, rt)
	campService.SetNotificationService(notificationService)

	var snapshotService snapshot.Service
	if minioClient != nil {
		snapshotService = snapshot.NewService(repos.Store, minioClient, cfg.MinIOBucket, rt)
	}

	return &Services{
		Auth:         authService,
		Email:        emailService,
		Notification: notificationService,
		Blood:        bloodService,
		Donor:        donorService,
		Camp:         campService,
		Snapshot:     snapshotService,
	}, nil
}

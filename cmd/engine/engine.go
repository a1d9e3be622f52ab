package engine

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/campuslink/club-governance/internal/adapters/config"
	"github.com/campuslink/club-governance/internal/adapters/database/postgres"
	"github.com/campuslink/club-governance/internal/adapters/database/redis"
	"github.com/campuslink/club-governance/internal/domain/service"
	"github.com/campuslink/club-governance/pkg/logger"
	"github.com/campuslink/club-governance/pkg/logger/types"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Engine wires the storages and services together and is the in-process
// boundary the transport layers (HTTP, bots) embed.
type Engine struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Logger *types.Logger

	Users       *service.UserService
	Clubs       *service.ClubService
	Memberships *service.MembershipService
	Executives  *service.ExecutiveService
	Requests    *service.MembershipRequestService
	Governance  *service.GovernanceService
}

func New(config *config.Config) (*Engine, error) {
	engineLogger, err := logger.Named("engine")
	if err != nil {
		return nil, err
	}

	userStorage := postgres.NewUserStorage(config.Database)
	clubStorage := postgres.NewClubStorage(config.Database)
	membershipStorage := postgres.NewMembershipStorage(config.Database)
	executiveStorage := postgres.NewExecutiveStorage(config.Database)
	requestStorage := postgres.NewMembershipRequestStorage(config.Database)

	users := service.NewUserService(userStorage)
	clubs := service.NewClubService(clubStorage)
	memberships := service.NewMembershipService(
		engineLogger,
		membershipStorage,
		config.Redis.Members,
		viper.GetDuration("service.redis.members-ttl"),
	)
	executives := service.NewExecutiveService(engineLogger, executiveStorage)
	requests := service.NewMembershipRequestService(engineLogger, requestStorage)
	governance := service.NewGovernanceService(engineLogger, users, clubs, memberships, executives, requests)

	return &Engine{
		DB:     config.Database,
		Redis:  config.Redis,
		Logger: engineLogger,

		Users:       users,
		Clubs:       clubs,
		Memberships: memberships,
		Executives:  executives,
		Requests:    requests,
		Governance:  governance,
	}, nil
}

// Start blocks until the process is asked to stop. The engine has no
// background jobs of its own; it only serves the callers embedding it.
func (e *Engine) Start() {
	e.Logger.Info("Governance engine ready")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	e.Logger.Info("Governance engine stopping")
}

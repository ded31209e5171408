package svc

import (
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Inteli-Club5/trbe-backend/config"
	"github.com/Inteli-Club5/trbe-backend/contract"
	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

// ServerCtx wires every shared dependency the handlers and services reach
// for. Redis and the contract clients are nil when their config sections are
// left empty.
type ServerCtx struct {
	C   *config.Config
	DB  *gorm.DB
	Dao *dao.Dao

	Redis *redis.Client

	FanClubs  *contract.FanClubsContract
	ScoreUser *contract.ScoreUserContract
}

func NewServiceContext(c *config.Config) (*ServerCtx, error) {
	db, err := gorm.Open(postgres.Open(c.Database.Dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "failed on connect database")
	}

	if err := Migrate(db); err != nil {
		return nil, errors.Wrap(err, "failed on migrate schema")
	}

	ctx := &ServerCtx{
		C:   c,
		DB:  db,
		Dao: dao.New(db),
	}

	if c.Redis.Addr != "" {
		ctx.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
		})
	}

	if c.Chain.RPCEndpoint != "" {
		if c.Chain.FanClubsAddress != "" {
			ctx.FanClubs, err = contract.NewFanClubsContract(&c.Chain)
			if err != nil {
				return nil, errors.Wrap(err, "failed on init FanClubs contract")
			}
		}
		if c.Chain.ScoreUserAddress != "" {
			ctx.ScoreUser, err = contract.NewScoreUserContract(&c.Chain)
			if err != nil {
				return nil, errors.Wrap(err, "failed on init ScoreUser contract")
			}
		}
	}

	return ctx, nil
}

// Migrate creates or updates every table the backend owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&trbe.User{},
		&trbe.SocialStats{},
		&trbe.Club{},
		&trbe.ClubFollow{},
		&trbe.FanGroup{},
		&trbe.FanGroupMembership{},
		&trbe.Task{},
		&trbe.UserTask{},
		&trbe.Badge{},
		&trbe.UserBadge{},
		&trbe.Game{},
		&trbe.Event{},
		&trbe.EventRegistration{},
		&trbe.CheckIn{},
		&trbe.Transaction{},
		&trbe.ReputationHistory{},
	)
}

package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Inteli-Club5/trbe-backend/config"
	"github.com/Inteli-Club5/trbe-backend/dao"
	"github.com/Inteli-Club5/trbe-backend/service/svc"
	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func newTestCtx(t *testing.T) *svc.ServerCtx {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// Every pooled connection to :memory: would get its own database;
	// pin the pool to one so concurrent readers share state.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := svc.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return &svc.ServerCtx{
		C: &config.Config{
			Jwt: config.Jwt{Secret: "test-secret", ExpireHours: 1},
		},
		DB:  db,
		Dao: dao.New(db),
	}
}

func seedUser(t *testing.T, svcCtx *svc.ServerCtx, mutate func(*trbe.User)) *trbe.User {
	t.Helper()

	user := &trbe.User{
		Email:           "fan@example.com",
		Username:        "fan",
		Status:          trbe.UserStatusActive,
		Role:            trbe.UserRoleFan,
		Level:           1,
		ReputationScore: 500,
	}
	if mutate != nil {
		mutate(user)
	}
	if err := svcCtx.DB.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedTask(t *testing.T, svcCtx *svc.ServerCtx, mutate func(*trbe.Task)) *trbe.Task {
	t.Helper()

	task := &trbe.Task{
		Title:       "attend a match",
		Category:    trbe.TaskCategoryAttendance,
		MaxProgress: 1,
		Tokens:      25,
		Experience:  50,
		IsActive:    true,
	}
	if mutate != nil {
		mutate(task)
	}
	if err := svcCtx.DB.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

func seedClub(t *testing.T, svcCtx *svc.ServerCtx, mutate func(*trbe.Club)) *trbe.Club {
	t.Helper()

	club := &trbe.Club{
		Name:      "Palmeiras",
		ShortName: "PAL",
		Country:   "Brazil",
		League:    "Serie A",
		IsActive:  true,
	}
	if mutate != nil {
		mutate(club)
	}
	if err := svcCtx.DB.Create(club).Error; err != nil {
		t.Fatalf("seed club: %v", err)
	}
	return club
}

func seedFanGroup(t *testing.T, svcCtx *svc.ServerCtx, mutate func(*trbe.FanGroup)) *trbe.FanGroup {
	t.Helper()

	group := &trbe.FanGroup{
		Name:     "north stand",
		IsPublic: true,
		IsActive: true,
	}
	if mutate != nil {
		mutate(group)
	}
	if err := svcCtx.DB.Create(group).Error; err != nil {
		t.Fatalf("seed fan group: %v", err)
	}
	return group
}

func seedGame(t *testing.T, svcCtx *svc.ServerCtx, club *trbe.Club, mutate func(*trbe.Game)) *trbe.Game {
	t.Helper()

	game := &trbe.Game{
		ClubID:   club.ID,
		HomeTeam: club.Name,
		AwayTeam: "Corinthians",
		Date:     time.Now().Add(48 * time.Hour),
		Stadium:  "Allianz Parque",
		Type:     trbe.GameTypeHome,
		Status:   trbe.GameStatusScheduled,
	}
	if mutate != nil {
		mutate(game)
	}
	if err := svcCtx.DB.Create(game).Error; err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return game
}

func seedEvent(t *testing.T, svcCtx *svc.ServerCtx, mutate func(*trbe.Event)) *trbe.Event {
	t.Helper()

	event := &trbe.Event{
		Title:      "derby watch party",
		StartTime:  time.Now().Add(24 * time.Hour),
		Status:     trbe.EventStatusScheduled,
		Tokens:     30,
		Experience: 60,
	}
	if mutate != nil {
		mutate(event)
	}
	if err := svcCtx.DB.Create(event).Error; err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return event
}

func seedBadge(t *testing.T, svcCtx *svc.ServerCtx, mutate func(*trbe.Badge)) *trbe.Badge {
	t.Helper()

	badge := &trbe.Badge{
		Name:        "first steps",
		Rarity:      trbe.BadgeRarityCommon,
		MaxProgress: 3,
		Tokens:      10,
		Experience:  20,
		IsActive:    true,
	}
	if mutate != nil {
		mutate(badge)
	}
	if err := svcCtx.DB.Create(badge).Error; err != nil {
		t.Fatalf("seed badge: %v", err)
	}
	return badge
}

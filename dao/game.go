package dao

import (
	"context"
	"time"

	"github.com/Inteli-Club5/trbe-backend/stores/gdb/trbe"
)

func (d *Dao) CreateGame(c context.Context, game *trbe.Game) error {
	return d.DB.WithContext(c).Create(game).Error
}

func (d *Dao) GetGameByID(c context.Context, id string) (*trbe.Game, error) {
	var game trbe.Game
	err := d.DB.WithContext(c).Where("id = ?", id).First(&game).Error
	return &game, err
}

func (d *Dao) UpdateGameFields(c context.Context, id string, fields map[string]interface{}) error {
	return d.DB.WithContext(c).Model(&trbe.Game{}).Where("id = ?", id).Updates(fields).Error
}

func (d *Dao) DeleteGame(c context.Context, id string) error {
	return d.DB.WithContext(c).Where("id = ?", id).Delete(&trbe.Game{}).Error
}

type GameFilter struct {
	ClubID       string
	Status       trbe.GameStatus
	Type         trbe.GameType
	Championship string
	DateFrom     time.Time
	DateTo       time.Time
	Search       string
}

func (d *Dao) ListGames(c context.Context, page, pageSize int, filter GameFilter) ([]trbe.Game, int64, error) {
	query := d.DB.WithContext(c).Model(&trbe.Game{})
	if filter.ClubID != "" {
		query = query.Where("club_id = ?", filter.ClubID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Championship != "" {
		query = query.Where("championship = ?", filter.Championship)
	}
	if !filter.DateFrom.IsZero() {
		query = query.Where("date >= ?", filter.DateFrom)
	}
	if !filter.DateTo.IsZero() {
		query = query.Where("date <= ?", filter.DateTo)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("home_team LIKE ? OR away_team LIKE ? OR stadium LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var games []trbe.Game
	err := query.Order("date DESC").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&games).Error
	return games, total, err
}

// UpcomingGames lists the next games still open for attendance, soonest
// first.
func (d *Dao) UpcomingGames(c context.Context, limit int) ([]trbe.Game, error) {
	var games []trbe.Game
	err := d.DB.WithContext(c).
		Where("date >= ? AND status IN ?", time.Now(), []trbe.GameStatus{trbe.GameStatusScheduled, trbe.GameStatusLive}).
		Order("date ASC").
		Limit(limit).
		Find(&games).Error
	return games, err
}

package database

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pena-club/pena-api/internal/config"
	"github.com/pena-club/pena-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	Direction string `json:"direction"`
}

var defaultSeedUsers = []seedUser{
	{Username: "admin", Password: "admin", Name: "Admin", Direction: "Av. Siempre Viva 742"},
	{Username: "cacho", Password: "cacho", Name: "Cacho", Direction: "Calle 12 n 345"},
	{Username: "juan", Password: "juan", Name: "Juan", Direction: "Diagonal 74 n 901"},
	{Username: "mondi", Password: "mondi", Name: "Mondi", Direction: "Calle 3 n 210"},
	{Username: "tito", Password: "tito", Name: "Tito", Direction: "Av. 44 n 678"},
}

// Seed populates a fresh database with the default users, one event owned
// by the admin, three candidate dates and a reservation per user. Safe to
// run repeatedly; every write is an upsert.
func Seed(db *gorm.DB, cfg *config.Config) error {
	seedUsers := defaultSeedUsers
	if cfg.SeedFile != "" {
		data, err := os.ReadFile(cfg.SeedFile)
		if err != nil {
			return fmt.Errorf("read seed file: %w", err)
		}
		if err := json.Unmarshal(data, &seedUsers); err != nil {
			return fmt.Errorf("parse seed file: %w", err)
		}
	}

	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		var user models.User
		if err := db.FirstOrInit(&user, models.User{Username: su.Username}).Error; err != nil {
			return err
		}
		if user.ID == "" {
			// Only new users get the seed password; existing ones keep theirs.
			user.Password = string(hash)
		}
		user.Name = su.Name
		user.Direction = su.Direction
		if err := db.Save(&user).Error; err != nil {
			return err
		}
	}

	var admin models.User
	if err := db.Where("username = ?", cfg.AdminUsername).First(&admin).Error; err != nil {
		return fmt.Errorf("admin user not found: %w", err)
	}

	defaultDate := nextWeekday(time.Now(), time.Tuesday).Add(20 * time.Hour)
	var event models.Event
	if err := db.FirstOrInit(&event, models.Event{ID: cfg.FirstEventID}).Error; err != nil {
		return err
	}
	if event.OwnerID == "" {
		event.OwnerID = admin.ID
		event.BuyerID = &admin.ID
		event.Date = defaultDate
	}
	if err := db.Save(&event).Error; err != nil {
		return err
	}

	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		status := models.ReservationPending
		if u.Username == "cacho" || u.Username == "juan" {
			status = models.ReservationConfirmed
		}
		var res models.Reservation
		if err := db.FirstOrInit(&res, models.Reservation{EventID: event.ID, UserID: u.ID}).Error; err != nil {
			return err
		}
		if res.Status == "" {
			res.Status = status
		}
		if err := db.Save(&res).Error; err != nil {
			return err
		}
	}

	optionDates := []time.Time{
		nextWeekday(time.Now(), time.Thursday).Add(20 * time.Hour),
		nextWeekday(time.Now(), time.Friday).Add(20 * time.Hour),
		nextWeekday(time.Now(), time.Saturday).Add(20 * time.Hour),
	}
	options := make([]models.DateOption, 0, len(optionDates))
	for _, d := range optionDates {
		var opt models.DateOption
		if err := db.FirstOrInit(&opt, models.DateOption{EventID: event.ID, Date: d}).Error; err != nil {
			return err
		}
		if err := db.Save(&opt).Error; err != nil {
			return err
		}
		options = append(options, opt)
	}

	// One starter vote, so the tally view has something to show.
	var mondi models.User
	if err := db.Where("username = ?", "mondi").First(&mondi).Error; err == nil {
		var vote models.DateVote
		if err := db.FirstOrInit(&vote, models.DateVote{EventID: event.ID, UserID: mondi.ID}).Error; err != nil {
			return err
		}
		if vote.DateOptionID == "" {
			vote.DateOptionID = options[len(options)-1].ID
			if err := db.Save(&vote).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

// nextWeekday returns midnight of the next occurrence of day, at least one
// day ahead of t.
func nextWeekday(t time.Time, day time.Weekday) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day) - int(t.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, offset)
}

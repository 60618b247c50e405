// Package postgres implements store.Store against a relational schema. The
// uniqueness invariants the application depends on (one like per user/post
// pair, one interest per user/topic pair) are enforced with unique indexes
// so concurrent duplicate writes fail at the data layer instead of racing
// past an application-level existence check.
package postgres

import (
	"errors"
	"log"

	"luminate/internal/models"
	"luminate/internal/store"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Open connects, migrates the schema and seeds reference data.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true, // surfaces gorm.ErrDuplicatedKey on unique violations
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.UserInterest{},
		&models.Course{},
		&models.Enrollment{},
		&models.PointLog{},
		&models.Notification{},
		&models.GeneratedContent{},
	)
	if err != nil {
		return nil, err
	}
	log.Println("Database migration completed")

	s := &Store{db: db}
	s.seedTopics()
	return s, nil
}

// NewWithDB wraps an existing connection, used by tests.
func NewWithDB(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) seedTopics() {
	var count int64
	s.db.Model(&models.Topic{}).Count(&count)
	if count > 0 {
		log.Println("Topics already seeded, skipping")
		return
	}

	topics := []models.Topic{
		{Title: "Programming", Description: "Languages, frameworks and software craft", Category: "technology", Symbol: "PRG"},
		{Title: "Data Science", Description: "Statistics, ML and working with data", Category: "technology", Symbol: "DATA"},
		{Title: "Design", Description: "Product, visual and interaction design", Category: "creative", Symbol: "DSGN"},
		{Title: "Business", Description: "Strategy, finance and entrepreneurship", Category: "business", Symbol: "BIZ"},
	}

	for _, topic := range topics {
		if err := s.db.Create(&topic).Error; err != nil {
			log.Printf("Failed to create topic %s: %v", topic.Title, err)
		}
	}
	log.Println("Initial topics created successfully")
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// ---- Users ----

func (s *Store) CreateUser(u *models.User) error {
	if err := s.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return store.ErrConflict
		}
		return err
	}
	return nil
}

func (s *Store) GetUser(id uint) (*models.User, error) {
	var u models.User
	if err := s.db.First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) UpdateUser(u *models.User) error {
	res := s.db.Model(&models.User{}).Where("id = ?", u.ID).Updates(map[string]interface{}{
		"username":     u.Username,
		"display_name": u.DisplayName,
		"avatar":       u.Avatar,
		"bio":          u.Bio,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

package database

import (
	"database/sql"
	"log"
	"net/url"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/yaqeen/internal/models"
	"github.com/example/yaqeen/internal/utils"
)

// orderCounterSeed makes the first issued order number ORD-1001.
const orderCounterSeed = 1000

var db *gorm.DB

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) *gorm.DB {
	if db != nil {
		return db
	}

	if err := ensureDatabase(dsn); err != nil {
		log.Fatalf("failed to ensure database: %v", err)
	}

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := conn.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Printf("warning: failed to ensure uuid-ossp extension: %v", err)
	}

	if err := migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	if err := seedOrderCounter(conn); err != nil {
		log.Fatalf("failed to seed order counter: %v", err)
	}

	db = conn
	return db
}

// DB exposes the initialized gorm.DB instance.
func DB() *gorm.DB {
	return db
}

func migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.User{},
		&models.Admin{},
		&models.Tag{},
		&models.Product{},
		&models.ProductColor{},
		&models.ProductSize{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderCounter{},
		&models.Message{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

func seedOrderCounter(conn *gorm.DB) error {
	var counter models.OrderCounter
	err := conn.Where("name = ?", "order").First(&counter).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return conn.Create(&models.OrderCounter{Name: "order", Seq: orderCounterSeed}).Error
}

// SeedSuperadmin creates the initial superadmin account if no staff exist.
func SeedSuperadmin(conn *gorm.DB, email, password string) {
	if email == "" || password == "" {
		return
	}

	var count int64
	if err := conn.Model(&models.Admin{}).Count(&count).Error; err != nil {
		log.Printf("warning: superadmin seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("warning: failed to hash superadmin password: %v", err)
		return
	}

	admin := models.Admin{
		Name:         "Superadmin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleSuperadmin,
	}
	if err := conn.Create(&admin).Error; err != nil {
		log.Printf("warning: failed to seed superadmin: %v", err)
		return
	}
	log.Printf("seeded superadmin account %s", email)
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}

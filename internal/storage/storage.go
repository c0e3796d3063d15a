package storage

import (
	"context"
	"fmt"

	"flightmap/internal/config"
	"flightmap/internal/game/airspace"
	"flightmap/internal/logging"

	"github.com/glebarez/sqlite"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	MEMORY_DSN = "file::memory:?cache=shared"
	BATCH_SIZE = 500
)

// AirportRecord is the persisted form of an airspace.Airport.
type AirportRecord struct {
	Code      string `gorm:"primaryKey;size:3"`
	Name      string `gorm:"not null"`
	City      string
	Country   string  `gorm:"index;not null"`
	Latitude  float64 `gorm:"not null"`
	Longitude float64 `gorm:"not null"`
}

func (AirportRecord) TableName() string {
	return "airports"
}

func toRecord(ap airspace.Airport) AirportRecord {
	return AirportRecord{
		Code:      string(ap.Code),
		Name:      ap.Name,
		City:      ap.City,
		Country:   ap.Country,
		Latitude:  ap.Latitude,
		Longitude: ap.Longitude,
	}
}

func (r AirportRecord) Airport() airspace.Airport {
	return airspace.NewAirport(r.Code, r.Name, r.City, r.Country, r.Latitude, r.Longitude)
}

type Store struct {
	DB     *gorm.DB
	logger *log.Logger
}

// Open connects to the configured database and migrates the schema. An
// sqlite store with an empty path lives in memory.
func Open(cfg config.DatabaseConfig) (*Store, error) {
	l := logging.New("storage")
	gormCfg := &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        BATCH_SIZE,
		Logger:                 logger.Default.LogMode(logger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Type {
	case "postgres":
		l.Debugf("connecting to postgres at %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true,
		}), gormCfg)
	case "sqlite", "":
		dsn := cfg.Path
		if dsn == "" || dsn == ":memory:" {
			dsn = MEMORY_DSN
		}
		l.Debugf("using sqlite at %s", dsn)
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Type, err)
	}

	if err := db.AutoMigrate(&AirportRecord{}); err != nil {
		return nil, fmt.Errorf("migrate airports: %w", err)
	}
	return &Store{DB: db, logger: l}, nil
}

// SaveAirports upserts airports by code and returns how many were written.
func (s *Store) SaveAirports(ctx context.Context, airports []airspace.Airport) (int, error) {
	if len(airports) == 0 {
		return 0, nil
	}
	records := make([]AirportRecord, len(airports))
	for i, ap := range airports {
		records[i] = toRecord(ap)
	}

	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		UpdateAll: true,
	}).CreateInBatches(records, BATCH_SIZE)
	if res.Error != nil {
		return 0, fmt.Errorf("save airports: %w", res.Error)
	}
	s.logger.Infof("saved %d airports", len(records))
	return len(records), nil
}

// LoadDirectory reads every stored airport into a Directory.
func (s *Store) LoadDirectory(ctx context.Context) (*airspace.Directory, error) {
	var records []AirportRecord
	if err := s.DB.WithContext(ctx).Order("code").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}

	airports := make([]airspace.Airport, len(records))
	for i, r := range records {
		airports[i] = r.Airport()
	}
	dir := airspace.NewDirectory(airports)
	if dir.Skipped() > 0 {
		s.logger.Warnf("skipped %d invalid stored airports", dir.Skipped())
	}
	return dir, nil
}

func (s *Store) CountAirports(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&AirportRecord{}).Count(&n).Error
	return n, err
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

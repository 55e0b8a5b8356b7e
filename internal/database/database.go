package database

import (
	"context"
	"fmt"

	"github.com/arbys/arbitrations/internal/config"
	"github.com/arbys/arbitrations/internal/model"
	"github.com/arbys/arbitrations/internal/model/convert"
	"github.com/arbys/arbitrations/internal/refdata"
	"github.com/glebarez/sqlite"
	"golang.org/x/text/language"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const importBatchSize = 500

// Open connects to the reference database named by source ("sqlite" or
// "postgres").
func Open(source string, cfg config.DBConfig) (*gorm.DB, error) {
	switch source {
	case config.SourceSqlite:
		return OpenSqlite(cfg.Path)
	case config.SourcePostgres:
		return OpenPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported database source %q", source)
	}
}

// OpenPostgres returns a connection to the Postgres database.
func OpenPostgres(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(`host=%s port=%s user=%s password=%s dbname=%s sslmode=disable`,
		cfg.Host,
		cfg.Port,
		cfg.Username,
		cfg.Password,
		cfg.Database,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		CreateBatchSize:        importBatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	return db, nil
}

// OpenSqlite returns a connection to a SQLite database.
// If path is empty, uses a private in-memory database.
func OpenSqlite(path string) (*gorm.DB, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		CreateBatchSize:        importBatchSize,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite DB: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	// every pooled connection to file::memory: would see its own empty database
	if path == "" {
		sqlDB.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA user_version = 1;",
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA cache_size = -32000;",
		"PRAGMA temp_store = MEMORY;",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("error setting PRAGMA: %w", err)
		}
	}

	return db, nil
}

// Migrate creates or updates the reference tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(model.DatabaseModels...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// ImportRegions upserts the region table keyed by location code and returns
// the number of rows written.
func ImportRegions(ctx context.Context, db *gorm.DB, regions refdata.Regions) (int, error) {
	rows := convert.CoreToRegionRows(regions)
	if len(rows) == 0 {
		return 0, nil
	}

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "system_name", "mission_name", "faction_index", "dark_sector_data", "updated_at"}),
		}).
		CreateInBatches(&rows, importBatchSize).Error
	if err != nil {
		return 0, fmt.Errorf("failed to import regions: %w", err)
	}
	return len(rows), nil
}

// ImportDictionary upserts every entry of dict under its language and returns
// the number of rows written.
func ImportDictionary(ctx context.Context, db *gorm.DB, dict *refdata.Dictionary) (int, error) {
	rows := convert.EntriesToTranslations(dict.Language(), dict.Entries())
	if len(rows) == 0 {
		return 0, nil
	}

	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lang"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		CreateInBatches(&rows, importBatchSize).Error
	if err != nil {
		return 0, fmt.Errorf("failed to import %s dictionary: %w", dict.Language(), err)
	}
	return len(rows), nil
}

// LoadRegions reads the whole region table.
func LoadRegions(ctx context.Context, db *gorm.DB) (refdata.Regions, error) {
	var rows []model.RegionRow
	if err := db.WithContext(ctx).Order("code").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load regions: %w", err)
	}

	regions := make(refdata.Regions, len(rows))
	for _, row := range rows {
		r, err := convert.RegionRowToCore(row)
		if err != nil {
			return nil, err
		}
		regions[row.Code] = r
	}
	return regions, nil
}

// LoadDictionary reads the translations of lang. A language without rows
// yields an empty dictionary.
func LoadDictionary(ctx context.Context, db *gorm.DB, lang language.Tag) (*refdata.Dictionary, error) {
	var rows []model.Translation
	err := db.WithContext(ctx).
		Where("lang = ?", lang.String()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s dictionary: %w", lang, err)
	}
	return refdata.NewDictionary(lang, convert.TranslationsToEntries(rows)), nil
}

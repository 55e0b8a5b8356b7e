package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/arbys/arbitrations/internal/config"
	"github.com/arbys/arbitrations/internal/database"
	"github.com/arbys/arbitrations/internal/refdata"
	"github.com/arbys/arbitrations/internal/tier"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

func dictionaryLanguage() (language.Tag, error) {
	raw := config.GetString("lang")
	tag, err := language.Parse(raw)
	if err != nil {
		return language.Und, fmt.Errorf("invalid lang %q: %w", raw, err)
	}
	return tag, nil
}

// loadRefs reads regions and dictionary from the configured source.
func loadRefs(ctx context.Context, logger *slog.Logger) (refdata.Regions, *refdata.Dictionary, error) {
	refsCfg := config.GetRefsConfig()

	lang, err := dictionaryLanguage()
	if err != nil {
		return nil, nil, err
	}

	switch refsCfg.Source {
	case config.SourceFile, "":
		return loadRefFiles(refsCfg, lang, logger)

	case config.SourceSqlite, config.SourcePostgres:
		db, err := openRefDB(refsCfg.Source, logger)
		if err != nil {
			return nil, nil, err
		}
		defer closeDB(db, logger)

		regions, err := database.LoadRegions(ctx, db)
		if err != nil {
			return nil, nil, err
		}
		dict, err := database.LoadDictionary(ctx, db, lang)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Loaded reference data from database", "source", refsCfg.Source, "regions", len(regions), "translations", dict.Len(), "lang", lang)
		return regions, dict, nil

	default:
		return nil, nil, fmt.Errorf("unsupported refs.source %q", refsCfg.Source)
	}
}

func loadRefFiles(refsCfg config.RefsConfig, lang language.Tag, logger *slog.Logger) (refdata.Regions, *refdata.Dictionary, error) {
	regions, err := refdata.LoadRegionsFile(refsCfg.RegionsPath)
	if err != nil {
		return nil, nil, err
	}
	dict, err := refdata.LoadDictionaryFile(refsCfg.DictionaryPath, lang)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Loaded reference files", "regions", len(regions), "translations", dict.Len(), "lang", lang)
	return regions, dict, nil
}

// loadClassifier returns the built-in ranking unless the config carries a
// "tiers" section.
func loadClassifier(logger *slog.Logger) (*tier.Classifier, error) {
	groups := config.GetTiers()
	if groups == nil {
		return tier.Default(), nil
	}
	c, err := tier.FromLetters(groups)
	if err != nil {
		return nil, fmt.Errorf("invalid tiers config: %w", err)
	}
	logger.Info("Using configured tier table", "nodes", c.Len())
	return c, nil
}

// importRefs copies the reference files into the configured database.
func importRefs(ctx context.Context, logger *slog.Logger) (int, int, error) {
	refsCfg := config.GetRefsConfig()
	if refsCfg.Source != config.SourceSqlite && refsCfg.Source != config.SourcePostgres {
		return 0, 0, fmt.Errorf("import-refs needs refs.source sqlite or postgres, got %q", refsCfg.Source)
	}

	lang, err := dictionaryLanguage()
	if err != nil {
		return 0, 0, err
	}

	regions, dict, err := loadRefFiles(refsCfg, lang, logger)
	if err != nil {
		return 0, 0, err
	}

	db, err := openRefDB(refsCfg.Source, logger)
	if err != nil {
		return 0, 0, err
	}
	defer closeDB(db, logger)

	if err := database.Migrate(db); err != nil {
		return 0, 0, err
	}

	nRegions, err := database.ImportRegions(ctx, db, regions)
	if err != nil {
		return 0, 0, err
	}
	nTranslations, err := database.ImportDictionary(ctx, db, dict)
	if err != nil {
		return 0, 0, err
	}

	logger.Info("Imported reference data", "source", refsCfg.Source, "regions", nRegions, "translations", nTranslations, "lang", lang)
	return nRegions, nTranslations, nil
}

func openRefDB(source string, logger *slog.Logger) (*gorm.DB, error) {
	dbCfg := config.GetDBConfig()
	logger.Debug("Connecting to reference database", "source", source, "path", dbCfg.Path, "host", dbCfg.Host)

	db, err := database.Open(source, dbCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to validate connection: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close reference database", "error", err)
	}
}

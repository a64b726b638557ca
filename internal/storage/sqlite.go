//go:build !js && !wasm
// +build !js,!wasm

// Package storage persists the meter catalogue in SQLite. The database is
// seeded from the embedded builtin catalogue on first open; user-defined
// meters are appended after the builtins in priority order.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vedicmetrics/ChandasDNA/internal/meter"
	"github.com/vedicmetrics/ChandasDNA/pkg/utils"
)

const DefaultDBFile = "chandasdna.sqlite3"

var ErrMeterNotFound = errors.New("meter not found")

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

// Meter is the persisted form of a catalogue definition. Aliases and free
// positions are flattened to comma-separated columns.
type Meter struct {
	ID            string `gorm:"primaryKey;type:varchar(36)"`
	Name          string `gorm:"uniqueIndex:idx_meter_name" json:"name"`
	Aliases       string `json:"aliases"`
	Family        string `json:"family"`
	Pattern       string `json:"pattern"`
	EvenPattern   string `json:"even_pattern"`
	FreePositions string `json:"free_positions"`
	Priority      int    `gorm:"index:idx_meter_priority" json:"priority"`
	Builtin       bool   `json:"builtin"`
	Structure     string `json:"structure"`
	Symbolism     string `json:"symbolism"`
	Deity         string `json:"deity"`
	Meaning       string `json:"meaning"`
	Significance  string `json:"significance"`
	CreatedAt     time.Time
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("CHANDAS_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil && !os.IsExist(err) {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Meter{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	client := &DBClient{DB: db, db: sqlDB}
	if err := client.seedIfEmpty(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return client, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// seedIfEmpty loads the embedded builtin catalogue into a fresh database.
func (c *DBClient) seedIfEmpty() error {
	count, err := c.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defs, err := meter.BuiltinDefinitions()
	if err != nil {
		return err
	}
	rows := make([]Meter, len(defs))
	for i, def := range defs {
		row := fromDefinition(def)
		row.Priority = i
		row.Builtin = true
		rows[i] = row
	}
	if err := c.DB.Create(&rows).Error; err != nil {
		return fmt.Errorf("seeding catalogue: %w", err)
	}
	return nil
}

// RegisterMeter stores a user-defined meter after the existing entries.
func (c *DBClient) RegisterMeter(def meter.Definition) (string, error) {
	if err := def.Validate(); err != nil {
		return "", err
	}
	var existing Meter
	err := c.DB.Where("name = ?", def.Name).First(&existing).Error
	if err == nil {
		return "", fmt.Errorf("meter %q already exists", def.Name)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("querying existing meter: %w", err)
	}

	var maxPriority sql.NullInt64
	if err := c.DB.Model(&Meter{}).Select("MAX(priority)").Scan(&maxPriority).Error; err != nil {
		return "", fmt.Errorf("querying max priority: %w", err)
	}

	row := fromDefinition(def)
	row.Priority = int(maxPriority.Int64) + 1
	if err := c.DB.Create(&row).Error; err != nil {
		return "", fmt.Errorf("creating meter: %w", err)
	}
	return row.ID, nil
}

// GetMeterByName finds a meter by its primary name, case-insensitively.
func (c *DBClient) GetMeterByName(name string) (*Meter, error) {
	var row Meter
	err := c.DB.Where("name = ? COLLATE NOCASE", name).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMeterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying meter: %w", err)
	}
	return &row, nil
}

// ListMeters returns all meters in priority order.
func (c *DBClient) ListMeters() ([]Meter, error) {
	var rows []Meter
	if err := c.DB.Order("priority ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing meters: %w", err)
	}
	return rows, nil
}

// DeleteMeterByName removes a meter. Builtin meters can be removed too; the
// next fresh database gets them back from the seed.
func (c *DBClient) DeleteMeterByName(name string) error {
	res := c.DB.Where("name = ? COLLATE NOCASE", name).Delete(&Meter{})
	if res.Error != nil {
		return fmt.Errorf("deleting meter: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrMeterNotFound
	}
	return nil
}

func (c *DBClient) Count() (int64, error) {
	var count int64
	if err := c.DB.Model(&Meter{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting meters: %w", err)
	}
	return count, nil
}

// LoadCatalogue builds the immutable in-memory catalogue from the stored
// rows. An empty table surfaces meter.ErrEmptyCatalogue.
func (c *DBClient) LoadCatalogue() (*meter.Catalogue, error) {
	rows, err := c.ListMeters()
	if err != nil {
		return nil, err
	}
	defs := make([]meter.Definition, len(rows))
	for i, row := range rows {
		defs[i] = row.Definition()
	}
	return meter.NewCatalogue(defs)
}

// Definition converts a stored row back into a catalogue definition.
func (m *Meter) Definition() meter.Definition {
	def := meter.Definition{
		Name:          m.Name,
		Aliases:       splitList(m.Aliases),
		Family:        meter.Family(m.Family),
		Pattern:       m.Pattern,
		EvenPattern:   m.EvenPattern,
		FreePositions: splitInts(m.FreePositions),
		Priority:      m.Priority,
	}
	if m.Structure != "" || m.Symbolism != "" || m.Deity != "" || m.Meaning != "" || m.Significance != "" {
		def.Info = &meter.CulturalInfo{
			Structure:    m.Structure,
			Symbolism:    m.Symbolism,
			Deity:        m.Deity,
			Meaning:      m.Meaning,
			Significance: m.Significance,
		}
	}
	return def
}

func fromDefinition(def meter.Definition) Meter {
	row := Meter{
		ID:            utils.NewID(),
		Name:          def.Name,
		Aliases:       strings.Join(def.Aliases, ","),
		Family:        string(def.Family),
		Pattern:       def.Pattern,
		EvenPattern:   def.EvenPattern,
		FreePositions: joinInts(def.FreePositions),
		Priority:      def.Priority,
	}
	if def.Info != nil {
		row.Structure = def.Info.Structure
		row.Symbolism = def.Info.Symbolism
		row.Deity = def.Info.Deity
		row.Meaning = def.Info.Meaning
		row.Significance = def.Info.Significance
	}
	return row
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func splitInts(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

func joinInts(ns []int) string {
	if len(ns) == 0 {
		return ""
	}
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

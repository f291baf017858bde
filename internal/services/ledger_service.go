// Package services wires the pieces together: one LedgerService owns the
// record store, the loaded file path, the edit gate and the derived-state
// caches, and exposes the operations the frontends call.
package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"ledgerdesk/internal/backup"
	"ledgerdesk/internal/cache"
	"ledgerdesk/internal/config"
	"ledgerdesk/internal/core"
	"ledgerdesk/internal/engine"
	"ledgerdesk/internal/export"
	"ledgerdesk/internal/log"
	"ledgerdesk/internal/report"
	"ledgerdesk/internal/schema"
	"ledgerdesk/internal/security"
	"ledgerdesk/internal/store"
	"ledgerdesk/internal/tabular"
)

var (
	// ErrEditLocked is returned by mutations attempted before EnableEdit.
	ErrEditLocked = errors.New("editing is locked, authenticate first")
	// ErrNoFile is returned by operations that need a loaded ledger.
	ErrNoFile = errors.New("no ledger file loaded")
)

type LedgerService struct {
	store    *store.Store
	users    *security.Users
	settings *config.SettingsStore
	cfg      *config.Config
	logger   *log.Logger

	domains   *cache.LRUCache[engine.Domains]
	summaries *cache.LRUCache[engine.Summary]

	mu          sync.Mutex
	path        string
	dirty       bool
	editing     bool
	currentUser string
}

func NewLedgerService(cfg *config.Config, users *security.Users, settings *config.SettingsStore, logger *log.Logger) *LedgerService {
	return &LedgerService{
		store:     store.New(),
		users:     users,
		settings:  settings,
		cfg:       cfg,
		logger:    logger.WithComponent(log.ComponentLedger),
		domains:   cache.NewLRUCache[engine.Domains](cfg.CacheSize, cfg.CacheTTL),
		summaries: cache.NewLRUCache[engine.Summary](cfg.CacheSize, cfg.CacheTTL),
	}
}

// Load reads path, converts it through the first matching schema and
// replaces the store contents. On any failure the store keeps whatever it
// held before the call.
func (s *LedgerService) Load(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()

	table, err := tabular.ReadFile(path)
	if err != nil {
		return &core.LoadError{Path: path, Reason: "unreadable file", Err: err}
	}
	records, schemaName, err := schema.Translate(table, path)
	if err != nil {
		return err
	}

	s.store.Replace(records)
	s.invalidate()

	s.mu.Lock()
	s.path = path
	s.dirty = false
	s.mu.Unlock()

	s.pinQuickLoad(path)
	s.logger.Info("ledger loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldPath, path,
		log.FieldSchema, schemaName,
		log.FieldRecordCount, len(records),
		log.FieldDuration, time.Since(start).Milliseconds(),
	)
	return nil
}

// CreateNew writes an empty ledger in the canonical layout and loads it.
func (s *LedgerService) CreateNew(ctx context.Context, path string) error {
	if !tabular.Supported(path) {
		return fmt.Errorf("create %s: %w", path, tabular.ErrUnsupportedFormat)
	}
	if err := tabular.WriteFile(path, schema.Render(nil)); err != nil {
		return fmt.Errorf("creating ledger: %w", err)
	}
	return s.Load(ctx, path)
}

// Save writes the store back to the loaded file, snapshotting the previous
// contents into the backup directory first.
func (s *LedgerService) Save(ctx context.Context) error {
	s.mu.Lock()
	path := s.path
	s.mu.Unlock()
	if path == "" {
		return ErrNoFile
	}
	return s.SaveAs(ctx, path)
}

// SaveAs writes the store to path and makes it the loaded file.
func (s *LedgerService) SaveAs(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		backupPath, err := backup.Create(path)
		if err != nil {
			return fmt.Errorf("backing up before save: %w", err)
		}
		s.logger.Info("backup created",
			log.FieldOperation, log.OpBackup,
			log.FieldPath, path,
			log.FieldBackupPath, backupPath,
		)
	}

	snap := s.store.Snapshot()
	if err := tabular.WriteFile(path, schema.Render(snap.Records)); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}

	s.mu.Lock()
	s.path = path
	s.dirty = false
	s.mu.Unlock()

	s.pinQuickLoad(path)
	s.logger.Info("ledger saved",
		log.FieldOperation, log.OpSave,
		log.FieldPath, path,
		log.FieldRecordCount, len(snap.Records),
		log.FieldRevision, snap.Revision,
	)
	return nil
}

// ExportCSV writes the filtered rows to path.
func (s *LedgerService) ExportCSV(ctx context.Context, path string, spec engine.FilterSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	result := s.Query(spec)
	if err := export.WriteCSV(path, result.Rows); err != nil {
		return err
	}
	s.logger.Info("rows exported",
		log.FieldOperation, log.OpExport,
		log.FieldPath, path,
		log.FieldRecordCount, len(result.Rows),
	)
	return nil
}

// Query evaluates the filters over the current store contents.
func (s *LedgerService) Query(spec engine.FilterSpec) *engine.Result {
	return engine.Query(s.store.Snapshot(), spec)
}

// AvailableValues returns the dropdown domains for the current selection,
// cached per store revision.
func (s *LedgerService) AvailableValues(sel engine.Selection) engine.Domains {
	snap := s.store.Snapshot()
	key := domainKey(snap.Revision, sel)
	if d, ok := s.domains.Get(key); ok {
		return d
	}
	d := engine.AvailableValues(snap, sel)
	s.domains.Set(key, d)
	return d
}

// Summarize aggregates the rows the filters select, cached per store
// revision.
func (s *LedgerService) Summarize(spec engine.FilterSpec) engine.Summary {
	snap := s.store.Snapshot()
	key := summaryKey(snap.Revision, spec)
	if sum, ok := s.summaries.Get(key); ok {
		return sum
	}
	sum := engine.Aggregate(engine.Query(snap, spec).Rows)
	s.summaries.Set(key, sum)
	return sum
}

// ChartFigures builds chart data for the filtered rows.
func (s *LedgerService) ChartFigures(spec engine.FilterSpec) export.ChartData {
	return export.BuildChartData(s.Query(spec).Rows)
}

// BuildReport assembles the printable summary for the filtered rows, using
// the profile from settings as letterhead.
func (s *LedgerService) BuildReport(spec engine.FilterSpec) (report.Report, error) {
	settings, err := s.settings.Load()
	if err != nil {
		return report.Report{}, fmt.Errorf("loading profile: %w", err)
	}
	r := report.Build(s.Query(spec).Rows, report.Profile{
		AdminName:      settings.AdminName,
		AdminRole:      settings.AdminRole,
		CompanyName:    settings.CompanyName,
		CompanyContact: settings.CompanyContact,
	})
	s.logger.Info("report built",
		log.FieldReportID, r.ID.String(),
		log.FieldRecordCount, r.Totals.Count,
	)
	return r, nil
}

// EnableEdit checks the credentials and unlocks mutations.
func (s *LedgerService) EnableEdit(username, password string) error {
	if !s.users.Authenticate(username, password) {
		s.logger.Warn("login rejected", log.FieldOperation, log.OpLogin, log.FieldUser, username)
		return security.ErrBadCredentials
	}
	s.mu.Lock()
	s.editing = true
	s.currentUser = username
	s.mu.Unlock()
	s.logger.Info("editing enabled", log.FieldOperation, log.OpLogin, log.FieldUser, username)
	return nil
}

// DisableEdit locks mutations again.
func (s *LedgerService) DisableEdit() {
	s.mu.Lock()
	s.editing = false
	s.currentUser = ""
	s.mu.Unlock()
}

// Editing reports whether mutations are currently unlocked.
func (s *LedgerService) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing
}

// CurrentUser returns the name that unlocked editing, or "".
func (s *LedgerService) CurrentUser() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser
}

// AddRecord appends a record and returns its ID.
func (s *LedgerService) AddRecord(fields core.Fields) (int64, error) {
	if !s.Editing() {
		return 0, ErrEditLocked
	}
	id := s.store.Add(fields)
	s.markDirty()
	s.logger.Info("record added", log.FieldOperation, log.OpAdd, log.FieldRecordID, id)
	return id, nil
}

// UpdateRecord applies the set fields to an existing record.
func (s *LedgerService) UpdateRecord(id int64, fields core.Fields) error {
	if !s.Editing() {
		return ErrEditLocked
	}
	if err := s.store.Update(id, fields); err != nil {
		return err
	}
	s.markDirty()
	s.logger.Info("record updated", log.FieldOperation, log.OpUpdate, log.FieldRecordID, id)
	return nil
}

// RemoveRecord deletes a record. Removing an unknown ID is a no-op.
func (s *LedgerService) RemoveRecord(id int64) (bool, error) {
	if !s.Editing() {
		return false, ErrEditLocked
	}
	removed := s.store.Remove(id)
	if removed {
		s.markDirty()
		s.logger.Info("record removed", log.FieldOperation, log.OpDelete, log.FieldRecordID, id)
	}
	return removed, nil
}

// RemoveRecords deletes a batch and returns how many existed.
func (s *LedgerService) RemoveRecords(ids []int64) (int, error) {
	if !s.Editing() {
		return 0, ErrEditLocked
	}
	n := s.store.RemoveBatch(ids)
	if n > 0 {
		s.markDirty()
		s.logger.Info("records removed", log.FieldOperation, log.OpDelete, log.FieldRecordCount, n)
	}
	return n, nil
}

// ChangePassword rotates the current user's password.
func (s *LedgerService) ChangePassword(oldPassword, newPassword, confirm string) error {
	s.mu.Lock()
	user := s.currentUser
	s.mu.Unlock()
	if user == "" {
		return ErrEditLocked
	}
	return s.users.SetPassword(user, oldPassword, newPassword, confirm)
}

// RecentBackups lists the newest backups of the loaded file.
func (s *LedgerService) RecentBackups() ([]string, error) {
	s.mu.Lock()
	path := s.path
	s.mu.Unlock()
	if path == "" {
		return nil, ErrNoFile
	}
	return backup.Recent(path, s.cfg.BackupLimit)
}

// QuickLoadFiles returns the pinned ledger paths from settings.
func (s *LedgerService) QuickLoadFiles() []string {
	settings, err := s.settings.Load()
	if err != nil {
		return nil
	}
	var out []string
	for _, p := range settings.QuickLoadFiles {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Path returns the loaded file path, or "".
func (s *LedgerService) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Dirty reports whether there are unsaved changes.
func (s *LedgerService) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Len returns the number of records in the store.
func (s *LedgerService) Len() int {
	return s.store.Len()
}

func (s *LedgerService) markDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
	s.invalidate()
}

func (s *LedgerService) invalidate() {
	s.domains.Purge()
	s.summaries.Purge()
}

func (s *LedgerService) pinQuickLoad(path string) {
	settings, err := s.settings.Load()
	if err != nil {
		s.logger.Warn("cannot read settings", log.FieldError, err.Error())
		return
	}
	settings.Pin(path)
	if err := s.settings.Save(settings); err != nil {
		s.logger.Warn("cannot save settings", log.FieldError, err.Error())
	}
}

func domainKey(revision uint64, sel engine.Selection) string {
	return fmt.Sprintf("%d|%s", revision, strings.Join([]string{
		sel.Report, sel.Year, sel.Month, sel.Category, sel.Merchant, sel.PaidThrough,
	}, "|"))
}

func summaryKey(revision uint64, spec engine.FilterSpec) string {
	return fmt.Sprintf("%d|%s", revision, strings.Join([]string{
		spec.Report, spec.Year, spec.Month, spec.Category, spec.Merchant,
		spec.PaidThrough, spec.Description, spec.DateFrom, spec.DateTo,
		spec.ExpenseMin, spec.ExpenseMax, spec.IncomeMin, spec.IncomeMax,
	}, "|"))
}

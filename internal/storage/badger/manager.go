package badger

import (
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/common"
	"github.com/docugenhq/docugen/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db       *BadgerDB
	template interfaces.TemplateStorage
	job      interfaces.JobStorage
	document interfaces.DocumentStorage
	session  interfaces.SessionStorage
	logger   arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (*Manager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:       db,
		template: NewTemplateStorage(db, logger),
		job:      NewJobStorage(db, logger),
		document: NewDocumentStorage(db, logger),
		session:  NewSessionStorage(db, logger),
		logger:   logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// TemplateStorage returns the Template storage interface
func (m *Manager) TemplateStorage() interfaces.TemplateStorage {
	return m.template
}

// JobStorage returns the Job storage interface
func (m *Manager) JobStorage() interfaces.JobStorage {
	return m.job
}

// DocumentStorage returns the Document storage interface
func (m *Manager) DocumentStorage() interfaces.DocumentStorage {
	return m.document
}

// SessionStorage returns the Session storage interface
func (m *Manager) SessionStorage() interfaces.SessionStorage {
	return m.session
}

// RunValueLogGC triggers one Badger value-log garbage collection pass
func (m *Manager) RunValueLogGC(discardRatio float64) error {
	db := m.db.Badger()
	if db == nil {
		return fmt.Errorf("badger database not open")
	}
	return db.RunValueLogGC(discardRatio)
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

package badger

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/ternarybob/arbor"

	"github.com/docugenhq/docugen/internal/interfaces"
	"github.com/docugenhq/docugen/internal/models"
)

// TemplateFile is the TOML shape of a template seed file
type TemplateFile struct {
	ID           string            `toml:"id"`
	Name         string            `toml:"name"`
	Description  string            `toml:"description"`
	Category     string            `toml:"category"`
	Version      string            `toml:"version"`
	FileName     string            `toml:"file_name"`
	Placeholders []PlaceholderFile `toml:"placeholders"`
}

// PlaceholderFile is the TOML shape of one placeholder entry
type PlaceholderFile struct {
	Key   string `toml:"key"`
	Label string `toml:"label"`
	Type  string `toml:"type"`
}

// ToTemplate converts the file form to the model
func (f *TemplateFile) ToTemplate() *models.Template {
	placeholders := make([]models.Placeholder, 0, len(f.Placeholders))
	for _, p := range f.Placeholders {
		placeholders = append(placeholders, models.Placeholder{
			Key:   p.Key,
			Label: p.Label,
			Type:  models.PlaceholderType(p.Type),
		})
	}
	return &models.Template{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		Category:     f.Category,
		Version:      f.Version,
		FileName:     f.FileName,
		Placeholders: placeholders,
	}
}

// LoadTemplatesFromFiles loads template seed files (TOML) from the specified
// directory into the catalog. Existing templates with the same ID are updated.
func LoadTemplatesFromFiles(ctx context.Context, templateStorage interfaces.TemplateStorage, seedDir string, logger arbor.ILogger) error {
	if _, err := os.Stat(seedDir); os.IsNotExist(err) {
		logger.Debug().Str("dir", seedDir).Msg("Template seed directory does not exist, skipping")
		return nil
	}

	logger.Info().Str("dir", seedDir).Msg("Loading templates from files")

	entries, err := os.ReadDir(seedDir)
	if err != nil {
		return fmt.Errorf("failed to read template seed directory: %w", err)
	}

	loadedCount := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
			continue
		}

		filePath := filepath.Join(seedDir, entry.Name())

		tomlBytes, err := os.ReadFile(filePath)
		if err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to read template seed file")
			continue
		}

		var templateFile TemplateFile
		if err := toml.Unmarshal(tomlBytes, &templateFile); err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to parse template seed TOML")
			continue
		}

		template := templateFile.ToTemplate()
		if err := template.Validate(); err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Template seed validation failed, skipping")
			continue
		}

		if err := templateStorage.StoreTemplate(ctx, template); err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Str("template_id", template.ID).Msg("Failed to store template")
			continue
		}

		logger.Info().Str("file", entry.Name()).Str("template_id", template.ID).Str("name", template.Name).Msg("Template loaded from file")
		loadedCount++
	}

	if loadedCount > 0 {
		logger.Info().Int("count", loadedCount).Msg("Templates loaded from files")
	} else {
		logger.Debug().Msg("No templates loaded from files")
	}

	return nil
}

// SeedDefaultTemplates installs the compiled-in demo catalog when the catalog
// is empty. Seed IDs are fixed so repeated startups do not duplicate entries.
func SeedDefaultTemplates(ctx context.Context, templateStorage interfaces.TemplateStorage, logger arbor.ILogger) error {
	count, err := templateStorage.CountTemplates(ctx)
	if err != nil {
		return fmt.Errorf("failed to count templates: %w", err)
	}
	if count > 0 {
		logger.Debug().Int("count", count).Msg("Template catalog not empty, skipping default seed")
		return nil
	}

	for _, template := range DefaultTemplates() {
		if err := templateStorage.StoreTemplate(ctx, template); err != nil {
			return fmt.Errorf("failed to seed template %s: %w", template.ID, err)
		}
		logger.Info().Str("template_id", template.ID).Str("name", template.Name).Msg("Default template seeded")
	}

	return nil
}

// DefaultTemplates returns the compiled-in demo catalog
func DefaultTemplates() []*models.Template {
	return []*models.Template{
		{
			ID:          "template-001",
			Name:        "Non-Disclosure Agreement (NDA)",
			Description: "Standard mutual non-disclosure agreement.",
			Category:    "Legal Agreements",
			Version:     "1.2",
			FileName:    "nda_v1.2.docx",
			UploadDate:  time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			Placeholders: []models.Placeholder{
				{Key: "{{PartyAName}}", Label: "Party A Name", Type: models.PlaceholderTypeText},
				{Key: "{{PartyBName}}", Label: "Party B Name", Type: models.PlaceholderTypeText},
				{Key: "{{EffectiveDate}}", Label: "Effective Date", Type: models.PlaceholderTypeDate},
				{Key: "{{Term}}", Label: "Term (e.g., 5 years)", Type: models.PlaceholderTypeText},
				{Key: "{{GoverningLaw}}", Label: "Governing Law (e.g., State of California)", Type: models.PlaceholderTypeText},
			},
		},
		{
			ID:          "template-002",
			Name:        "Service Contract",
			Description: "Contract for providing services to a client.",
			Category:    "Client Contracts",
			Version:     "2.0",
			FileName:    "service_contract_v2.0.docx",
			UploadDate:  time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
			Placeholders: []models.Placeholder{
				{Key: "{{ClientName}}", Label: "Client Name", Type: models.PlaceholderTypeText},
				{Key: "{{ServiceProviderName}}", Label: "Service Provider Name", Type: models.PlaceholderTypeText},
				{Key: "{{ServiceDescription}}", Label: "Description of Services", Type: models.PlaceholderTypeText},
				{Key: "{{StartDate}}", Label: "Start Date", Type: models.PlaceholderTypeDate},
				{Key: "{{EndDate}}", Label: "End Date (Optional)", Type: models.PlaceholderTypeDate},
				{Key: "{{PaymentTerms}}", Label: "Payment Terms", Type: models.PlaceholderTypeText},
				{Key: "{{TotalFee}}", Label: "Total Fee", Type: models.PlaceholderTypeNumber},
			},
		},
		{
			ID:          "template-003",
			Name:        "Public Deed of Sale",
			Description: "Template for a public deed of sale for property.",
			Category:    "Real Estate",
			Version:     "1.0",
			FileName:    "deed_of_sale_v1.0.docx",
			UploadDate:  time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC),
			Placeholders: []models.Placeholder{
				{Key: "{{VendorName}}", Label: "Vendor Name", Type: models.PlaceholderTypeText},
				{Key: "{{VendeeName}}", Label: "Vendee Name", Type: models.PlaceholderTypeText},
				{Key: "{{PropertyDescription}}", Label: "Property Description", Type: models.PlaceholderTypeText},
				{Key: "{{SalePrice}}", Label: "Sale Price", Type: models.PlaceholderTypeNumber},
				{Key: "{{NotaryPublic}}", Label: "Notary Public Name", Type: models.PlaceholderTypeText},
				{Key: "{{DateOfNotarization}}", Label: "Date of Notarization", Type: models.PlaceholderTypeDate},
			},
		},
	}
}

// DefaultPlaceholders is the placeholder set assumed for uploads whose
// contents cannot be inspected
func DefaultPlaceholders() []models.Placeholder {
	return []models.Placeholder{
		{Key: "{{DocumentTitle}}", Label: "Document Title", Type: models.PlaceholderTypeText},
		{Key: "{{PreparedFor}}", Label: "Prepared For", Type: models.PlaceholderTypeText},
		{Key: "{{PreparedBy}}", Label: "Prepared By", Type: models.PlaceholderTypeText},
		{Key: "{{Date}}", Label: "Date", Type: models.PlaceholderTypeDate},
	}
}

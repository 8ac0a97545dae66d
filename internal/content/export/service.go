package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tdnguyen/apologia/internal/platform/apperr"
)

// Sheet and filename layout of the exported workbook.
const (
	sheetReligions = "Religions"
	sheetTopics    = "Topics"
	sheetDetails   = "Topic Details"

	filenamePattern = "apologia-content-%s.xlsx"
	timestampLayout = "2006-01-02"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Filename returns the attachment name for today's export.
func Filename() string {
	return fmt.Sprintf(filenamePattern, time.Now().Format(timestampLayout))
}

// Workbook builds the full-catalogue XLSX: one sheet per content level with
// a header row each. The caller owns the file and must Close it.
func (service *Service) Workbook(context context.Context) (*excelize.File, error) {
	religions, err := service.repo.AllReligions(context)
	if err != nil {
		return nil, err
	}
	topics, err := service.repo.AllTopics(context)
	if err != nil {
		return nil, err
	}
	details, err := service.repo.AllDetails(context)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()

	if err := writeReligionSheet(file, religions); err != nil {
		_ = file.Close()
		return nil, apperr.Internal(err)
	}
	if err := writeTopicSheet(file, topics); err != nil {
		_ = file.Close()
		return nil, apperr.Internal(err)
	}
	if err := writeDetailSheet(file, details); err != nil {
		_ = file.Close()
		return nil, apperr.Internal(err)
	}

	// excelize seeds new files with a default "Sheet1".
	if err := file.DeleteSheet("Sheet1"); err != nil {
		_ = file.Close()
		return nil, apperr.Internal(err)
	}

	service.logger.Info("content_exported",
		slog.Int("religions", len(religions)),
		slog.Int("topics", len(topics)),
		slog.Int("topic_details", len(details)),
	)
	return file, nil
}

func writeReligionSheet(file *excelize.File, religions []ReligionRow) error {
	if _, err := file.NewSheet(sheetReligions); err != nil {
		return err
	}

	header := []any{"ID", "Name", "Name (EN)", "Slug", "Color", "Status", "Updated At"}
	if err := file.SetSheetRow(sheetReligions, "A1", &header); err != nil {
		return err
	}

	for index, religion := range religions {
		cell := fmt.Sprintf("A%d", index+2)
		row := []any{
			religion.ID, religion.Name, religion.NameEn, religion.Slug,
			religion.Color, string(religion.SyncStatus), religion.UpdatedAt.Format(time.RFC3339),
		}
		if err := file.SetSheetRow(sheetReligions, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTopicSheet(file *excelize.File, topics []TopicRow) error {
	if _, err := file.NewSheet(sheetTopics); err != nil {
		return err
	}

	header := []any{"ID", "Religion", "Title", "Title (EN)", "Slug", "Status", "Updated At"}
	if err := file.SetSheetRow(sheetTopics, "A1", &header); err != nil {
		return err
	}

	for index, topic := range topics {
		cell := fmt.Sprintf("A%d", index+2)
		row := []any{
			topic.ID, topic.ReligionName, topic.Title, topic.TitleEn,
			topic.Slug, string(topic.SyncStatus), topic.UpdatedAt.Format(time.RFC3339),
		}
		if err := file.SetSheetRow(sheetTopics, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeDetailSheet(file *excelize.File, details []DetailRow) error {
	if _, err := file.NewSheet(sheetDetails); err != nil {
		return err
	}

	header := []any{"ID", "Topic", "Explanation", "Bible Verses", "Key Points", "Version", "Status", "Updated At"}
	if err := file.SetSheetRow(sheetDetails, "A1", &header); err != nil {
		return err
	}

	for index, detail := range details {
		cell := fmt.Sprintf("A%d", index+2)
		row := []any{
			detail.ID, detail.TopicTitle, detail.Explanation,
			strings.Join(detail.BibleVerses, "\n"), strings.Join(detail.KeyPoints, "\n"),
			detail.Version, string(detail.SyncStatus), detail.UpdatedAt.Format(time.RFC3339),
		}
		if err := file.SetSheetRow(sheetDetails, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

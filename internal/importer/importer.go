package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"foodexpress/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

type CategoryWriter interface {
	Upsert(ctx context.Context, category domain.Category) (*domain.Category, error)
}

// CSVImporter reads menu CSV files and upserts categories and products.
//
// Expected headers: category,name,description,price,image_url. Column order is
// free and description/image_url may be omitted.
type CSVImporter struct {
	reader       *csv.Reader
	productRepo  ProductWriter
	categoryRepo CategoryWriter
	logger       *zap.Logger
	categoryIDs  map[string]int64
}

func NewCSVImporter(r io.Reader, products ProductWriter, categories CategoryWriter, logger *zap.Logger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CSVImporter{
		reader:       csvr,
		productRepo:  products,
		categoryRepo: categories,
		logger:       logger,
		categoryIDs:  make(map[string]int64),
	}
}

type csvRow struct {
	line        int
	Category    string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

// Run parses CSV rows and upserts one product per row.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"category", "name", "price"} {
		if _, ok := index[required]; !ok {
			return 0, fmt.Errorf("missing %q column", required)
		}
	}

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		row, err := parseRow(record, index, line)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}
		if err := i.save(ctx, row); err != nil {
			return imported, err
		}
		imported++
	}

	i.logger.Info("catalog import finished",
		zap.Int("products", imported),
		zap.Int("categories", len(i.categoryIDs)))
	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, row *csvRow) error {
	categoryID, err := i.category(ctx, row.Category)
	if err != nil {
		return err
	}
	_, err = i.productRepo.Upsert(ctx, domain.Product{
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		ImageURL:    row.ImageURL,
		CategoryID:  categoryID,
	})
	if err != nil {
		return fmt.Errorf("upsert product %q (line %d): %w", row.Name, row.line, err)
	}
	return nil
}

func (i *CSVImporter) category(ctx context.Context, name string) (int64, error) {
	if id, ok := i.categoryIDs[name]; ok {
		return id, nil
	}
	c, err := i.categoryRepo.Upsert(ctx, domain.Category{Name: name})
	if err != nil {
		return 0, fmt.Errorf("upsert category %q: %w", name, err)
	}
	i.categoryIDs[name] = c.ID
	return c.ID, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

// parseRow returns nil for blank rows.
func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	category := pick(record, index, "category")
	name := pick(record, index, "name")
	priceStr := pick(record, index, "price")

	if category == "" && name == "" && priceStr == "" {
		return nil, nil
	}
	if category == "" || name == "" || priceStr == "" {
		return nil, fmt.Errorf("line %d: category, name and price are required", line)
	}
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid price %q: %w", line, priceStr, err)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("line %d: price must be positive, got %s", line, priceStr)
	}

	return &csvRow{
		line:        line,
		Category:    category,
		Name:        name,
		Description: pick(record, index, "description"),
		Price:       price.Round(2),
		ImageURL:    pick(record, index, "image_url"),
	}, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

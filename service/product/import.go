/*
 * @module service/product/import
 * @description 产品 CSV 批量导入，支持分号/逗号分隔与 Windows-1252 编码
 * @architecture 分层架构 - 业务服务层
 * @documentReference dev_docs/requirements.md
 * @stateFlow 读取 -> 解码 -> 逐行解析 -> 按编码新增或更新
 * @rules 列顺序固定为 code;ean;description;category;business_unit；单行失败不影响其他行
 * @dependencies golang.org/x/text/encoding/charmap, golang.org/x/text/transform
 * @refs service/product/service.go
 */

package product

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"inspection-service/service/models"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// 支持的文件编码
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// ErrUnsupportedEncoding 不支持的文件编码
var ErrUnsupportedEncoding = errors.New("不支持的文件编码")

// LineError 单行导入错误
type LineError struct {
	Line  int    `json:"line"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error"`
}

// ImportResult 导入结果
type ImportResult struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Failed  int         `json:"failed"`
	Errors  []LineError `json:"errors"`
}

// ImportCSV 导入产品 CSV
func (s *Service) ImportCSV(ctx context.Context, r io.Reader, encoding string) (*ImportResult, error) {
	decoded, err := decodeReader(r, encoding)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("读取导入文件失败: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{Errors: []LineError{}}
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.fail(line, "", err)
			continue
		}
		if line == 1 && isHeader(record) {
			continue
		}
		if isBlank(record) {
			continue
		}

		p, err := parseRecord(record)
		if err != nil {
			result.fail(line, firstField(record), err)
			continue
		}

		created, err := s.upsert(ctx, p)
		if err != nil {
			result.fail(line, p.Code, err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	slog.Info("产品导入完成", "created", result.Created, "updated", result.Updated, "failed", result.Failed)
	return result, nil
}

func (r *ImportResult) fail(line int, code string, err error) {
	r.Failed++
	r.Errors = append(r.Errors, LineError{Line: line, Code: code, Error: err.Error()})
}

func (s *Service) upsert(ctx context.Context, p *models.Product) (bool, error) {
	existing, err := s.GetByCode(ctx, p.Code)
	switch {
	case errors.Is(err, ErrProductNotFound):
		if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
			return false, fmt.Errorf("创建产品失败: %w", err)
		}
		return true, nil
	case err != nil:
		return false, err
	}

	updates := map[string]interface{}{
		"ean":           p.EAN,
		"description":   p.Description,
		"category":      p.Category,
		"business_unit": p.BusinessUnit,
	}
	if err := s.db.WithContext(ctx).Model(existing).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("更新产品失败: %w", err)
	}
	return false, nil
}

func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf8":
		return r, nil
	case EncodingWindows1252, "cp1252", "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, encoding)
	}
}

// 以首个非空行中出现更多的分隔符为准
func detectDelimiter(data []byte) rune {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		first := scanner.Text()
		if strings.TrimSpace(first) == "" {
			continue
		}
		if strings.Count(first, ";") >= strings.Count(first, ",") && strings.Contains(first, ";") {
			return ';'
		}
		return ','
	}
	return ';'
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "code")
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func firstField(record []string) string {
	if len(record) == 0 {
		return ""
	}
	return strings.TrimSpace(record[0])
}

func parseRecord(record []string) (*models.Product, error) {
	if len(record) < 4 {
		return nil, fmt.Errorf("%w: 列数不足，期望 code;ean;description;category[;business_unit]", ErrInvalidProduct)
	}
	p := &models.Product{
		Code:        record[0],
		EAN:         record[1],
		Description: record[2],
		Category:    record[3],
	}
	if len(record) > 4 {
		p.BusinessUnit = record[4]
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

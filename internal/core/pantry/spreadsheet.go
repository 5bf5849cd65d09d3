package pantry

import (
	"fmt"
	"io"
	"net/http"

	"lumine-kitchen/internal/pkg/common"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DefaultProductColumn 預設的品名欄位標題
const DefaultProductColumn = "Product Name"

// LoadProductNames 讀取 .xlsx 工作簿第一個工作表中指定欄位的品名。
// 空儲存格略過；重複品名只保留第一次出現，維持出現順序
func LoadProductNames(r io.Reader, column string) ([]string, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInvalidWorkbook,
			"Unable to read workbook",
			http.StatusBadRequest,
			err,
		)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, common.NewValidationError("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInvalidWorkbook,
			"Unable to read workbook",
			http.StatusBadRequest,
			err,
		)
	}
	if len(rows) == 0 {
		return nil, common.NewValidationError("workbook is empty")
	}

	// 在標題列尋找品名欄
	columnIndex := -1
	for i, header := range rows[0] {
		if header == column {
			columnIndex = i
			break
		}
	}
	if columnIndex == -1 {
		return nil, common.NewValidationError(fmt.Sprintf("column %q not found in workbook", column))
	}

	seen := make(map[string]bool)
	names := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if columnIndex >= len(row) {
			continue
		}
		name := row[columnIndex]
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	common.LogInfo("讀取品項清單",
		zap.String("sheet", sheets[0]),
		zap.Int("rows", len(rows)-1),
		zap.Int("products", len(names)),
	)

	return names, nil
}

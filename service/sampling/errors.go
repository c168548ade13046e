package sampling

import "errors"

// 抽样引擎错误分类，调用方使用 errors.Is 判断
var (
	// ErrInvalidLotSize 批量缺失、为零或为负
	ErrInvalidLotSize = errors.New("invalid lot size")
	// ErrInvalidInspectionLevel 检验水平不在 I/II/III 之内
	ErrInvalidInspectionLevel = errors.New("invalid inspection level")
	// ErrNoMatchingLotSizeRange 字码表未覆盖该批量，属于配置错误
	ErrNoMatchingLotSizeRange = errors.New("no matching lot size range")
	// ErrInvalidCodeTable 字码表结构非法：空表、不从 1 开始、空隙、重叠、末行有上限或字码不单调
	ErrInvalidCodeTable = errors.New("invalid lot size code table")
	// ErrUnknownSampleSizeCode 字码或样本量不在标准表中
	ErrUnknownSampleSizeCode = errors.New("unknown sample size code")
	// ErrUnsupportedAQLValue AQL 不在支持的列中
	ErrUnsupportedAQLValue = errors.New("unsupported AQL value")
	// ErrInvalidDefectCount 缺陷数为负
	ErrInvalidDefectCount = errors.New("invalid defect count")
)

// IsInputError 是否为调用方输入导致的错误（对应 400）
func IsInputError(err error) bool {
	if errors.Is(err, ErrInvalidCodeTable) {
		return false
	}
	return errors.Is(err, ErrInvalidLotSize) ||
		errors.Is(err, ErrInvalidInspectionLevel) ||
		errors.Is(err, ErrUnknownSampleSizeCode) ||
		errors.Is(err, ErrUnsupportedAQLValue) ||
		errors.Is(err, ErrInvalidDefectCount)
}

package sampling

import "fmt"

// QuantityStatus 实检数量与样本量的比较结果
type QuantityStatus string

const (
	QuantityEqual QuantityStatus = "equal"
	QuantityBelow QuantityStatus = "below"
	QuantityAbove QuantityStatus = "above"
)

// CheckInspectedQuantity 比较实检数量与样本量。低于样本量需要检验员确认后才能继续。
func CheckInspectedQuantity(sampleSize, inspected int) (QuantityStatus, error) {
	if inspected < 0 {
		return "", fmt.Errorf("%w: 实检数量 %d", ErrInvalidDefectCount, inspected)
	}
	switch {
	case inspected == sampleSize:
		return QuantityEqual, nil
	case inspected < sampleSize:
		return QuantityBelow, nil
	default:
		return QuantityAbove, nil
	}
}

// 印刷品/包装检验的子样本比例
const (
	graphicSamplePercent  = 30
	photoSamplePercent    = 20
	photoFieldsPerProduct = 3
)

// GraphicInspectionPlan 印刷品检验子样本
type GraphicInspectionPlan struct {
	GraphicSample    int `json:"graphic_sample" example:"10"`
	PhotoSample      int `json:"photo_sample" example:"2"`
	TotalPhotoFields int `json:"total_photo_fields" example:"6"`
}

// GraphicInspection 印刷品检验取样本的 30%（向上取整），拍照取其 20%（至少 1 件），每件 3 个照片位
func GraphicInspection(sampleSize int) (GraphicInspectionPlan, error) {
	if sampleSize <= 0 {
		return GraphicInspectionPlan{}, fmt.Errorf("%w: 样本量 %d", ErrInvalidLotSize, sampleSize)
	}
	graphic := ceilPercent(sampleSize, graphicSamplePercent)
	photo := ceilPercent(graphic, photoSamplePercent)
	if photo < 1 {
		photo = 1
	}
	return GraphicInspectionPlan{
		GraphicSample:    graphic,
		PhotoSample:      photo,
		TotalPhotoFields: photo * photoFieldsPerProduct,
	}, nil
}

// BonificationGraphicInspection 赠品批的印刷品子样本比例不变，但只需 1 件拍照，与批量无关
func BonificationGraphicInspection(sampleSize int) (GraphicInspectionPlan, error) {
	plan, err := GraphicInspection(sampleSize)
	if err != nil {
		return GraphicInspectionPlan{}, err
	}
	plan.PhotoSample = 1
	plan.TotalPhotoFields = photoFieldsPerProduct
	return plan, nil
}

func ceilPercent(n, percent int) int {
	return (n*percent + 99) / 100
}

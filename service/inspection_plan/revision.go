package inspection_plan

import (
	"encoding/json"

	"inspection-service/service/models"
)

// mergeEditable 将请求中非零的可编辑字段合并到计划
func mergeEditable(dst, src *models.InspectionPlan) {
	if src == nil {
		return
	}
	if src.PlanName != "" {
		dst.PlanName = src.PlanName
	}
	if src.PlanType != "" {
		dst.PlanType = src.PlanType
	}
	if src.ProductID != "" {
		dst.ProductID = src.ProductID
	}
	if src.BusinessUnit != "" {
		dst.BusinessUnit = src.BusinessUnit
	}
	if src.InspectionType != "" {
		dst.InspectionType = src.InspectionType
	}
	if src.SamplingMethod != "" {
		dst.SamplingMethod = src.SamplingMethod
	}
	if src.InspectionLevel != "" {
		dst.InspectionLevel = src.InspectionLevel
	}
	// 致命 AQL 只能为 0，非零值交给校验拒绝
	dst.AQLCritical = src.AQLCritical
	if src.AQLMajor != 0 {
		dst.AQLMajor = src.AQLMajor
	}
	if src.AQLMinor != 0 {
		dst.AQLMinor = src.AQLMinor
	}
	if src.InspectionSteps != nil {
		dst.InspectionSteps = src.InspectionSteps
	}
	if src.Checklists != nil {
		dst.Checklists = src.Checklists
	}
	if src.RequiredParameters != nil {
		dst.RequiredParameters = src.RequiredParameters
	}
}

// diffPlans 返回变更字段 {field: {from, to}}
func diffPlans(before, after *models.InspectionPlan) models.JSONB {
	diff := models.JSONB{}
	record := func(field string, from, to interface{}) {
		if !sameJSON(from, to) {
			diff[field] = map[string]interface{}{"from": from, "to": to}
		}
	}

	record("plan_name", before.PlanName, after.PlanName)
	record("plan_type", before.PlanType, after.PlanType)
	record("product_id", before.ProductID, after.ProductID)
	record("business_unit", before.BusinessUnit, after.BusinessUnit)
	record("inspection_type", before.InspectionType, after.InspectionType)
	record("sampling_method", before.SamplingMethod, after.SamplingMethod)
	record("inspection_level", before.InspectionLevel, after.InspectionLevel)
	record("aql_critical", before.AQLCritical, after.AQLCritical)
	record("aql_major", before.AQLMajor, after.AQLMajor)
	record("aql_minor", before.AQLMinor, after.AQLMinor)
	record("inspection_steps", before.InspectionSteps, after.InspectionSteps)
	record("checklists", before.Checklists, after.Checklists)
	record("required_parameters", before.RequiredParameters, after.RequiredParameters)
	return diff
}

func sameJSON(a, b interface{}) bool {
	left, errA := json.Marshal(a)
	right, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(left) == string(right)
}

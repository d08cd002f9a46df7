package repository

import (
	"github.com/ssc-spc/bitsmcp/internal/brquery/model"
	"github.com/ssc-spc/bitsmcp/internal/common/bitserrors"
)

// Column of the BR table holding the status id; filtered through the statuses
// list of a query, never through query_filters.
const statusIdCol = "STATUS_ID"

// totalCountCol is computed by the query builder, not stored.
const totalCountCol = "TotalCount"

const extractionDateCol = "EXTRACTION_DATE"

type fieldType int

const (
	fieldTypeString fieldType = iota
	fieldTypeNumber
	fieldTypeDate
)

type fieldDef struct {
	column      string
	description string
	fieldType   fieldType
	isUserField bool
}

// BRFields is the allow-list of searchable business request fields. Filter
// names must resolve through it before a query is built; it is the control
// preventing identifier injection.
type BRFields struct {
	// field name -> definition
	fields map[string]fieldDef
	// field names in table column order
	order []string
	// field type -> set of supported operators
	supportedOperators map[fieldType]map[string]bool
}

func NewBRFields() *BRFields {
	defs := []struct {
		name        string
		description string
		fieldType   fieldType
		isUserField bool
	}{
		{"BR_NMBR", "Business request number", fieldTypeNumber, false},
		{"EXTRACTION_DATE", "Date the data was extracted", fieldTypeDate, false},
		{"LEAD_PRODUCT_EN", "The Lead Product associated with the BR in English", fieldTypeString, false},
		{"LEAD_PRODUCT_FR", "The Lead Product associated with the BR in French", fieldTypeString, false},
		{"BR_SHORT_TITLE", "Title which relates to the Business Request (BR)", fieldTypeString, false},
		{"RPT_GC_ORG_NAME_EN", "The primary partner/client requesting the BR in English", fieldTypeString, false},
		{"RPT_GC_ORG_NAME_FR", "The primary partner/client requesting the BR in French", fieldTypeString, false},
		{"ORG_TYPE_EN", "Organization type in English", fieldTypeString, false},
		{"ORG_TYPE_FR", "Organization type in French", fieldTypeString, false},
		{"BR_TYPE_EN", "BR type in English", fieldTypeString, false},
		{"BR_TYPE_FR", "BR type in French", fieldTypeString, false},
		{"PRIORITY_EN", "The priority of the request in English", fieldTypeString, false},
		{"PRIORITY_FR", "The priority of the request in French", fieldTypeString, false},
		{"CPLX_EN", "The complexity of the BR in English", fieldTypeString, false},
		{"CPLX_FR", "The complexity of the BR in French", fieldTypeString, false},
		{"SCOPE_EN", "Scope of the BR in English", fieldTypeString, false},
		{"SCOPE_FR", "Scope of the BR in French", fieldTypeString, false},
		{"CLIENT_SUBGRP_EN", "Client subgroup in English", fieldTypeString, false},
		{"CLIENT_SUBGRP_FR", "Client subgroup in French", fieldTypeString, false},
		{"GROUP_EN", "Group in English", fieldTypeString, false},
		{"GROUP_FR", "Group in French", fieldTypeString, false},
		{"ASSOC_BRS", "Associated BRs", fieldTypeString, false},
		{"BR_ACTIVE_EN", "Active status of the BR in English", fieldTypeString, false},
		{"BR_ACTIVE_FR", "Active status of the BR in French", fieldTypeString, false},
		{"ACC_MANAGER_OPI", "Account Manager OPI", fieldTypeString, true},
		{"AGR_OPI", "Agreement OPI", fieldTypeString, true},
		{"BA_OPI", "Business Analyst OPI", fieldTypeString, true},
		{"BA_PRICING_OPI", "Business Analyst Pricing OPI", fieldTypeString, true},
		{"BA_PRICING_TL", "Business Analyst Pricing Team Lead", fieldTypeString, true},
		{"BA_TL", "Business Analyst Team Lead", fieldTypeString, true},
		{"CSM_DIRECTOR", "Client Executive", fieldTypeString, true},
		{"EAOPI", "EA OPI/BPR AE", fieldTypeString, true},
		{"PM_OPI", "PM Coordinator", fieldTypeString, true},
		{"QA_OPI", "QA OPI", fieldTypeString, true},
		{"SDM_TL_OPI", "Service Delivery Manager Team Lead", fieldTypeString, true},
		{"TEAMLEADER", "Team Leader", fieldTypeString, true},
		{"WIO_OPI", "WIO OPI", fieldTypeString, true},
		{"GCIT_CAT_EN", "GCIT Category in English", fieldTypeString, false},
		{"GCIT_CAT_FR", "GCIT Category in French", fieldTypeString, false},
		{"GCIT_PRIORITY_EN", "GCIT Priority in English", fieldTypeString, false},
		{"GCIT_PRIORITY_FR", "GCIT Priority in French", fieldTypeString, false},
		{"IO_ID", "IO ID", fieldTypeString, false},
		{"EPS_NMBR", "EPS Number", fieldTypeString, false},
		{"ECD_NMBR", "ECD Number", fieldTypeString, false},
		{"PROD_OPI", "Production OPI", fieldTypeString, true},
		{"PHASE_EN", "Phase in English", fieldTypeString, false},
		{"PHASE_FR", "Phase in French", fieldTypeString, false},
		{"BR_OWNER", "The OPI responsible for the BR", fieldTypeString, true},
		{"REQST_IMPL_DATE", "Requested implementation date", fieldTypeDate, false},
		{"SUBMIT_DATE", "Date the BR was created in BITS", fieldTypeDate, false},
		{"RVSD_TARGET_IMPL_DATE", "Revised target implementation date", fieldTypeDate, false},
		{"ACTUAL_IMPL_DATE", "Actual implementation date", fieldTypeDate, false},
		{"AGRMT_END_DATE", "Agreement end date", fieldTypeDate, false},
		{"PRPO_TARGET_DATE", "PRPO target date", fieldTypeDate, false},
		{"IMPL_SGNOFF_DATE", "Implementation sign-off date", fieldTypeDate, false},
		{"CLIENT_REQST_SOL_DATE", "Client requested solution date", fieldTypeDate, false},
		{"TARGET_IMPL_DATE", "Target implementation date", fieldTypeDate, false},
	}

	fields := make(map[string]fieldDef, len(defs))
	order := make([]string, 0, len(defs))
	for _, def := range defs {
		fields[def.name] = fieldDef{
			column:      def.name,
			description: def.description,
			fieldType:   def.fieldType,
			isUserField: def.isUserField,
		}
		order = append(order, def.name)
	}

	return &BRFields{
		fields: fields,
		order:  order,
		supportedOperators: map[fieldType]map[string]bool{
			fieldTypeString: {
				model.OperatorEqual:    true,
				model.OperatorNotEqual: true,
				model.OperatorLike:     true,
				model.OperatorIn:       true,
			},
			fieldTypeNumber: {
				model.OperatorEqual:                true,
				model.OperatorNotEqual:             true,
				model.OperatorLessThan:             true,
				model.OperatorGreaterThan:          true,
				model.OperatorLessThanOrEqualTo:    true,
				model.OperatorGreaterThanOrEqualTo: true,
				model.OperatorIn:                   true,
			},
			fieldTypeDate: {
				model.OperatorEqual:                true,
				model.OperatorNotEqual:             true,
				model.OperatorLessThan:             true,
				model.OperatorGreaterThan:          true,
				model.OperatorLessThanOrEqualTo:    true,
				model.OperatorGreaterThanOrEqualTo: true,
			},
		},
	}
}

// ColumnFromField resolves a field name to its table column, failing for
// anything outside the allow-list.
func (f *BRFields) ColumnFromField(field string) (string, error) {
	def, ok := f.fields[field]
	if !ok {
		return "", &bitserrors.ErrInvalidFilter{Field: field, Message: "field is not searchable"}
	}
	return def.column, nil
}

// SupportsOperator reports whether the given operator can be applied to the
// given (known) field.
func (f *BRFields) SupportsOperator(field string, operator string) bool {
	def, ok := f.fields[field]
	if !ok {
		return false
	}
	return f.supportedOperators[def.fieldType][operator]
}

func (f *BRFields) IsDateField(field string) bool {
	def, ok := f.fields[field]
	return ok && def.fieldType == fieldTypeDate
}

func (f *BRFields) IsNumericField(field string) bool {
	def, ok := f.fields[field]
	return ok && def.fieldType == fieldTypeNumber
}

// Columns returns all table columns in stable order, for use as a select list.
func (f *BRFields) Columns() []string {
	columns := make([]string, 0, len(f.order)+2)
	for _, name := range f.order {
		columns = append(columns, f.fields[name].column)
	}
	// Status names are returned with each row but are not searchable through
	// query_filters; statuses have their own request parameter.
	columns = append(columns, "BITS_STATUS_EN", "BITS_STATUS_FR")
	return columns
}

// FieldInfos describes every searchable field, for the valid search fields
// tool.
func (f *BRFields) FieldInfos() []model.FieldInfo {
	infos := make([]model.FieldInfo, 0, len(f.order))
	for _, name := range f.order {
		def := f.fields[name]
		infos = append(infos, model.FieldInfo{
			Name:        name,
			Description: def.description,
			IsUserField: def.isUserField,
			IsDate:      def.fieldType == fieldTypeDate,
		})
	}
	return infos
}

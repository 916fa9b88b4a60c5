package records

import (
	"strconv"

	"pet-community-client/internal/platform/httpclient"
	"pet-community-client/internal/platform/logger"
)

// WeightRecord es una medición de peso.
type WeightRecord struct {
	ID     string
	Weight float64
	Unit   string
	Date   string
}

type WeightRecordForm struct {
	Weight float64
	Unit   string
	Date   string
}

func weightDescriptor() Descriptor[WeightRecord, WeightRecordForm] {
	return Descriptor[WeightRecord, WeightRecordForm]{
		Name: "weight record",
		Kind: KindWeight,
		Collection: func(petID string) string {
			return "/pets/" + petID + "/medical-records/weights"
		},
		Item: func(petID, recordID string) string {
			return "/pets/" + petID + "/medical-records/weights/" + recordID
		},
		Rules: []Rule{
			{Target: "id", Sources: []string{"id", "_id", "recordId"}},
			{Target: "weight", Sources: []string{"weight", "value", "weightValue"}, Default: "0"},
			{Target: "unit", Sources: []string{"unit", "weightUnit"}, Default: "kg"},
			{Target: "date", Sources: []string{"date", "measuredAt", "measurementDate"}, Default: NotSpecified},
		},
		Build: func(f map[string]string) WeightRecord {
			// peso no parseable cuenta como 0; la UI lo muestra como dato faltante
			w, _ := strconv.ParseFloat(f["weight"], 64)
			return WeightRecord{
				ID:     f["id"],
				Weight: w,
				Unit:   f["unit"],
				Date:   f["date"],
			}
		},
		Payload: func(f WeightRecordForm) map[string]any {
			return map[string]any{
				"weight": f.Weight,
				"unit":   f.Unit,
				"date":   f.Date,
			}
		},
		FormFields: func(f WeightRecordForm) map[string]string {
			fields := map[string]string{
				"unit": f.Unit,
				"date": f.Date,
			}
			if f.Weight > 0 {
				fields["weight"] = strconv.FormatFloat(f.Weight, 'f', -1, 64)
			}
			return fields
		},
	}
}

func NewWeightRecordService(transport *httpclient.Client, log logger.Logger) *Service[WeightRecord, WeightRecordForm] {
	return NewService(weightDescriptor(), transport, log)
}

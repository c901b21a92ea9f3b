package mappers

import (
	"tzsync/internal/domain/preference"
	"tzsync/internal/infrastructure/persistence/models"
)

// TimezoneMapper converts between preference records and timezone rows
type TimezoneMapper interface {
	ToDomain(model *models.TimezoneModel) *preference.Record
	ToDomainList(modelList []*models.TimezoneModel) []*preference.Record
}

// TimezoneMapperImpl implements TimezoneMapper
type TimezoneMapperImpl struct{}

// NewTimezoneMapper creates a new TimezoneMapper
func NewTimezoneMapper() TimezoneMapper {
	return &TimezoneMapperImpl{}
}

func (m *TimezoneMapperImpl) ToDomain(model *models.TimezoneModel) *preference.Record {
	if model == nil {
		return nil
	}

	var tz *string
	if model.Timezone != nil {
		v := *model.Timezone
		tz = &v
	}

	return &preference.Record{
		UserID:    model.UserID,
		Username:  model.Username,
		Timezone:  tz,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func (m *TimezoneMapperImpl) ToDomainList(modelList []*models.TimezoneModel) []*preference.Record {
	records := make([]*preference.Record, 0, len(modelList))
	for _, model := range modelList {
		records = append(records, m.ToDomain(model))
	}
	return records
}

package entity

import "time"

// SettingHourlyRate clave del ajuste global de tarifa por hora.
const SettingHourlyRate = "hourly_rate"

// Setting par clave/valor global. Última escritura gana.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

package model

// Car represents a single car listing. The feature lists, service
// history, condition mappings and photos are stored as serialized JSON
// in text columns and returned to clients exactly as stored.
type Car struct {
	ID    uint    `json:"id" gorm:"primarykey"`
	Name  *string `json:"name" gorm:"type:text;not null"`
	Brand *string `json:"brand" gorm:"type:text;not null"`
	Model *string `json:"model" gorm:"type:text;not null"`

	Year              *int     `json:"year"`
	Price             *int     `json:"price"`
	KmsDriven         *int     `json:"kms_driven" gorm:"column:kms_driven"`
	FuelType          *string  `json:"fuel_type" gorm:"column:fuel_type;type:text"`
	Transmission      *string  `json:"transmission" gorm:"type:text"`
	Category          *string  `json:"category" gorm:"type:text"`
	OwnerCount        *int     `json:"owner_count" gorm:"column:owner_count"`
	BodyType          *string  `json:"body_type" gorm:"column:body_type;type:text"`
	RegistrationState *string  `json:"registration_state" gorm:"column:registration_state;type:text"`
	Mileage           *float64 `json:"mileage"`
	EngineCC          *int     `json:"engine_cc" gorm:"column:engine_cc"`
	PowerBHP          *int     `json:"power_bhp" gorm:"column:power_bhp"`
	TorqueNM          *int     `json:"torque_nm" gorm:"column:torque_nm"`

	Features             string `json:"features" gorm:"type:text"`
	SafetyFeatures       string `json:"safety_features" gorm:"column:safety_features;type:text"`
	ComfortFeatures      string `json:"comfort_features" gorm:"column:comfort_features;type:text"`
	InfotainmentFeatures string `json:"infotainment_features" gorm:"column:infotainment_features;type:text"`
	ExteriorFeatures     string `json:"exterior_features" gorm:"column:exterior_features;type:text"`
	InteriorFeatures     string `json:"interior_features" gorm:"column:interior_features;type:text"`

	ServiceHistory     string  `json:"service_history" gorm:"column:service_history;type:text"`
	TyreCondition      string  `json:"tyre_condition" gorm:"column:tyre_condition;type:text"`
	BatteryHealth      string  `json:"battery_health" gorm:"column:battery_health;type:text"`
	InsuranceValidTill *string `json:"insurance_valid_till" gorm:"column:insurance_valid_till;type:text"`
	Photos             string  `json:"photos" gorm:"type:text"`
}

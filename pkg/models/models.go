package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type SensorType string

const (
	SensorTypeTemperature SensorType = "temperature"
	SensorTypeHumidity    SensorType = "humidity"
	SensorTypePressure    SensorType = "pressure"
)

type ConditionType string

const (
	ConditionTypeAbove   ConditionType = "above"
	ConditionTypeBelow   ConditionType = "below"
	ConditionTypeBetween ConditionType = "between"
)

type ControlType string

const (
	ControlTypeToggle      ControlType = "toggle"
	ControlTypeSlider      ControlType = "slider"
	ControlTypeTemperature ControlType = "temperature"
	ControlTypePosition    ControlType = "position"
)

type ACMode string

const (
	ACModeCool ACMode = "cool"
	ACModeHeat ACMode = "heat"
	ACModeFan  ACMode = "fan"
	ACModeAuto ACMode = "auto"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	OpenID       string   `gorm:"column:open_id;type:varchar(64);uniqueIndex;not null"`
	Name         string   `gorm:"type:text"`
	Email        string   `gorm:"type:varchar(320)"`
	LoginMethod  string   `gorm:"type:varchar(64)"`
	Role         UserRole `gorm:"type:varchar(16);not null;check:role IN ('user','admin')"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastSignedIn time.Time

	Devices []IoTDevice `gorm:"foreignKey:UserID" json:"-"`
	Rooms   []Room      `gorm:"foreignKey:UserID" json:"-"`
}

func (User) TableName() string { return "users" }

type IoTDevice struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Name        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Location    string `gorm:"type:varchar(255)"`
	DeviceToken string `gorm:"type:varchar(64);uniqueIndex;not null"`
	IsActive    int    `gorm:"not null"`
	LastSeenAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Readings     []SensorReading `gorm:"foreignKey:DeviceID" json:"-"`
	AlertConfigs []AlertConfig   `gorm:"foreignKey:DeviceID" json:"-"`
}

func (IoTDevice) TableName() string { return "iot_devices" }

type SensorReading struct {
	ID         uint       `gorm:"primaryKey"`
	DeviceID   uint       `gorm:"index:idx_sensor_readings_device_time,priority:1;not null"`
	SensorType SensorType `gorm:"type:varchar(50);not null"`
	Value      float64    `gorm:"type:decimal(10,2);not null"`
	Unit       string     `gorm:"type:varchar(20)"`
	Timestamp  time.Time  `gorm:"index:idx_sensor_readings_device_time,priority:2;not null"`
}

func (SensorReading) TableName() string { return "sensor_readings" }

type AlertConfig struct {
	ID            uint          `gorm:"primaryKey"`
	UserID        uint          `gorm:"index;not null"`
	DeviceID      uint          `gorm:"index;not null"`
	SensorType    SensorType    `gorm:"type:varchar(50);not null"`
	AlertName     string        `gorm:"type:varchar(255);not null"`
	Description   string        `gorm:"type:text"`
	ConditionType ConditionType `gorm:"type:varchar(16);not null;check:condition_type IN ('above','below','between')"`
	MinValue      *float64      `gorm:"type:decimal(10,2)"`
	MaxValue      *float64      `gorm:"type:decimal(10,2)"`
	IsActive      int           `gorm:"not null"`
	NotifyEmail   int           `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Events []AlertEvent `gorm:"foreignKey:AlertConfigID" json:"-"`
}

func (AlertConfig) TableName() string { return "alert_configs" }

// AlertEvent records one firing of an AlertConfig by an ingested reading.
type AlertEvent struct {
	ID            uint       `gorm:"primaryKey"`
	AlertConfigID uint       `gorm:"index;not null"`
	DeviceID      uint       `gorm:"index;not null"`
	SensorType    SensorType `gorm:"type:varchar(50);not null"`
	Value         float64    `gorm:"type:decimal(10,2);not null"`
	Message       string     `gorm:"type:text"`
	TriggeredAt   time.Time  `gorm:"not null"`
}

func (AlertEvent) TableName() string { return "alert_events" }

type Room struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"type:varchar(255);not null"`
	Icon      string `gorm:"type:varchar(64)"`
	Color     string `gorm:"type:varchar(16)"`
	Order     int    `gorm:"column:order;not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Devices []SmartDevice `gorm:"foreignKey:RoomID" json:"-"`
}

func (Room) TableName() string { return "rooms" }

// DeviceType is a global catalog row, ids are assigned explicitly.
type DeviceType struct {
	ID          uint        `gorm:"primaryKey;autoIncrement:false"`
	Name        string      `gorm:"type:varchar(100);not null"`
	Icon        string      `gorm:"type:varchar(64)"`
	ControlType ControlType `gorm:"type:varchar(16);not null;check:control_type IN ('toggle','slider','temperature','position')"`

	Devices []SmartDevice `gorm:"foreignKey:DeviceTypeID" json:"-"`
}

func (DeviceType) TableName() string { return "device_types" }

type SmartDevice struct {
	ID              uint     `gorm:"primaryKey"`
	UserID          uint     `gorm:"index;not null"`
	RoomID          uint     `gorm:"index;not null"`
	DeviceTypeID    uint     `gorm:"index;not null"`
	Name            string   `gorm:"type:varchar(255);not null"`
	Description     string   `gorm:"type:text"`
	IsOn            int      `gorm:"not null;default:0"`
	Brightness      *int
	Temperature     *float64 `gorm:"type:decimal(4,1)"`
	CurtainPosition *int
	AcMode          *ACMode  `gorm:"type:varchar(16)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (SmartDevice) TableName() string { return "smart_devices" }

// All lists every model in migration order.
func All() []any {
	return []any{
		&User{},
		&IoTDevice{},
		&SensorReading{},
		&AlertConfig{},
		&AlertEvent{},
		&DeviceType{},
		&Room{},
		&SmartDevice{},
	}
}

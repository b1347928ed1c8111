package seed

import "liyu1981.xyz/iot-dashboard/pkg/models"

type deviceFixture struct {
	name        string
	description string
	location    string
	series      Series
}

// iotDeviceFixtures are created in order, each feeding one reading series.
var iotDeviceFixtures = []deviceFixture{
	{
		name:        "Sensor Temperatura - Sala",
		description: "Sensor de temperatura da sala principal",
		location:    "Sala de Estar",
		series:      TemperatureSeries,
	},
	{
		name:        "Sensor Umidade - Cozinha",
		description: "Sensor de umidade da cozinha",
		location:    "Cozinha",
		series:      HumiditySeries,
	},
	{
		name:        "Sensor Pressão - Exterior",
		description: "Sensor de pressão atmosférica",
		location:    "Exterior",
		series:      PressureSeries,
	},
}

type alertFixture struct {
	device        int // index into iotDeviceFixtures
	sensorType    models.SensorType
	name          string
	description   string
	conditionType models.ConditionType
	minValue      *float64
	maxValue      *float64
}

var alertFixtures = []alertFixture{
	{
		device:        0,
		sensorType:    models.SensorTypeTemperature,
		name:          "Temperatura Alta",
		description:   "Alerta quando temperatura ultrapassa 30°C",
		conditionType: models.ConditionTypeAbove,
		maxValue:      ptr(30.0),
	},
	{
		device:        0,
		sensorType:    models.SensorTypeTemperature,
		name:          "Temperatura Baixa",
		description:   "Alerta quando temperatura cai abaixo de 15°C",
		conditionType: models.ConditionTypeBelow,
		minValue:      ptr(15.0),
	},
	{
		device:        1,
		sensorType:    models.SensorTypeHumidity,
		name:          "Umidade Muito Alta",
		description:   "Alerta quando umidade ultrapassa 80%",
		conditionType: models.ConditionTypeAbove,
		maxValue:      ptr(80.0),
	},
	{
		device:        2,
		sensorType:    models.SensorTypePressure,
		name:          "Pressão Anormal",
		description:   "Alerta quando pressão sai do intervalo normal",
		conditionType: models.ConditionTypeBetween,
		minValue:      ptr(1008.0),
		maxValue:      ptr(1018.0),
	},
}

var deviceTypeFixtures = []models.DeviceType{
	{ID: 1, Name: "Luz", Icon: "💡", ControlType: models.ControlTypeSlider},
	{ID: 2, Name: "Ar Condicionado", Icon: "❄️", ControlType: models.ControlTypeTemperature},
	{ID: 3, Name: "Cortina", Icon: "🪟", ControlType: models.ControlTypePosition},
}

const (
	deviceTypeLight   uint = 1
	deviceTypeAC      uint = 2
	deviceTypeCurtain uint = 3
)

const roomColor = "#f3f4f6"

type roomFixture struct {
	name  string
	icon  string
	order int
}

var roomFixtures = []roomFixture{
	{name: "Sala de Estar", icon: "🛋️", order: 1},
	{name: "Quarto", icon: "🛏️", order: 2},
	{name: "Cozinha", icon: "🍳", order: 3},
	{name: "Banheiro", icon: "🚿", order: 4},
}

type smartDeviceFixture struct {
	room            int // index into roomFixtures
	deviceTypeID    uint
	name            string
	description     string
	isOn            int
	brightness      *int
	temperature     *float64
	curtainPosition *int
	acMode          *models.ACMode
}

var smartDeviceFixtures = []smartDeviceFixture{
	// Sala de Estar
	{room: 0, deviceTypeID: deviceTypeLight, name: "Luz Principal", description: "Luz principal da sala", isOn: 1, brightness: ptr(80)},
	{room: 0, deviceTypeID: deviceTypeLight, name: "Luz Lateral", description: "Abajur lateral", isOn: 0, brightness: ptr(50)},
	{room: 0, deviceTypeID: deviceTypeAC, name: "Ar Condicionado", description: "AC da sala", isOn: 1, temperature: ptr(22.0), acMode: ptr(models.ACModeCool)},
	{room: 0, deviceTypeID: deviceTypeCurtain, name: "Cortina", description: "Cortina da janela", isOn: 1, curtainPosition: ptr(50)},

	// Quarto
	{room: 1, deviceTypeID: deviceTypeLight, name: "Luz Principal", description: "Luz do quarto", isOn: 0, brightness: ptr(100)},
	{room: 1, deviceTypeID: deviceTypeAC, name: "Ar Condicionado", description: "AC do quarto", isOn: 0, temperature: ptr(20.0), acMode: ptr(models.ACModeCool)},
	{room: 1, deviceTypeID: deviceTypeCurtain, name: "Cortina", description: "Cortina do quarto", isOn: 1, curtainPosition: ptr(0)},

	// Cozinha
	{room: 2, deviceTypeID: deviceTypeLight, name: "Luz Principal", description: "Luz da cozinha", isOn: 1, brightness: ptr(100)},
	{room: 2, deviceTypeID: deviceTypeLight, name: "Luz Bancada", description: "Luz da bancada", isOn: 1, brightness: ptr(90)},

	// Banheiro
	{room: 3, deviceTypeID: deviceTypeLight, name: "Luz Principal", description: "Luz do banheiro", isOn: 0, brightness: ptr(100)},
	{room: 3, deviceTypeID: deviceTypeLight, name: "Luz Espelho", description: "Luz do espelho", isOn: 0, brightness: ptr(100)},
}

package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyDatabaseURL     string = "DATABASE_URL"
	EnvKeyIOTAutoMigrate  string = "IOT_AUTO_MIGRATE"
	EnvKeyIOTLogsDir      string = "IOT_LOGS_DIR"
	EnvKeyIOTWebConfig    string = "IOT_WEB_CONFIG"
	EnvKeyIOTMQTTBroker   string = "IOT_MQTT_BROKER"
	EnvKeyIOTMQTTClientID string = "IOT_MQTT_CLIENT_ID"

	EnvKeyIOTHttpHostPort string = "IOT_HTTP_HOST_PORT"
	EnvKeyIOTGrpcHostPort string = "IOT_GRPC_HOST_PORT"

	EnvKeyIOTDefaultRate  string = "IOT_DEFAULT_RATE"
	EnvKeyIOTDefaultBurst string = "IOT_DEFAULT_BURST"

	LoggerNameCLI           string = "cli"
	LoggerNameSeed          string = "seed"
	LoggerNameDatabase      string = "database"
	LoggerNameIOTCore       string = "iot_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameMQTTBridge    string = "mqtt_bridge"

	LoggerFieldCategory string = "category"

	LoggerCategorySeedUser      string = "user"
	LoggerCategorySeedIOT       string = "iot"
	LoggerCategorySeedSmartHome string = "smart_home"
	LoggerCategorySeedVerify    string = "verify"
	LoggerCategoryIOTDevice     string = "device"
	LoggerCategoryIOTReading    string = "reading"
	LoggerCategoryIOTAlert      string = "alert"
)

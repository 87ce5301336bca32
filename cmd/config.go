package cmd

type Config struct {
	HTTPPort               string
	AdminKey               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaConsumerGroup     string
	KafkaOrderChangedTopic string
	RedisAddr              string
	OsrmBaseURL            string
	CafeLat                float64
	CafeLng                float64
}

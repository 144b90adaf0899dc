package kafka_config

const (
	EnvKafkaProducerMaxAttempts    = "KAFKA_PRODUCER_MAX_ATTEMPTS"
	EnvKafkaProducerBatchTimeout   = "KAFKA_PRODUCER_BATCH_TIMEOUT"
	EnvKafkaProducerWriteTimeout   = "KAFKA_PRODUCER_WRITE_TIMEOUT"
	EnvKafkaProducerRequireAcks    = "KAFKA_PRODUCER_REQUIRE_ACKS"
	EnvKafkaProducerCompression    = "KAFKA_PRODUCER_COMPRESSION"
	EnvKafkaProducerAsync          = "KAFKA_PRODUCER_ASYNC"
	EnvKafkaAllowAutoTopicCreation = "KAFKA_ALLOW_AUTO_TOPIC_CREATION"

	EnvKafkaDLQTopic         = "KAFKA_DLQ_TOPIC"
	EnvKafkaEnableMiddleware = "KAFKA_ENABLE_MIDDLEWARE"
)

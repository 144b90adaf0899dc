package kafka_config

import "time"

const (
	DefaultProducerMaxAttempts    = 3
	DefaultProducerBatchTimeout   = 10 * time.Millisecond
	DefaultProducerWriteTimeout   = 5 * time.Second
	DefaultProducerRequireAcks    = -1 // Require all replicas
	DefaultProducerCompression    = "snappy"
	DefaultProducerAsync          = false
	DefaultAllowAutoTopicCreation = true

	DefaultDLQTopic         = ""
	DefaultEnableMiddleware = true
)

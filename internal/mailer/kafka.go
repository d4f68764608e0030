package mailer

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"
)

const emailTopic = "email-dispatch"

// KafkaMailer publishes email jobs for a downstream delivery worker.
type KafkaMailer struct {
	producer sarama.SyncProducer
}

type emailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewKafkaMailer(broker string) (*KafkaMailer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	var producer sarama.SyncProducer
	var err error

	for i := 1; i <= 5; i++ {
		producer, err = sarama.NewSyncProducer([]string{broker}, config)
		if err == nil {
			log.Printf("Kafka producer connected to %s", broker)
			return &KafkaMailer{producer: producer}, nil
		}

		log.Printf("Failed to connect to Kafka (try %d/5): %v", i, err)
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("connect to kafka at %s: %w", broker, err)
}

func (m *KafkaMailer) SendOtp(email, otp string) error {
	job := emailJob{
		To:      email,
		Subject: "Verify your Athera account",
		Body:    fmt.Sprintf("Your verification code is: %s", otp),
	}

	payload, err := json.Marshal(job)

	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	_, _, err = m.producer.SendMessage(&sarama.ProducerMessage{
		Topic: emailTopic,
		Key:   sarama.StringEncoder(email),
		Value: sarama.ByteEncoder(payload),
	})

	if err != nil {
		return fmt.Errorf("publish email job: %w", err)
	}

	return nil
}

func (m *KafkaMailer) Close() error {
	return m.producer.Close()
}
